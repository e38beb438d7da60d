package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	blogerrors "fullmoon/internal/blog/errors"
	"fullmoon/internal/blog/repository"
	"fullmoon/internal/blog/validator"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/model"
	"fullmoon/pkg/sanitizer"
)

const (
	PopularLimit = 5
	RelatedLimit = 3
)

type PostService interface {
	ListPublished(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, int64, error)
	Popular(ctx context.Context) ([]*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPostPage, error)
	ListByCategory(ctx context.Context, category string) ([]*model.BlogPost, error)
	ListByTag(ctx context.Context, tag string) ([]*model.BlogPost, error)

	List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.BlogPost, int64, error)
	Create(ctx context.Context, p *auth.Principal, post *model.BlogPost) error
	Update(ctx context.Context, p *auth.Principal, id string, update *model.BlogPostUpdate) (*model.BlogPost, error)
	Delete(ctx context.Context, p *auth.Principal, id string) error
}

type postService struct {
	repo      repository.PostRepository
	validator *validator.PostValidator
	cfg       *config.Config
}

func NewPostService(repo repository.PostRepository, validator *validator.PostValidator, cfg *config.Config) PostService {
	return &postService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *postService) ListPublished(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return s.page(ctx, s.repo.CountPublished, func(ctx context.Context) ([]*model.BlogPost, error) {
		return s.repo.FindPublished(ctx, limit, offset)
	})
}

func (s *postService) Popular(ctx context.Context) ([]*model.BlogPost, error) {
	posts, err := s.repo.FindPopular(ctx, PopularLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list popular blog posts", "error", err)
		return nil, apperrors.Internal("Failed to retrieve blog posts", err)
	}
	return posts, nil
}

// GetBySlug returns a published post with up to three posts from its
// category and counts the read. A failed view update does not fail the read.
func (s *postService) GetBySlug(ctx context.Context, slug string) (*model.BlogPostPage, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	post, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, blogerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Blog post", slug)
		}
		s.cfg.Log.Error("Failed to retrieve blog post", "slug", slug, "error", err)
		return nil, apperrors.Internal("Failed to retrieve blog post", err)
	}

	if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
		s.cfg.Log.Warn("Failed to count blog post view", "id", post.ID, "error", err)
	} else {
		post.Views++
	}

	related, err := s.repo.FindRelated(ctx, post, RelatedLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to load related blog posts", "id", post.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve blog post", err)
	}

	return &model.BlogPostPage{Post: post, Related: related}, nil
}

func (s *postService) ListByCategory(ctx context.Context, category string) ([]*model.BlogPost, error) {
	category = sanitizer.TrimAndNormalize(category)
	if category == "" {
		return nil, apperrors.InvalidInput("Category is required")
	}

	posts, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		s.cfg.Log.Error("Failed to list blog posts by category", "category", category, "error", err)
		return nil, apperrors.Internal("Failed to retrieve blog posts", err)
	}
	return posts, nil
}

func (s *postService) ListByTag(ctx context.Context, tag string) ([]*model.BlogPost, error) {
	tag = sanitizer.NormalizeTag(tag)
	if tag == "" {
		return nil, apperrors.InvalidInput("Tag is required")
	}

	posts, err := s.repo.FindByTag(ctx, tag)
	if err != nil {
		s.cfg.Log.Error("Failed to list blog posts by tag", "tag", tag, "error", err)
		return nil, apperrors.Internal("Failed to retrieve blog posts", err)
	}
	return posts, nil
}

func (s *postService) List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.BlogPost, int64, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, 0, err
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return s.page(ctx, s.repo.Count, func(ctx context.Context) ([]*model.BlogPost, error) {
		return s.repo.FindAll(ctx, limit, offset)
	})
}

func (s *postService) Create(ctx context.Context, p *auth.Principal, post *model.BlogPost) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	s.sanitize(post)
	post.Views = 0
	if err := s.validate(post); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, blogerrors.ErrDuplicateSlug) {
			return apperrors.Conflict(fmt.Sprintf("A blog post with slug %q already exists", post.Slug))
		}
		s.cfg.Log.Error("Failed to create blog post", "slug", post.Slug, "error", err)
		return apperrors.Internal("Failed to create blog post", err)
	}

	s.cfg.Log.Info("Blog post created successfully",
		"id", post.ID,
		"slug", post.Slug,
		"published", post.Published,
		"admin", p.Subject,
	)
	return nil
}

func (s *postService) Update(ctx context.Context, p *auth.Principal, id string, update *model.BlogPostUpdate) (*model.BlogPost, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "Failed to check blog post existence")
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Blog post update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := mergePostUpdate(existing, update)
	s.sanitize(merged)
	newImages := sanitizer.NormalizeImages(update.NewImages)
	merged.Images = append(merged.Images, newImages...)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged, newImages); err != nil {
		if errors.Is(err, blogerrors.ErrDuplicateSlug) {
			return nil, apperrors.Conflict(fmt.Sprintf("A blog post with slug %q already exists", merged.Slug))
		}
		return nil, s.translate(err, id, "Failed to update blog post")
	}

	s.cfg.Log.Info("Blog post updated successfully", "id", id, "slug", merged.Slug, "admin", p.Subject)
	return merged, nil
}

func (s *postService) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id, "Failed to delete blog post")
	}

	s.cfg.Log.Info("Blog post deleted successfully", "id", id, "admin", p.Subject)
	return nil
}

// --- Helpers ---

func (s *postService) page(
	ctx context.Context,
	count func(ctx context.Context) (int64, error),
	find func(ctx context.Context) ([]*model.BlogPost, error),
) ([]*model.BlogPost, int64, error) {
	var total int64
	var posts []*model.BlogPost
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, errCount = count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count blog posts", "error", errCount)
			errCount = apperrors.Internal("Failed to count blog posts", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		posts, errFind = find(ctx)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list blog posts", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve blog posts", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return posts, total, nil
}

func (s *postService) translate(err error, id, message string) error {
	if errors.Is(err, blogerrors.ErrNotFound) || errors.Is(err, blogerrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Blog post", id)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

// sanitize normalizes text fields and derives the slug from the title.
func (s *postService) sanitize(post *model.BlogPost) {
	post.Title = sanitizer.TrimAndNormalize(post.Title)
	post.Slug = sanitizer.Slug(post.Title)
	post.Excerpt = sanitizer.TrimAndNormalize(post.Excerpt)
	post.Content = strings.TrimSpace(post.Content)
	post.Category = sanitizer.TrimAndNormalize(post.Category)
	post.Author = sanitizer.NormalizeName(post.Author)
	if post.Author == "" {
		post.Author = model.DefaultAuthor
	}
	post.FeaturedImage = sanitizer.NormalizeImageRef(post.FeaturedImage)
	post.Images = sanitizer.NormalizeImages(post.Images)
	post.Tags = sanitizer.NormalizeTags(post.Tags)
	post.MetaTitle = sanitizer.TrimAndNormalize(post.MetaTitle)
	post.MetaDescription = sanitizer.TrimAndNormalize(post.MetaDescription)
}

func (s *postService) validate(post *model.BlogPost) error {
	if err := s.validator.Validate(post); err != nil {
		s.cfg.Log.Warn("Blog post validation failed", "title", post.Title, "error", err)
		return apperrors.Validation("Blog post validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func mergePostUpdate(existing *model.BlogPost, update *model.BlogPostUpdate) *model.BlogPost {
	merged := *existing

	if update.Title != "" {
		merged.Title = update.Title
	}
	if update.Excerpt != "" {
		merged.Excerpt = update.Excerpt
	}
	if update.Content != "" {
		merged.Content = update.Content
	}
	if update.Category != "" {
		merged.Category = update.Category
	}
	if update.Author != "" {
		merged.Author = update.Author
	}
	if update.FeaturedImage != "" {
		merged.FeaturedImage = update.FeaturedImage
	}
	if update.Tags != nil {
		merged.Tags = *update.Tags
	}
	if update.Published != nil {
		merged.Published = *update.Published
	}
	if update.Featured != nil {
		merged.Featured = *update.Featured
	}
	if update.MetaTitle != nil {
		merged.MetaTitle = *update.MetaTitle
	}
	if update.MetaDescription != nil {
		merged.MetaDescription = *update.MetaDescription
	}

	return &merged
}

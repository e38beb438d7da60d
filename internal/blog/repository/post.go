package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	blogerrors "fullmoon/internal/blog/errors"
	"fullmoon/pkg/config"
	mongotx "fullmoon/pkg/db/mongo"
	"fullmoon/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Blog_posts"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

type PostRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	FindPublished(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, error)
	FindPopular(ctx context.Context, limit int) ([]*model.BlogPost, error)
	FindByCategory(ctx context.Context, category string) ([]*model.BlogPost, error)
	FindByTag(ctx context.Context, tag string) ([]*model.BlogPost, error)
	FindRelated(ctx context.Context, post *model.BlogPost, limit int) ([]*model.BlogPost, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, error)
	Update(ctx context.Context, id string, post *model.BlogPost, newImages []string) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
}

type mongoPostRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPostRepository(cfg *config.Config) PostRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoPostRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *model.BlogPost) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	post.CreatedAt = now
	post.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", blogerrors.ErrDuplicateSlug, post.Slug)
		}
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", blogerrors.ErrInvalidID, id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoPostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.findOne(ctx, bson.M{"slug": slug, "published": true})
}

func (r *mongoPostRepository) findOne(ctx context.Context, filter bson.M) (*model.BlogPost, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var post model.BlogPost
	if err := r.collection.FindOne(ctx, filter).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find blog post: %w", err)
	}
	return &post, nil
}

func (r *mongoPostRepository) FindPublished(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit)).SetSkip(offset)
	return r.find(ctx, bson.M{"published": true}, opts)
}

func (r *mongoPostRepository) FindPopular(ctx context.Context, limit int) ([]*model.BlogPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"published": true}, opts)
}

func (r *mongoPostRepository) FindByCategory(ctx context.Context, category string) ([]*model.BlogPost, error) {
	return r.find(ctx, bson.M{"category": category, "published": true}, options.Find().SetSort(newestFirst))
}

func (r *mongoPostRepository) FindByTag(ctx context.Context, tag string) ([]*model.BlogPost, error) {
	return r.find(ctx, bson.M{"tags": tag, "published": true}, options.Find().SetSort(newestFirst))
}

func (r *mongoPostRepository) FindRelated(ctx context.Context, post *model.BlogPost, limit int) ([]*model.BlogPost, error) {
	filter := bson.M{
		"category":  post.Category,
		"published": true,
	}
	if objectID, err := primitive.ObjectIDFromHex(post.ID); err == nil {
		filter["_id"] = bson.M{"$ne": objectID}
	}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *mongoPostRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit)).SetSkip(offset)
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoPostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.BlogPost, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*model.BlogPost{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}
	return posts, nil
}

func (r *mongoPostRepository) Update(ctx context.Context, id string, post *model.BlogPost, newImages []string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", blogerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"title":            post.Title,
			"slug":             post.Slug,
			"excerpt":          post.Excerpt,
			"content":          post.Content,
			"category":         post.Category,
			"author":           post.Author,
			"featured_image":   post.FeaturedImage,
			"tags":             post.Tags,
			"published":        post.Published,
			"featured":         post.Featured,
			"meta_title":       post.MetaTitle,
			"meta_description": post.MetaDescription,
			"updated_at":       time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	if len(newImages) > 0 {
		update["$push"] = bson.M{"images": bson.M{"$each": newImages}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", blogerrors.ErrDuplicateSlug, post.Slug)
		}
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	if result.MatchedCount == 0 {
		return blogerrors.ErrNotFound
	}
	return nil
}

func (r *mongoPostRepository) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", blogerrors.ErrInvalidID, id)
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment blog post views: %w", err)
	}
	return nil
}

func (r *mongoPostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", blogerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if result.DeletedCount == 0 {
		return blogerrors.ErrNotFound
	}
	return nil
}

func (r *mongoPostRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *mongoPostRepository) CountPublished(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"published": true})
}

func (r *mongoPostRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return count, nil
}

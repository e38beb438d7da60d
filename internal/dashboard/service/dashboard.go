package service

import (
	"context"

	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/model"

	"golang.org/x/sync/errgroup"
)

const RecentPostsLimit = 5

// The dashboard only reads aggregates, so it depends on the counting
// slice of each repository rather than the full interfaces.
type RoomCounter interface {
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

type ReservationCounter interface {
	CountByStatus(ctx context.Context) (map[model.ReservationStatus]int64, error)
}

type PostCounter interface {
	Count(ctx context.Context) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, error)
}

type Summary struct {
	TotalRooms     int64                             `json:"total_rooms"`
	AvailableRooms int64                             `json:"available_rooms"`
	Reservations   map[model.ReservationStatus]int64 `json:"reservations"`
	TotalPosts     int64                             `json:"total_posts"`
	PublishedPosts int64                             `json:"published_posts"`
	RecentPosts    []*model.BlogPost                 `json:"recent_posts"`
}

type DashboardService interface {
	Summary(ctx context.Context, p *auth.Principal) (*Summary, error)
}

type dashboardService struct {
	rooms        RoomCounter
	reservations ReservationCounter
	posts        PostCounter
	cfg          *config.Config
}

func NewDashboardService(rooms RoomCounter, reservations ReservationCounter, posts PostCounter, cfg *config.Config) DashboardService {
	return &dashboardService{
		rooms:        rooms,
		reservations: reservations,
		posts:        posts,
		cfg:          cfg,
	}
}

func (s *dashboardService) Summary(ctx context.Context, p *auth.Principal) (*Summary, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	summary := &Summary{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		summary.TotalRooms, err = s.rooms.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.AvailableRooms, err = s.rooms.CountAvailable(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Reservations, err = s.reservations.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.TotalPosts, err = s.posts.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.PublishedPosts, err = s.posts.CountPublished(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.RecentPosts, err = s.posts.FindAll(gctx, RecentPostsLimit, 0)
		return err
	})

	if err := g.Wait(); err != nil {
		s.cfg.Log.Error("Failed to build dashboard summary", "error", err)
		return nil, apperrors.Internal("Failed to load dashboard", err)
	}

	for _, status := range []model.ReservationStatus{model.ReservationConfirmed, model.ReservationCancelled} {
		if _, ok := summary.Reservations[status]; !ok {
			if summary.Reservations == nil {
				summary.Reservations = map[model.ReservationStatus]int64{}
			}
			summary.Reservations[status] = 0
		}
	}
	if summary.RecentPosts == nil {
		summary.RecentPosts = []*model.BlogPost{}
	}

	return summary, nil
}

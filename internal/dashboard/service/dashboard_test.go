package service

import (
	"context"
	"errors"
	"testing"

	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRooms struct {
	total, available int64
	err              error
}

func (f *fakeRooms) Count(context.Context) (int64, error)          { return f.total, f.err }
func (f *fakeRooms) CountAvailable(context.Context) (int64, error) { return f.available, f.err }

type fakeReservations struct {
	counts map[model.ReservationStatus]int64
}

func (f *fakeReservations) CountByStatus(context.Context) (map[model.ReservationStatus]int64, error) {
	return f.counts, nil
}

type fakePosts struct {
	total, published int64
	recent           []*model.BlogPost
	gotLimit         int
}

func (f *fakePosts) Count(context.Context) (int64, error)          { return f.total, nil }
func (f *fakePosts) CountPublished(context.Context) (int64, error) { return f.published, nil }
func (f *fakePosts) FindAll(_ context.Context, limit int, _ int64) ([]*model.BlogPost, error) {
	f.gotLimit = limit
	return f.recent, nil
}

var admin = &auth.Principal{Subject: "admin@fullmoon.com", Role: auth.RoleAdmin}

func newService(rooms *fakeRooms, reservations *fakeReservations, posts *fakePosts) DashboardService {
	return NewDashboardService(rooms, reservations, posts, &config.Config{Log: logger.Discard()})
}

func TestSummary(t *testing.T) {
	posts := &fakePosts{total: 9, published: 6, recent: []*model.BlogPost{{Title: "Pool Day"}}}
	svc := newService(
		&fakeRooms{total: 6, available: 5},
		&fakeReservations{counts: map[model.ReservationStatus]int64{model.ReservationConfirmed: 12}},
		posts,
	)

	summary, err := svc.Summary(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, int64(6), summary.TotalRooms)
	assert.Equal(t, int64(5), summary.AvailableRooms)
	assert.Equal(t, int64(12), summary.Reservations[model.ReservationConfirmed])
	assert.Equal(t, int64(0), summary.Reservations[model.ReservationCancelled])
	assert.Contains(t, summary.Reservations, model.ReservationCancelled)
	assert.Equal(t, int64(9), summary.TotalPosts)
	assert.Equal(t, int64(6), summary.PublishedPosts)
	assert.Len(t, summary.RecentPosts, 1)
	assert.Equal(t, RecentPostsLimit, posts.gotLimit)
}

func TestSummary_EmptyStore(t *testing.T) {
	svc := newService(&fakeRooms{}, &fakeReservations{}, &fakePosts{})

	summary, err := svc.Summary(context.Background(), admin)
	require.NoError(t, err)
	assert.NotNil(t, summary.RecentPosts)
	assert.Len(t, summary.Reservations, 2)
}

func TestSummary_Errors(t *testing.T) {
	tests := []struct {
		name      string
		principal *auth.Principal
		rooms     *fakeRooms
		wantCode  string
	}{
		{name: "anonymous", principal: nil, rooms: &fakeRooms{}, wantCode: apperrors.CodeUnauthorized},
		{name: "guest", principal: &auth.Principal{Subject: "g", Role: auth.RoleGuest}, rooms: &fakeRooms{}, wantCode: apperrors.CodeForbidden},
		{name: "storage failure", principal: admin, rooms: &fakeRooms{err: errors.New("timeout")}, wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(tt.rooms, &fakeReservations{}, &fakePosts{})
			_, err := svc.Summary(context.Background(), tt.principal)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

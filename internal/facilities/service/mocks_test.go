package service

import (
	"context"
	"sync"

	facilitieserrors "fullmoon/internal/facilities/errors"
	"fullmoon/pkg/model"
)

type mockFacilityRepository struct {
	CreateFn              func(ctx context.Context, facility *model.Facility) error
	FindByIDFn            func(ctx context.Context, id string) (*model.Facility, error)
	FindAvailableFn       func(ctx context.Context) ([]*model.Facility, error)
	FindAvailableByTypeFn func(ctx context.Context, facilityType model.FacilityType) ([]*model.Facility, error)
	FindAllFn             func(ctx context.Context, limit int, offset int64) ([]*model.Facility, error)
	UpdateFn              func(ctx context.Context, id string, facility *model.Facility) error
	DeleteFn              func(ctx context.Context, id string) error
	CountFn               func(ctx context.Context) (int64, error)
}

func (m *mockFacilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, facility)
	}
	return nil
}

func (m *mockFacilityRepository) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, facilitieserrors.ErrNotFound
}

func (m *mockFacilityRepository) FindAvailable(ctx context.Context) ([]*model.Facility, error) {
	if m.FindAvailableFn != nil {
		return m.FindAvailableFn(ctx)
	}
	return nil, nil
}

func (m *mockFacilityRepository) FindAvailableByType(ctx context.Context, facilityType model.FacilityType) ([]*model.Facility, error) {
	if m.FindAvailableByTypeFn != nil {
		return m.FindAvailableByTypeFn(ctx, facilityType)
	}
	return nil, nil
}

func (m *mockFacilityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockFacilityRepository) Update(ctx context.Context, id string, facility *model.Facility) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, facility)
	}
	return nil
}

func (m *mockFacilityRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockFacilityRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// mockBookingRepository keeps bookings in memory and honours the
// conditional status transition of the real store.
type mockBookingRepository struct {
	mu        sync.Mutex
	bookings  map[string]*model.FacilityBooking
	nextID    int
	CreateErr error
	beforeCAS func()
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{bookings: map[string]*model.FacilityBooking{}}
}

func (m *mockBookingRepository) Create(_ context.Context, booking *model.FacilityBooking) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	booking.ID = hexID(m.nextID)
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *mockBookingRepository) FindByID(_ context.Context, id string) (*model.FacilityBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, facilitieserrors.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepository) FindByUser(_ context.Context, userID string) ([]*model.FacilityBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.FacilityBooking
	for _, b := range m.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) UpdateStatus(_ context.Context, id string, from, to model.FacilityBookingStatus) error {
	if m.beforeCAS != nil {
		m.beforeCAS()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return facilitieserrors.ErrStatusChanged
	}
	b.Status = to
	return nil
}

func hexID(n int) string {
	const digits = "0123456789abcdef"
	id := []byte("6720facade6720facade0000")
	for i := len(id) - 1; n > 0 && i >= 0; i-- {
		id[i] = digits[n%16]
		n /= 16
	}
	return string(id)
}

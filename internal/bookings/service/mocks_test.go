package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingserrors "fullmoon/internal/bookings/errors"
	roomserrors "fullmoon/internal/rooms/errors"
	"fullmoon/pkg/dates"
	mongotx "fullmoon/pkg/db/mongo"
	"fullmoon/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mock reservation repository
// ────────────────────────────────────────────────

type mockReservationRepository struct {
	mu           sync.Mutex
	txMu         sync.Mutex
	reservations []*model.Reservation
	nextID       int

	// onScopedCheck runs after a room-scoped overlap query has taken its
	// snapshot and before it returns.
	onScopedCheck  func()
	findOverlapErr error
	createErr      error
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	reservation.ID = fmt.Sprintf("%024x", m.nextID)
	reservation.CreatedAt = time.Now().UTC()
	copied := *reservation
	m.reservations = append(m.reservations, &copied)
	return nil
}

func (m *mockReservationRepository) seed(roomID, checkIn, checkOut string, status model.ReservationStatus) *model.Reservation {
	in, _ := dates.Parse(checkIn)
	out, _ := dates.Parse(checkOut)
	r := &model.Reservation{
		RoomID:      roomID,
		CheckIn:     in,
		CheckOut:    out,
		Guests:      2,
		TotalAmount: 1,
		Status:      status,
		GuestName:   "Seeded Guest",
		GuestEmail:  "seed@example.com",
		GuestPhone:  "+2348031234567",
	}
	_ = m.Create(context.Background(), r)
	return r
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if len(id) != 24 {
		return nil, bookingserrors.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockReservationRepository) FindOverlapping(ctx context.Context, roomID *string, checkIn, checkOut time.Time) ([]*model.Reservation, error) {
	if m.findOverlapErr != nil {
		return nil, m.findOverlapErr
	}

	m.mu.Lock()
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Status == model.ReservationCancelled {
			continue
		}
		if roomID != nil && r.RoomID != *roomID {
			continue
		}
		if r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn) {
			copied := *r
			out = append(out, &copied)
		}
	}
	m.mu.Unlock()

	if roomID != nil && m.onScopedCheck != nil {
		m.onScopedCheck()
	}
	return out, nil
}

func (m *mockReservationRepository) FindAll(ctx context.Context, limit int, offset int64, status model.ReservationStatus) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Reservation
	for _, r := range m.reservations {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) Count(ctx context.Context, status model.ReservationStatus) (int64, error) {
	all, _ := m.FindAll(ctx, 0, 0, status)
	return int64(len(all)), nil
}

func (m *mockReservationRepository) CountByStatus(ctx context.Context) (map[model.ReservationStatus]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[model.ReservationStatus]int64{}
	for _, r := range m.reservations {
		counts[r.Status]++
	}
	return counts, nil
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ID == id {
			if r.Status != from {
				return bookingserrors.ErrStatusChanged
			}
			r.Status = to
			return nil
		}
	}
	return bookingserrors.ErrNotFound
}

// ExecuteTransaction serializes transactions, which is what the database
// guarantees for the overlap check and insert on one room.
func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(mongo.NewSessionContext(ctx, nil))
}

func (m *mockReservationRepository) confirmedFor(roomID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.reservations {
		if r.RoomID == roomID && r.Status == model.ReservationConfirmed {
			n++
		}
	}
	return n
}

// ────────────────────────────────────────────────
// Mock lock repository
// ────────────────────────────────────────────────

type mockLockRepository struct {
	mu    sync.Mutex
	locks map[string]string
}

func newMockLockRepository() *mockLockRepository {
	return &mockLockRepository{locks: map[string]string{}}
}

// CreateAll behaves like an ordered insert: locks before the first held one
// are kept.
func (m *mockLockRepository) CreateAll(ctx context.Context, locks []*model.BookingLock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lock := range locks {
		if _, held := m.locks[lock.ID]; held {
			return fmt.Errorf("%w: %s", bookingserrors.ErrLockHeld, lock.ID)
		}
		m.locks[lock.ID] = lock.Owner
	}
	return nil
}

func (m *mockLockRepository) DeleteByOwner(ctx context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, holder := range m.locks {
		if holder == owner {
			delete(m.locks, id)
		}
	}
	return nil
}

func (m *mockLockRepository) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// ────────────────────────────────────────────────
// Mock room repository
// ────────────────────────────────────────────────

type mockRoomRepository struct {
	rooms   []*model.Room
	findErr error
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error { return nil }

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if len(id) != 24 {
		return nil, roomserrors.ErrInvalidID
	}
	for _, r := range m.rooms {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, roomserrors.ErrNotFound
}

func (m *mockRoomRepository) FindAvailable(ctx context.Context) ([]*model.Room, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.Room
	for _, r := range m.rooms {
		if r.Available {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRoomRepository) FindAvailableByType(ctx context.Context, roomType model.RoomType) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
	return m.rooms, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.Room, newImages []string) error {
	return nil
}

func (m *mockRoomRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockRoomRepository) DeleteAll(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockRoomRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.rooms)), nil
}

func (m *mockRoomRepository) CountAvailable(ctx context.Context) (int64, error) { return 0, nil }

// ────────────────────────────────────────────────
// Mock event sink
// ────────────────────────────────────────────────

type mockEventSink struct {
	mu     sync.Mutex
	events []model.ReservationEvent
	err    error
}

func (m *mockEventSink) Deliver(ctx context.Context, event model.ReservationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"fullmoon/internal/bookings/validator"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	"fullmoon/pkg/dates"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	annexID     = "6720c0ffee6720c0ffee0101"
	deluxeID    = "6720c0ffee6720c0ffee0301"
	executiveID = "6720c0ffee6720c0ffee0401"
	closedID    = "6720c0ffee6720c0ffee0501"
)

var admin = &auth.Principal{Subject: "admin@fullmoon.com", Role: auth.RoleAdmin}

type fixture struct {
	svc    *bookingService
	repo   *mockReservationRepository
	locks  *mockLockRepository
	rooms  *mockRoomRepository
	events *mockEventSink
}

func catalog() []*model.Room {
	return []*model.Room{
		{ID: annexID, RoomNumber: "101", Type: model.RoomTypeAnnex, Price: 50000, Available: true},
		{ID: deluxeID, RoomNumber: "301", Type: model.RoomTypeDeluxe, Price: 65000, Available: true},
		{ID: executiveID, RoomNumber: "401", Type: model.RoomTypeExecutive, Price: 80000, Available: true},
		{ID: closedID, RoomNumber: "501", Type: model.RoomTypePenthouseSingle, Price: 140000, Available: false},
	}
}

func newFixture(t *testing.T, lockEnabled bool) *fixture {
	t.Helper()
	log := logger.Discard()
	cfg := &config.Config{
		Log:                log,
		HotelTimezone:      "Africa/Lagos",
		PhoneRegion:        "NG",
		BookingLockEnabled: lockEnabled,
		BookingLockTTL:     10 * time.Second,
	}

	f := &fixture{
		repo:   &mockReservationRepository{},
		locks:  newMockLockRepository(),
		rooms:  &mockRoomRepository{rooms: catalog()},
		events: &mockEventSink{},
	}
	f.svc = NewBookingService(f.repo, f.locks, f.rooms, validator.NewBookingValidator(log), f.events, cfg).(*bookingService)
	// 1 Nov 2025, 10:00 in Lagos.
	f.svc.now = func() time.Time { return time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

func confirmRequest(roomID, checkIn, checkOut string) ConfirmRequest {
	return ConfirmRequest{
		PrepareRequest: PrepareRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut, Guests: 2},
		GuestName:      "Ada Obi",
		GuestEmail:     "Ada@Example.com",
		GuestPhone:     "0803 123 4567",
	}
}

func requireCode(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, code), "expected %s, got %v", code, err)
	return apperrors.AsAppError(err)
}

// ────────────────────────────────────────────────
// Scenarios
// ────────────────────────────────────────────────

func TestScenario_Room301TwoNights(t *testing.T) {
	f := newFixture(t, true)

	quote, err := f.svc.Prepare(context.Background(), PrepareRequest{
		RoomID: deluxeID, CheckIn: "2025-11-14", CheckOut: "2025-11-16", Guests: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "301", quote.Room.RoomNumber)
	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 130000.0, quote.TotalAmount)
	assert.Equal(t, "2025-11-14", quote.CheckIn)
	assert.Equal(t, "2025-11-16", quote.CheckOut)

	result, err := f.svc.Search(context.Background(), SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-16", Adults: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Nights)
	assert.Equal(t, 2, result.Guests)
	assert.Contains(t, roomNumbers(result.Rooms), "301")
}

func TestScenario_OverlappingConfirmConflicts(t *testing.T) {
	f := newFixture(t, true)
	f.repo.seed(deluxeID, "2025-11-14", "2025-11-16", model.ReservationConfirmed)

	_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-15", "2025-11-17"))

	appErr := requireCode(t, err, apperrors.CodeConflict)
	assert.Equal(t, apperrors.RedirectRooms, appErr.Redirect())
	assert.Equal(t, 1, f.repo.confirmedFor(deluxeID))
}

func TestScenario_BackToBackConfirmSucceeds(t *testing.T) {
	f := newFixture(t, true)
	f.repo.seed(deluxeID, "2025-11-14", "2025-11-16", model.ReservationConfirmed)

	reservation, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-16", "2025-11-18"))
	require.NoError(t, err)

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, model.ReservationConfirmed, reservation.Status)
	assert.Equal(t, 130000.0, reservation.TotalAmount)
	assert.Equal(t, 2, f.repo.confirmedFor(deluxeID))
	assert.Empty(t, f.locks.locks, "lock must be released")
}

// ────────────────────────────────────────────────
// Availability
// ────────────────────────────────────────────────

func TestFindAvailable_ExcludesBookedAndClosedRooms(t *testing.T) {
	f := newFixture(t, true)
	f.repo.seed(deluxeID, "2025-11-14", "2025-11-16", model.ReservationConfirmed)
	f.repo.seed(executiveID, "2025-11-14", "2025-11-16", model.ReservationCancelled)
	f.repo.seed(annexID, "2025-11-10", "2025-11-14", model.ReservationConfirmed)

	in, _ := dates.Parse("2025-11-14")
	out, _ := dates.Parse("2025-11-16")
	rooms, err := f.svc.FindAvailable(context.Background(), in, out)
	require.NoError(t, err)

	// 301 is booked, 501 is closed; the cancelled and back-to-back stays do not block.
	assert.Equal(t, []string{"101", "401"}, roomNumbers(rooms))
}

func TestFindAvailable_NeverReturnsOverlappingRoom(t *testing.T) {
	f := newFixture(t, true)
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{annexID, deluxeID, executiveID, closedID}
	statuses := []model.ReservationStatus{model.ReservationConfirmed, model.ReservationCancelled}

	for i := 0; i < 40; i++ {
		start := base.AddDate(0, 0, rng.Intn(60))
		end := start.AddDate(0, 0, 1+rng.Intn(6))
		f.repo.seed(ids[rng.Intn(len(ids))], dates.Format(start), dates.Format(end), statuses[rng.Intn(2)])
	}

	for i := 0; i < 200; i++ {
		checkIn := base.AddDate(0, 0, rng.Intn(60))
		checkOut := checkIn.AddDate(0, 0, 1+rng.Intn(10))

		rooms, err := f.svc.FindAvailable(context.Background(), checkIn, checkOut)
		require.NoError(t, err)

		for _, room := range rooms {
			require.True(t, room.Available)
			for _, res := range f.repo.reservations {
				if res.RoomID != room.ID || res.Status == model.ReservationCancelled {
					continue
				}
				require.False(t, res.CheckIn.Before(checkOut) && res.CheckOut.After(checkIn),
					"room %s returned for %s..%s despite reservation %s..%s",
					room.RoomNumber, dates.Format(checkIn), dates.Format(checkOut),
					dates.Format(res.CheckIn), dates.Format(res.CheckOut))
			}
		}
	}
}

func TestFindAvailable_StorageFailure(t *testing.T) {
	f := newFixture(t, true)
	f.repo.findOverlapErr = errors.New("connection reset")

	_, err := f.svc.Search(context.Background(), SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-16", Adults: 1})
	requireCode(t, err, apperrors.CodeInternal)

	f = newFixture(t, true)
	f.rooms.findErr = errors.New("server selection timeout")
	_, err = f.svc.Search(context.Background(), SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-16", Adults: 1})
	requireCode(t, err, apperrors.CodeInternal)
}

func TestSearch_Validation(t *testing.T) {
	f := newFixture(t, true)

	tests := []struct {
		name string
		req  SearchRequest
	}{
		{"unparseable check-in", SearchRequest{CheckIn: "soon", CheckOut: "2025-11-16", Adults: 1}},
		{"impossible date", SearchRequest{CheckIn: "2025-02-30", CheckOut: "2025-03-02", Adults: 1}},
		{"check-in in the past", SearchRequest{CheckIn: "2025-10-31", CheckOut: "2025-11-02", Adults: 1}},
		{"check-out equals check-in", SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-14", Adults: 1}},
		{"check-out before check-in", SearchRequest{CheckIn: "2025-11-16", CheckOut: "2025-11-14", Adults: 1}},
		{"no guests", SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-16"}},
		{"negative guests", SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-16", Adults: 2, Children: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Search(context.Background(), tt.req)
			requireCode(t, err, apperrors.CodeInvalidInput)
		})
	}
}

func TestSearch_AcceptsShortDatesAndToday(t *testing.T) {
	f := newFixture(t, true)

	result, err := f.svc.Search(context.Background(), SearchRequest{
		CheckIn: "1 Nov 25", CheckOut: "<b>3 nov 25</b>", Adults: 1, Children: 1, Infants: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-11-01", result.CheckIn)
	assert.Equal(t, "2025-11-03", result.CheckOut)
	assert.Equal(t, 3, result.Guests)
	assert.Equal(t, []string{"101", "301", "401"}, roomNumbers(result.Rooms))
}

func TestSearch_TodayIsHotelLocal(t *testing.T) {
	f := newFixture(t, true)
	// 23:30 UTC on 13 Nov is already 14 Nov in Lagos.
	f.svc.now = func() time.Time { return time.Date(2025, 11, 13, 23, 30, 0, 0, time.UTC) }

	_, err := f.svc.Search(context.Background(), SearchRequest{CheckIn: "2025-11-13", CheckOut: "2025-11-15", Adults: 1})
	requireCode(t, err, apperrors.CodeInvalidInput)

	_, err = f.svc.Search(context.Background(), SearchRequest{CheckIn: "2025-11-14", CheckOut: "2025-11-15", Adults: 1})
	require.NoError(t, err)
}

// ────────────────────────────────────────────────
// Prepare
// ────────────────────────────────────────────────

func TestPrepare_Errors(t *testing.T) {
	f := newFixture(t, true)

	tests := []struct {
		name string
		req  PrepareRequest
		code string
	}{
		{"malformed room id", PrepareRequest{RoomID: "301", CheckIn: "2025-11-14", CheckOut: "2025-11-16", Guests: 1}, apperrors.CodeNotFound},
		{"unknown room", PrepareRequest{RoomID: "ffffffffffffffffffffffff", CheckIn: "2025-11-14", CheckOut: "2025-11-16", Guests: 1}, apperrors.CodeNotFound},
		{"closed room", PrepareRequest{RoomID: closedID, CheckIn: "2025-11-14", CheckOut: "2025-11-16", Guests: 1}, apperrors.CodeRoomUnavailable},
		{"bad date", PrepareRequest{RoomID: deluxeID, CheckIn: "14/11/2025", CheckOut: "2025-11-16", Guests: 1}, apperrors.CodeInvalidInput},
		{"zero guests", PrepareRequest{RoomID: deluxeID, CheckIn: "2025-11-14", CheckOut: "2025-11-16", Guests: 0}, apperrors.CodeInvalidInput},
		{"too many guests", PrepareRequest{RoomID: deluxeID, CheckIn: "2025-11-14", CheckOut: "2025-11-16", Guests: model.MaxGuestsPerReservation + 1}, apperrors.CodeInvalidInput},
		{"zero nights", PrepareRequest{RoomID: deluxeID, CheckIn: "2025-11-14", CheckOut: "2025-11-14", Guests: 1}, apperrors.CodeInvalidInput},
		{"past check-in", PrepareRequest{RoomID: deluxeID, CheckIn: "2025-10-01", CheckOut: "2025-10-03", Guests: 1}, apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Prepare(context.Background(), tt.req)
			requireCode(t, err, tt.code)
		})
	}
}

// ────────────────────────────────────────────────
// Confirm
// ────────────────────────────────────────────────

func TestConfirm_PersistsNormalizedGuestAndPublishes(t *testing.T) {
	f := newFixture(t, true)
	guest := &auth.Principal{Subject: "guest-42", Role: auth.RoleGuest}

	reservation, err := f.svc.Confirm(context.Background(), guest, confirmRequest(deluxeID, "2025-11-14", "2025-11-16"))
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", reservation.GuestEmail)
	assert.Equal(t, "+2348031234567", reservation.GuestPhone)
	assert.Equal(t, "guest-42", reservation.UserID)
	assert.Equal(t, "NG", reservation.GuestCountry)
	assert.Equal(t, 2, reservation.Nights())

	require.Len(t, f.events.events, 1)
	event := f.events.events[0]
	assert.Equal(t, model.EventReservationConfirmed, event.Type)
	assert.Equal(t, reservation.ID, event.ReservationID)
	assert.Equal(t, "301", event.RoomNumber)
	assert.Equal(t, "2025-11-14", event.CheckIn)
	assert.Equal(t, 130000.0, event.TotalAmount)
	assert.Equal(t, "NG", event.GuestCountry)
}

func TestConfirm_InfersGuestCountry(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"local number", "0803 123 4567", "NG"},
		{"london number", "+44 20 7123 4567", "GB"},
		{"country outside the table", "+81 3 1234 5678", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			req := confirmRequest(deluxeID, "2025-11-14", "2025-11-16")
			req.GuestPhone = tt.phone

			reservation, err := f.svc.Confirm(context.Background(), nil, req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reservation.GuestCountry)
		})
	}
}

func TestConfirm_EventFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t, true)
	f.events.err = errors.New("broker unavailable")

	_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-14", "2025-11-16"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.confirmedFor(deluxeID))
}

func TestConfirm_GuestDetails(t *testing.T) {
	f := newFixture(t, true)

	tests := []struct {
		name   string
		mutate func(r *ConfirmRequest)
	}{
		{"blank name", func(r *ConfirmRequest) { r.GuestName = "   " }},
		{"missing email", func(r *ConfirmRequest) { r.GuestEmail = "" }},
		{"missing phone", func(r *ConfirmRequest) { r.GuestPhone = " " }},
		{"invalid email", func(r *ConfirmRequest) { r.GuestEmail = "ada-at-example" }},
		{"invalid phone", func(r *ConfirmRequest) { r.GuestPhone = "12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := confirmRequest(deluxeID, "2025-11-14", "2025-11-16")
			tt.mutate(&req)

			_, err := f.svc.Confirm(context.Background(), nil, req)
			appErr := requireCode(t, err, apperrors.CodeInvalidInput)
			assert.Equal(t, apperrors.RedirectConfirmation, appErr.Redirect())
		})
	}
	assert.Equal(t, 0, f.repo.confirmedFor(deluxeID))
}

func TestConfirm_RevalidatesRoom(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(closedID, "2025-11-14", "2025-11-16"))
	appErr := requireCode(t, err, apperrors.CodeRoomUnavailable)
	assert.Equal(t, apperrors.RedirectRooms, appErr.Redirect())

	_, err = f.svc.Confirm(context.Background(), nil, confirmRequest("nope", "2025-11-14", "2025-11-16"))
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-10-14", "2025-10-16"))
	appErr = requireCode(t, err, apperrors.CodeInvalidInput)
	assert.Equal(t, apperrors.RedirectConfirmation, appErr.Redirect())
}

// Confirm must accept every stay Prepare quoted once valid guest details
// are supplied.
func TestConfirm_AcceptsWhatPrepareAccepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ConfirmRequest)
	}{
		{"largest party", func(r *ConfirmRequest) { r.Guests = model.MaxGuestsPerReservation }},
		{"single letter name", func(r *ConfirmRequest) { r.GuestName = "A" }},
		{"padded single letter name", func(r *ConfirmRequest) { r.GuestName = "  Q  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			req := confirmRequest(deluxeID, "2025-11-14", "2025-11-16")
			tt.mutate(&req)

			_, err := f.svc.Prepare(context.Background(), req.PrepareRequest)
			require.NoError(t, err)

			_, err = f.svc.Confirm(context.Background(), nil, req)
			require.NoError(t, err)
			assert.Equal(t, 1, f.repo.confirmedFor(deluxeID))
		})
	}
}

func TestConfirm_RejectsWhatPrepareRejects(t *testing.T) {
	f := newFixture(t, true)
	req := confirmRequest(deluxeID, "2025-11-14", "2025-11-16")
	req.Guests = 25

	_, err := f.svc.Prepare(context.Background(), req.PrepareRequest)
	requireCode(t, err, apperrors.CodeInvalidInput)

	_, err = f.svc.Confirm(context.Background(), nil, req)
	appErr := requireCode(t, err, apperrors.CodeInvalidInput)
	assert.Equal(t, apperrors.RedirectConfirmation, appErr.Redirect())
	assert.Equal(t, 0, f.repo.confirmedFor(deluxeID))
}

func TestConfirm_LockHeldConflicts(t *testing.T) {
	f := newFixture(t, true)
	// second night of the stay is held elsewhere
	heldID := "room:" + deluxeID + ":2025-11-15"
	f.locks.locks[heldID] = "someone-else"

	_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-14", "2025-11-16"))
	appErr := requireCode(t, err, apperrors.CodeConflict)
	assert.Equal(t, apperrors.RedirectRooms, appErr.Redirect())
	assert.Equal(t, "someone-else", f.locks.locks[heldID], "foreign lock must survive")
	assert.Equal(t, 1, f.locks.held(), "nights locked before the conflict must be released")
}

func TestConfirm_ReleasesNightLocks(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-14", "2025-11-17"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.locks.held())
}

// While one confirm is in flight for the room, another confirm for
// different nights of the same room can lock its dates; one sharing a
// night cannot.
func TestConfirm_NightLocksOnlyContendOnSharedNights(t *testing.T) {
	f := newFixture(t, true)

	inFlight := make(chan struct{})
	resume := make(chan struct{})
	var hold sync.Once
	f.repo.onScopedCheck = func() {
		hold.Do(func() {
			close(inFlight)
			<-resume
		})
	}

	firstErr := make(chan error, 1)
	go func() {
		_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-14", "2025-11-16"))
		firstErr <- err
	}()
	<-inFlight

	stay := func(in, out string) *model.Reservation {
		checkIn, err := dates.Parse(in)
		require.NoError(t, err)
		checkOut, err := dates.Parse(out)
		require.NoError(t, err)
		return &model.Reservation{RoomID: deluxeID, CheckIn: checkIn, CheckOut: checkOut}
	}

	owner, err := f.svc.acquireNightLocks(context.Background(), stay("2025-12-20", "2025-12-22"))
	require.NoError(t, err, "disjoint nights must not contend")
	f.svc.releaseNightLocks(context.Background(), deluxeID, owner)

	owner, err = f.svc.acquireNightLocks(context.Background(), stay("2025-11-16", "2025-11-18"))
	require.NoError(t, err, "check-out night of the held stay is free")
	f.svc.releaseNightLocks(context.Background(), deluxeID, owner)

	_, err = f.svc.acquireNightLocks(context.Background(), stay("2025-11-15", "2025-11-17"))
	requireCode(t, err, apperrors.CodeConflict)

	close(resume)
	require.NoError(t, <-firstErr)
	assert.Equal(t, 0, f.locks.held())
}

func TestConfirm_DisjointStaysConfirmConcurrently(t *testing.T) {
	f := newFixture(t, true)

	stays := [][2]string{
		{"2025-11-14", "2025-11-16"},
		{"2025-12-20", "2025-12-22"},
		{"2025-11-16", "2025-11-18"},
		{"2026-01-02", "2026-01-05"},
	}

	errs := make([]error, len(stays))
	var wg sync.WaitGroup
	for i, stay := range stays {
		wg.Add(1)
		go func(i int, in, out string) {
			defer wg.Done()
			_, errs[i] = f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, in, out))
		}(i, stay[0], stay[1])
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "stay %v", stays[i])
	}
	assert.Equal(t, len(stays), f.repo.confirmedFor(deluxeID))
	assert.Equal(t, 0, f.locks.held())
}

func TestConfirm_StorageFailure(t *testing.T) {
	f := newFixture(t, true)
	f.repo.createErr = errors.New("not primary")

	_, err := f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-14", "2025-11-16"))
	requireCode(t, err, apperrors.CodeInternal)
	assert.Empty(t, f.events.events)
}

// The unlocked variant checks and inserts separately. When both checks run
// before either insert, both confirms succeed and the room is double-booked.
// This guards the locked path as the one that must be used in production.
func TestConfirm_UnlockedVariantCanDoubleBook(t *testing.T) {
	f := newFixture(t, false)

	var arrived sync.WaitGroup
	arrived.Add(2)
	f.repo.onScopedCheck = func() {
		arrived.Done()
		arrived.Wait()
	}

	errs := confirmConcurrently(f, 2)

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, f.repo.confirmedFor(deluxeID), "expected the race to double-book")
}

func TestConfirm_LockedVariantPreventsDoubleBooking(t *testing.T) {
	f := newFixture(t, true)

	errs := confirmConcurrently(f, 8)

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireCode(t, err, apperrors.CodeConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.repo.confirmedFor(deluxeID))
}

func confirmConcurrently(f *fixture, n int) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-14", "2025-11-16"))
		}(i)
	}
	wg.Wait()
	return errs
}

// ────────────────────────────────────────────────
// Reads and cancellation
// ────────────────────────────────────────────────

func TestGetByReference(t *testing.T) {
	f := newFixture(t, true)
	seeded := f.repo.seed(deluxeID, "2025-11-14", "2025-11-16", model.ReservationConfirmed)

	view, err := f.svc.GetByReference(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Room)
	assert.Equal(t, "301", view.Room.RoomNumber)
	assert.Equal(t, seeded.ID, view.ID)

	_, err = f.svc.GetByReference(context.Background(), "not-a-reference")
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = f.svc.GetByReference(context.Background(), "ffffffffffffffffffffffff")
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t, true)
	seeded := f.repo.seed(deluxeID, "2025-11-14", "2025-11-16", model.ReservationConfirmed)

	_, err := f.svc.Cancel(context.Background(), nil, seeded.ID)
	requireCode(t, err, apperrors.CodeUnauthorized)

	_, err = f.svc.Cancel(context.Background(), &auth.Principal{Subject: "g", Role: auth.RoleGuest}, seeded.ID)
	requireCode(t, err, apperrors.CodeForbidden)

	cancelled, err := f.svc.Cancel(context.Background(), admin, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)

	_, err = f.svc.Cancel(context.Background(), admin, seeded.ID)
	requireCode(t, err, apperrors.CodeConflict)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, model.EventReservationCancelled, f.events.events[0].Type)

	// The cancelled stay no longer blocks the room.
	_, err = f.svc.Confirm(context.Background(), nil, confirmRequest(deluxeID, "2025-11-15", "2025-11-17"))
	require.NoError(t, err)
}

func TestList(t *testing.T) {
	f := newFixture(t, true)
	f.repo.seed(deluxeID, "2025-11-14", "2025-11-16", model.ReservationConfirmed)
	f.repo.seed(annexID, "2025-11-14", "2025-11-16", model.ReservationCancelled)

	all, total, err := f.svc.List(context.Background(), admin, 10, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), total)

	cancelled, total, err := f.svc.List(context.Background(), admin, 10, 0, "Cancelled")
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = f.svc.List(context.Background(), admin, 10, 0, "pending")
	requireCode(t, err, apperrors.CodeInvalidInput)

	_, _, err = f.svc.List(context.Background(), nil, 10, 0, "")
	requireCode(t, err, apperrors.CodeUnauthorized)
}

func roomNumbers(rooms []*model.Room) []string {
	numbers := make([]string, 0, len(rooms))
	for _, r := range rooms {
		numbers = append(numbers, r.RoomNumber)
	}
	return numbers
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	bookingserrors "fullmoon/internal/bookings/errors"
	"fullmoon/internal/bookings/repository"
	"fullmoon/internal/bookings/validator"
	roomserrors "fullmoon/internal/rooms/errors"
	roomsrepository "fullmoon/internal/rooms/repository"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	"fullmoon/pkg/dates"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/locale"
	"fullmoon/pkg/model"
	"fullmoon/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*model.Room, error)
	Prepare(ctx context.Context, req PrepareRequest) (*Quote, error)
	Confirm(ctx context.Context, p *auth.Principal, req ConfirmRequest) (*model.Reservation, error)
	GetByReference(ctx context.Context, id string) (*model.ReservationView, error)
	Cancel(ctx context.Context, p *auth.Principal, id string) (*model.Reservation, error)
	List(ctx context.Context, p *auth.Principal, limit int, offset int64, status string) ([]*model.Reservation, int64, error)
}

// EventSink receives reservation events once the change is committed.
type EventSink interface {
	Deliver(ctx context.Context, event model.ReservationEvent) error
}

type bookingService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.BookingLockRepository
	rooms     roomsrepository.RoomRepository
	validator *validator.BookingValidator
	events    EventSink
	cfg       *config.Config
	now       func() time.Time
}

// NewBookingService wires the booking flow. events may be nil.
func NewBookingService(
	repo repository.ReservationRepository,
	lockRepo repository.BookingLockRepository,
	rooms roomsrepository.RoomRepository,
	validator *validator.BookingValidator,
	events EventSink,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		validator: validator,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	checkIn, checkOut, err := s.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	if req.Adults < 0 || req.Children < 0 || req.Infants < 0 {
		return nil, apperrors.InvalidInput("Guest counts cannot be negative")
	}
	guests := req.Adults + req.Children + req.Infants
	if guests <= 0 {
		return nil, apperrors.InvalidInput("At least one guest is required")
	}

	rooms, err := s.FindAvailable(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Debug("Availability search completed",
		"check_in", dates.Format(checkIn),
		"check_out", dates.Format(checkOut),
		"guests", guests,
		"available", len(rooms),
	)
	return &SearchResult{
		CheckIn:  dates.Format(checkIn),
		CheckOut: dates.Format(checkOut),
		Nights:   dates.Nights(checkIn, checkOut),
		Guests:   guests,
		Rooms:    rooms,
	}, nil
}

// FindAvailable returns the generally available rooms that have no
// non-cancelled reservation intersecting [checkIn, checkOut), in catalog
// order. Callers validate the dates.
func (s *bookingService) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*model.Room, error) {
	var rooms []*model.Room
	var reservations []*model.Reservation
	var errRooms, errReservations error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		rooms, errRooms = s.rooms.FindAvailable(ctx)
		if errRooms != nil {
			s.cfg.Log.Error("Failed to load rooms", "error", errRooms)
			errRooms = apperrors.Internal("Failed to load rooms", errRooms)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errReservations = s.repo.FindOverlapping(ctx, nil, checkIn, checkOut)
		if errReservations != nil {
			s.cfg.Log.Error("Failed to load overlapping reservations",
				"check_in", checkIn,
				"check_out", checkOut,
				"error", errReservations,
			)
			errReservations = apperrors.Internal("Failed to load reservations", errReservations)
		}
	}()

	wg.Wait()
	if errRooms != nil {
		return nil, errRooms
	}
	if errReservations != nil {
		return nil, errReservations
	}

	booked := make(map[string]struct{}, len(reservations))
	for _, r := range reservations {
		booked[r.RoomID] = struct{}{}
	}

	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, taken := booked[room.ID]; !taken {
			available = append(available, room)
		}
	}
	return available, nil
}

func (s *bookingService) Prepare(ctx context.Context, req PrepareRequest) (*Quote, error) {
	room, err := s.loadBookableRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut, err := s.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	if req.Guests <= 0 {
		return nil, apperrors.InvalidInput("Number of guests must be a positive number")
	}
	if req.Guests > model.MaxGuestsPerReservation {
		return nil, apperrors.InvalidInput(fmt.Sprintf("A reservation can hold at most %d guests", model.MaxGuestsPerReservation))
	}

	nights := dates.Nights(checkIn, checkOut)
	if nights < 1 {
		return nil, apperrors.InvalidInput("A stay must be at least one night")
	}

	return &Quote{
		Room:        room,
		CheckIn:     dates.Format(checkIn),
		CheckOut:    dates.Format(checkOut),
		Guests:      req.Guests,
		Nights:      nights,
		TotalAmount: float64(nights) * room.Price,
		checkIn:     checkIn,
		checkOut:    checkOut,
	}, nil
}

func (s *bookingService) Confirm(ctx context.Context, p *auth.Principal, req ConfirmRequest) (*model.Reservation, error) {
	guestName := sanitizer.NormalizeName(req.GuestName)
	guestEmail := sanitizer.NormalizeEmail(req.GuestEmail)
	guestPhone := strings.TrimSpace(req.GuestPhone)
	if guestName == "" || guestEmail == "" || guestPhone == "" {
		return nil, apperrors.InvalidInput("Please fill in all guest details").
			WithRedirect(apperrors.RedirectConfirmation)
	}
	if !s.validator.ValidateEmail(guestEmail) {
		return nil, apperrors.InvalidInput("Please provide a valid email address").
			WithRedirect(apperrors.RedirectConfirmation)
	}
	normalizedPhone := sanitizer.NormalizePhone(guestPhone, s.cfg.PhoneRegion)
	if normalizedPhone == "" {
		return nil, apperrors.InvalidInput("Please provide a valid phone number").
			WithRedirect(apperrors.RedirectConfirmation)
	}

	quote, err := s.Prepare(ctx, req.PrepareRequest)
	if err != nil {
		return nil, withRedirect(err)
	}

	reservation := &model.Reservation{
		RoomID:      quote.Room.ID,
		CheckIn:     quote.checkIn,
		CheckOut:    quote.checkOut,
		Guests:      quote.Guests,
		TotalAmount: quote.TotalAmount,
		Status:      model.ReservationConfirmed,
		GuestName:   guestName,
		GuestEmail:  guestEmail,
		GuestPhone:  normalizedPhone,
	}
	if country := locale.InferCountryFromPhone(normalizedPhone); country != nil {
		reservation.GuestCountry = country.Code
	}
	if p != nil {
		reservation.UserID = p.Subject
	}

	if err := s.validator.Validate(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "room_id", reservation.RoomID, "error", err)
		return nil, apperrors.InvalidInput("Reservation details are invalid").
			WithDetails(map[string]any{"error": err.Error()}).
			WithRedirect(apperrors.RedirectConfirmation)
	}

	if s.cfg.BookingLockEnabled {
		err = s.confirmLocked(ctx, reservation)
	} else {
		err = s.confirmUnlocked(ctx, reservation)
	}
	if err != nil {
		s.cfg.Log.Warn("Failed to confirm reservation",
			"room_id", reservation.RoomID,
			"check_in", dates.Format(reservation.CheckIn),
			"check_out", dates.Format(reservation.CheckOut),
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Reservation confirmed successfully",
		"id", reservation.ID,
		"room_id", reservation.RoomID,
		"room_number", quote.Room.RoomNumber,
		"check_in", dates.Format(reservation.CheckIn),
		"check_out", dates.Format(reservation.CheckOut),
		"total_amount", reservation.TotalAmount,
	)

	s.publish(ctx, model.EventReservationConfirmed, reservation, quote.Room)
	return reservation, nil
}

// confirmLocked holds an advisory lock on every night of the stay and
// runs the overlap check and the insert in one transaction.
func (s *bookingService) confirmLocked(ctx context.Context, reservation *model.Reservation) error {
	owner, err := s.acquireNightLocks(ctx, reservation)
	if err != nil {
		return err
	}
	defer s.releaseNightLocks(context.WithoutCancel(ctx), reservation.RoomID, owner)

	return s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, reservation); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
}

// confirmUnlocked checks and writes as two separate operations; concurrent
// confirms for the same room and dates can both succeed.
func (s *bookingService) confirmUnlocked(ctx context.Context, reservation *model.Reservation) error {
	if err := s.verifyNoOverlap(ctx, reservation); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return apperrors.Internal("Failed to create reservation", err)
	}
	return nil
}

func (s *bookingService) GetByReference(ctx context.Context, id string) (*model.ReservationView, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &model.ReservationView{Reservation: reservation}
	room, err := s.rooms.FindByID(ctx, reservation.RoomID)
	switch {
	case err == nil:
		view.Room = room
	case errors.Is(err, roomserrors.ErrNotFound) || errors.Is(err, roomserrors.ErrInvalidID):
		s.cfg.Log.Warn("Reservation references a missing room", "id", id, "room_id", reservation.RoomID)
	default:
		s.cfg.Log.Error("Failed to load reservation room", "id", id, "room_id", reservation.RoomID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return view, nil
}

func (s *bookingService) Cancel(ctx context.Context, p *auth.Principal, id string) (*model.Reservation, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(model.ReservationCancelled) {
		return nil, apperrors.Conflict(fmt.Sprintf("Reservation is already %s", reservation.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, reservation.Status, model.ReservationCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Reservation was modified by another request")
		}
		s.cfg.Log.Error("Failed to cancel reservation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel reservation", err)
	}
	reservation.Status = model.ReservationCancelled
	reservation.UpdatedAt = s.now().UTC()

	s.cfg.Log.Info("Reservation cancelled", "id", id, "room_id", reservation.RoomID, "admin", p.Subject)

	room, err := s.rooms.FindByID(ctx, reservation.RoomID)
	if err != nil {
		s.cfg.Log.Warn("Cancelled reservation room lookup failed", "id", id, "error", err)
		room = &model.Room{ID: reservation.RoomID}
	}
	s.publish(ctx, model.EventReservationCancelled, reservation, room)
	return reservation, nil
}

func (s *bookingService) List(ctx context.Context, p *auth.Principal, limit int, offset int64, status string) ([]*model.Reservation, int64, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, 0, err
	}

	filter := model.ReservationStatus(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && filter != model.ReservationConfirmed && filter != model.ReservationCancelled {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("Unknown reservation status: %q", status))
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset, filter)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

// --- Helpers ---

// parseStay parses both dates and checks check-in is not before today in
// the hotel's timezone and check-out is after check-in.
func (s *bookingService) parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := dates.Parse(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("Invalid check-in date")
	}
	checkOut, err := dates.Parse(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("Invalid check-out date")
	}

	today := dates.Today(s.cfg.Location(), s.now())
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("Check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("Check-out date must be after check-in date")
	}

	return checkIn, checkOut, nil
}

func (s *bookingService) loadBookableRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, strings.TrimSpace(roomID))
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) || errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		s.cfg.Log.Error("Failed to load room", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to load room", err)
	}
	if !room.Available {
		return nil, apperrors.RoomUnavailable(fmt.Sprintf("Room %s is not available for booking", room.RoomNumber))
	}
	return room, nil
}

func (s *bookingService) findReservation(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to retrieve reservation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}
	return reservation, nil
}

func (s *bookingService) verifyNoOverlap(ctx context.Context, reservation *model.Reservation) error {
	roomID := reservation.RoomID
	existing, err := s.repo.FindOverlapping(ctx, &roomID, reservation.CheckIn, reservation.CheckOut)
	if err != nil {
		return apperrors.Internal("Failed to check existing reservations", err)
	}

	for _, r := range existing {
		if dates.Overlaps(r.CheckIn, r.CheckOut, reservation.CheckIn, reservation.CheckOut) {
			return apperrors.Conflict(fmt.Sprintf(
				"Room is already booked from %s to %s. Please choose another room or different dates.",
				dates.Format(r.CheckIn),
				dates.Format(r.CheckOut),
			)).WithRedirect(apperrors.RedirectRooms)
		}
	}
	return nil
}

// acquireNightLocks locks each night of the reservation under one owner.
// It returns a conflict error while another confirm holds any of the same
// nights; confirms for other nights of the room proceed.
func (s *bookingService) acquireNightLocks(ctx context.Context, reservation *model.Reservation) (string, error) {
	owner := uuid.NewString()
	expiresAt := s.now().UTC().Add(s.cfg.BookingLockTTL)

	ids := model.NightLockIDs(reservation.RoomID, reservation.CheckIn, reservation.CheckOut)
	locks := make([]*model.BookingLock, 0, len(ids))
	for _, id := range ids {
		locks = append(locks, &model.BookingLock{ID: id, Owner: owner, ExpiresAt: expiresAt})
	}

	if err := s.lockRepo.CreateAll(ctx, locks); err != nil {
		// an ordered insert keeps the nights stored before the failure
		s.releaseNightLocks(context.WithoutCancel(ctx), reservation.RoomID, owner)
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return "", apperrors.Conflict("These dates are currently being booked by another guest. Please try again.").
				WithRedirect(apperrors.RedirectRooms)
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return owner, nil
}

func (s *bookingService) releaseNightLocks(ctx context.Context, roomID, owner string) {
	if err := s.lockRepo.DeleteByOwner(ctx, owner); err != nil {
		s.cfg.Log.Warn("Failed to release booking locks", "room_id", roomID, "owner", owner, "error", err)
	}
}

// withRedirect points failures of a stale confirmation back to the form
// the guest can retry from.
func withRedirect(err error) error {
	if !apperrors.IsAppError(err) {
		return err
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Redirect() != "" {
		return err
	}
	switch appErr.Code {
	case apperrors.CodeNotFound, apperrors.CodeRoomUnavailable, apperrors.CodeConflict:
		return appErr.WithRedirect(apperrors.RedirectRooms)
	case apperrors.CodeInvalidInput:
		return appErr.WithRedirect(apperrors.RedirectConfirmation)
	}
	return err
}

func (s *bookingService) publish(ctx context.Context, eventType string, reservation *model.Reservation, room *model.Room) {
	if s.events == nil {
		return
	}

	event := model.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		Status:        reservation.Status,
		RoomID:        reservation.RoomID,
		RoomNumber:    room.RoomNumber,
		RoomType:      room.Type,
		CheckIn:       dates.Format(reservation.CheckIn),
		CheckOut:      dates.Format(reservation.CheckOut),
		Nights:        reservation.Nights(),
		Guests:        reservation.Guests,
		TotalAmount:   reservation.TotalAmount,
		GuestName:     reservation.GuestName,
		GuestEmail:    reservation.GuestEmail,
		GuestCountry:  reservation.GuestCountry,
		OccurredAt:    s.now().UTC(),
	}

	if err := s.events.Deliver(context.WithoutCancel(ctx), event); err != nil {
		s.cfg.Log.Error("Failed to deliver reservation event",
			"type", eventType,
			"id", reservation.ID,
			"error", err,
		)
	}
}

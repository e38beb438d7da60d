package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	facilitieserrors "fullmoon/internal/facilities/errors"
	"fullmoon/internal/facilities/repository"
	"fullmoon/internal/facilities/validator"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	"fullmoon/pkg/dates"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/model"
	"fullmoon/pkg/sanitizer"
)

type BookingService interface {
	Book(ctx context.Context, p *auth.Principal, req BookRequest) (*model.FacilityBooking, error)
	ListMine(ctx context.Context, p *auth.Principal) ([]*model.FacilityBooking, error)
	Cancel(ctx context.Context, p *auth.Principal, id string) (*model.FacilityBooking, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	facilities repository.FacilityRepository
	validator  *validator.FacilityValidator
	cfg        *config.Config
	now        func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	facilities repository.FacilityRepository,
	validator *validator.FacilityValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		facilities: facilities,
		validator:  validator,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *bookingService) Book(ctx context.Context, p *auth.Principal, req BookRequest) (*model.FacilityBooking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	facility, err := s.facilities.FindByID(ctx, strings.TrimSpace(req.FacilityID))
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) || errors.Is(err, facilitieserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Facility", req.FacilityID)
		}
		s.cfg.Log.Error("Failed to load facility", "facility_id", req.FacilityID, "error", err)
		return nil, apperrors.Internal("Failed to book facility", err)
	}
	if !facility.Bookable || !facility.Available {
		return nil, apperrors.Conflict(fmt.Sprintf("%s is not available for booking", facility.Name))
	}

	date, err := dates.Parse(req.Date)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid booking date")
	}
	if date.Before(dates.Today(s.cfg.Location(), s.now())) {
		return nil, apperrors.InvalidInput("Booking date cannot be in the past")
	}
	if req.Guests > facility.MaxGuests {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s accepts at most %d guests", facility.Name, facility.MaxGuests))
	}

	booking := &model.FacilityBooking{
		UserID:          p.Subject,
		FacilityID:      facility.ID,
		FacilityName:    facility.Name,
		BookingDate:     date,
		BookingTime:     strings.TrimSpace(req.Time),
		Duration:        req.Duration,
		Guests:          req.Guests,
		SpecialRequests: sanitizer.TrimAndNormalize(req.SpecialRequests),
		Status:          model.FacilityBookingConfirmed,
		TotalAmount:     facility.PricePerHour * float64(req.Duration),
	}

	if err := s.validator.ValidateBooking(booking); err != nil {
		s.cfg.Log.Warn("Facility booking validation failed", "facility_id", facility.ID, "error", err)
		return nil, apperrors.Validation("Facility booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create facility booking", "facility_id", facility.ID, "error", err)
		return nil, apperrors.Internal("Failed to book facility", err)
	}

	s.cfg.Log.Info("Facility booked successfully",
		"id", booking.ID,
		"facility", facility.Name,
		"user_id", booking.UserID,
		"date", dates.Format(booking.BookingDate),
		"time", booking.BookingTime,
		"total_amount", booking.TotalAmount,
	)
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, p *auth.Principal) ([]*model.FacilityBooking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByUser(ctx, p.Subject)
	if err != nil {
		s.cfg.Log.Error("Failed to list facility bookings", "user_id", p.Subject, "error", err)
		return nil, apperrors.Internal("Failed to fetch bookings", err)
	}
	return bookings, nil
}

// Cancel cancels one of the caller's own pending or confirmed bookings.
// Bookings of other users read as missing.
func (s *bookingService) Cancel(ctx context.Context, p *auth.Principal, id string) (*model.FacilityBooking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrBookingNotFound) || errors.Is(err, facilitieserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to retrieve facility booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	if booking.UserID != p.Subject {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	if !booking.Status.Cancellable() {
		return nil, apperrors.Conflict(fmt.Sprintf("Booking is already %s", booking.Status))
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, model.FacilityBookingCancelled); err != nil {
		if errors.Is(err, facilitieserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Booking was modified by another request")
		}
		s.cfg.Log.Error("Failed to cancel facility booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	booking.Status = model.FacilityBookingCancelled

	s.cfg.Log.Info("Facility booking cancelled", "id", id, "user_id", p.Subject)
	return booking, nil
}

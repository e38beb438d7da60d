package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	facilitieserrors "fullmoon/internal/facilities/errors"
	"fullmoon/internal/facilities/repository"
	"fullmoon/internal/facilities/validator"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/model"
	"fullmoon/pkg/sanitizer"
)

type FacilityService interface {
	ListAvailable(ctx context.Context) ([]*model.Facility, error)
	ListByType(ctx context.Context, facilityType string) ([]*model.Facility, error)
	GetByID(ctx context.Context, id string) (*model.Facility, error)

	List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.Facility, int64, error)
	Create(ctx context.Context, p *auth.Principal, facility *model.Facility) error
	Update(ctx context.Context, p *auth.Principal, id string, update *model.FacilityUpdate) (*model.Facility, error)
	Delete(ctx context.Context, p *auth.Principal, id string) error
}

type facilityService struct {
	repo      repository.FacilityRepository
	validator *validator.FacilityValidator
	cfg       *config.Config
}

func NewFacilityService(repo repository.FacilityRepository, validator *validator.FacilityValidator, cfg *config.Config) FacilityService {
	return &facilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *facilityService) ListAvailable(ctx context.Context) ([]*model.Facility, error) {
	facilities, err := s.repo.FindAvailable(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list facilities", "error", err)
		return nil, apperrors.Internal("Failed to fetch facilities", err)
	}
	return facilities, nil
}

func (s *facilityService) ListByType(ctx context.Context, facilityType string) ([]*model.Facility, error) {
	t := model.FacilityType(sanitizer.NormalizeTag(facilityType))
	if !t.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown facility type: %q", facilityType))
	}

	facilities, err := s.repo.FindAvailableByType(ctx, t)
	if err != nil {
		s.cfg.Log.Error("Failed to list facilities by type", "type", t, "error", err)
		return nil, apperrors.Internal("Failed to fetch facilities", err)
	}
	return facilities, nil
}

func (s *facilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	facility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "Failed to retrieve facility")
	}
	return facility, nil
}

func (s *facilityService) List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.Facility, int64, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, 0, err
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var facilities []*model.Facility
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count facilities", "error", errCount)
			errCount = apperrors.Internal("Failed to count facilities", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		facilities, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list facilities", "error", errFind)
			errFind = apperrors.Internal("Failed to fetch facilities", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return facilities, count, nil
}

func (s *facilityService) Create(ctx context.Context, p *auth.Principal, facility *model.Facility) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	s.sanitize(facility)
	if err := s.validate(facility); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		if errors.Is(err, facilitieserrors.ErrDuplicateName) {
			return apperrors.Conflict(fmt.Sprintf("Facility %q already exists", facility.Name))
		}
		s.cfg.Log.Error("Failed to create facility", "name", facility.Name, "error", err)
		return apperrors.Internal("Failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created successfully",
		"id", facility.ID,
		"name", facility.Name,
		"type", facility.Type,
		"admin", p.Subject,
	)
	return nil
}

func (s *facilityService) Update(ctx context.Context, p *auth.Principal, id string, update *model.FacilityUpdate) (*model.Facility, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "Failed to check facility existence")
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Facility update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := mergeFacilityUpdate(existing, update)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, facilitieserrors.ErrDuplicateName) {
			return nil, apperrors.Conflict(fmt.Sprintf("Facility %q already exists", merged.Name))
		}
		return nil, s.translate(err, id, "Failed to update facility")
	}

	s.cfg.Log.Info("Facility updated successfully", "id", id, "admin", p.Subject)
	return merged, nil
}

func (s *facilityService) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id, "Failed to delete facility")
	}

	s.cfg.Log.Info("Facility deleted successfully", "id", id, "admin", p.Subject)
	return nil
}

// --- Helpers ---

func (s *facilityService) translate(err error, id, message string) error {
	if errors.Is(err, facilitieserrors.ErrNotFound) || errors.Is(err, facilitieserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Facility", id)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *facilityService) sanitize(facility *model.Facility) {
	facility.Name = sanitizer.TrimAndNormalize(facility.Name)
	facility.Type = model.FacilityType(sanitizer.NormalizeTag(string(facility.Type)))
	facility.Description = sanitizer.TrimAndNormalize(facility.Description)
	facility.ShortDescription = sanitizer.TrimAndNormalize(facility.ShortDescription)
	facility.Image = sanitizer.NormalizeImageRef(facility.Image)
	facility.Images = sanitizer.NormalizeImages(facility.Images)
	facility.Amenities = sanitizer.NormalizeAmenities(facility.Amenities)
	facility.Rules = sanitizer.NormalizeAmenities(facility.Rules)
	facility.Location = sanitizer.TrimAndNormalize(facility.Location)
	facility.ContactInfo.Email = sanitizer.NormalizeEmail(facility.ContactInfo.Email)
	if facility.ContactInfo.Phone != "" {
		if normalized := sanitizer.NormalizePhone(facility.ContactInfo.Phone, s.cfg.PhoneRegion); normalized != "" {
			facility.ContactInfo.Phone = normalized
		}
	}
}

func (s *facilityService) validate(facility *model.Facility) error {
	if err := s.validator.Validate(facility); err != nil {
		s.cfg.Log.Warn("Facility validation failed", "name", facility.Name, "error", err)
		return apperrors.Validation("Facility validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func mergeFacilityUpdate(existing *model.Facility, update *model.FacilityUpdate) *model.Facility {
	merged := *existing

	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Type != "" {
		merged.Type = update.Type
	}
	if update.Description != "" {
		merged.Description = update.Description
	}
	if update.ShortDescription != "" {
		merged.ShortDescription = update.ShortDescription
	}
	if update.Image != "" {
		merged.Image = update.Image
	}
	if update.Capacity != nil {
		merged.Capacity = *update.Capacity
	}
	if update.OperatingHours != nil {
		merged.OperatingHours = *update.OperatingHours
	}
	if update.PricePerHour != nil {
		merged.PricePerHour = *update.PricePerHour
	}
	if update.MaxGuests != nil {
		merged.MaxGuests = *update.MaxGuests
	}
	if update.Bookable != nil {
		merged.Bookable = *update.Bookable
	}
	if update.Featured != nil {
		merged.Featured = *update.Featured
	}
	if update.Available != nil {
		merged.Available = *update.Available
	}
	if update.Amenities != nil {
		merged.Amenities = *update.Amenities
	}
	if update.Rules != nil {
		merged.Rules = *update.Rules
	}

	return &merged
}

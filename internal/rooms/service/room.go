package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	roomserrors "fullmoon/internal/rooms/errors"
	"fullmoon/internal/rooms/repository"
	"fullmoon/internal/rooms/validator"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/model"
	"fullmoon/pkg/sanitizer"
)

type RoomService interface {
	ListAvailable(ctx context.Context) ([]*model.Room, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Room, error)

	List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.Room, int64, error)
	Create(ctx context.Context, p *auth.Principal, room *model.Room) error
	Update(ctx context.Context, p *auth.Principal, id string, update *model.RoomUpdate) (*model.Room, error)
	SetAvailability(ctx context.Context, p *auth.Principal, id string, available bool) error
	Delete(ctx context.Context, p *auth.Principal, id string) error
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(repo repository.RoomRepository, validator *validator.RoomValidator, cfg *config.Config) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) ListAvailable(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAvailable(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list available rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *roomService) ListByCategory(ctx context.Context, category string) ([]*model.Room, error) {
	roomType, ok := model.ParseRoomType(category)
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown room category: %q", category))
	}

	rooms, err := s.repo.FindAvailableByType(ctx, roomType)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms by category", "category", roomType, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	if len(rooms) == 0 {
		return nil, apperrors.NotFound(roomType.Label() + " rooms")
	}
	return rooms, nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "Failed to retrieve room")
	}
	return room, nil
}

func (s *roomService) List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.Room, int64, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, 0, err
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Create(ctx context.Context, p *auth.Principal, room *model.Room) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	s.sanitize(room)
	if err := s.validate(room); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateRoomNumber) {
			return apperrors.Conflict(fmt.Sprintf("Room %s already exists", room.RoomNumber))
		}
		s.cfg.Log.Error("Failed to create room", "room_number", room.RoomNumber, "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID,
		"room_number", room.RoomNumber,
		"type", room.Type,
		"admin", p.Subject,
	)
	return nil
}

func (s *roomService) Update(ctx context.Context, p *auth.Principal, id string, update *model.RoomUpdate) (*model.Room, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "Failed to check room existence")
	}

	if parsed, ok := model.ParseRoomType(string(update.Type)); ok {
		update.Type = parsed
	}
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := mergeRoomUpdate(existing, update)
	s.sanitize(merged)
	newImages := sanitizer.NormalizeImages(update.NewImages)
	merged.Images = append(merged.Images, newImages...)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged, newImages); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateRoomNumber) {
			return nil, apperrors.Conflict(fmt.Sprintf("Room %s already exists", merged.RoomNumber))
		}
		return nil, s.translate(err, id, "Failed to update room")
	}

	s.cfg.Log.Info("Room updated successfully", "id", id, "admin", p.Subject)
	return merged, nil
}

func (s *roomService) SetAvailability(ctx context.Context, p *auth.Principal, id string, available bool) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return s.translate(err, id, "Failed to update room availability")
	}

	s.cfg.Log.Info("Room availability changed", "id", id, "available", available, "admin", p.Subject)
	return nil
}

func (s *roomService) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id, "Failed to delete room")
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id, "admin", p.Subject)
	return nil
}

// --- Helpers ---

// translate maps repository errors; a malformed id reads as a missing room.
func (s *roomService) translate(err error, id, message string) error {
	if errors.Is(err, roomserrors.ErrNotFound) || errors.Is(err, roomserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Room", id)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *roomService) sanitize(room *model.Room) {
	room.RoomNumber = sanitizer.TrimAndNormalize(room.RoomNumber)
	room.Description = sanitizer.TrimAndNormalize(room.Description)
	room.Amenities = sanitizer.NormalizeAmenities(room.Amenities)
	room.Images = sanitizer.NormalizeImages(room.Images)
	if parsed, ok := model.ParseRoomType(string(room.Type)); ok {
		room.Type = parsed
	}
}

func (s *roomService) validate(room *model.Room) error {
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "room_number", room.RoomNumber, "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func mergeRoomUpdate(existing *model.Room, update *model.RoomUpdate) *model.Room {
	merged := *existing

	if update.RoomNumber != "" {
		merged.RoomNumber = update.RoomNumber
	}
	if update.Type != "" {
		merged.Type = update.Type
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}
	if update.Description != "" {
		merged.Description = update.Description
	}
	if update.Amenities != nil {
		merged.Amenities = *update.Amenities
	}
	if update.Available != nil {
		merged.Available = *update.Available
	}

	return &merged
}

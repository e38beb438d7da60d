// Package seed loads the hotel's sample room catalogue.
package seed

import (
	"context"
	"fmt"

	"fullmoon/internal/rooms/repository"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"
)

func SampleRooms() []*model.Room {
	return []*model.Room{
		{
			RoomNumber:  "101",
			Type:        model.RoomTypeAnnex,
			Price:       50000,
			Description: "Comfortable and well-appointed room with modern amenities",
			Amenities:   []string{"Free WiFi", "Air Conditioning", "Flat-screen TV", "Mini Bar", "Work Desk"},
			Images:      []string{"/assets/images/room-annex.jpg"},
		},
		{
			RoomNumber:  "201",
			Type:        model.RoomTypePremiere,
			Price:       55000,
			Description: "Panoramic city view, high floor with elegant decor",
			Amenities:   []string{"Free WiFi", "Air Conditioning", "Smart TV", "Mini Bar", "Work Desk", "City View"},
			Images:      []string{"/assets/images/room-premiere.jpg"},
		},
		{
			RoomNumber:  "301",
			Type:        model.RoomTypeDeluxe,
			Price:       65000,
			Description: "Separate lounge and dining set with premium furnishings",
			Amenities:   []string{"Free WiFi", "Air Conditioning", "Smart TV", "Mini Bar", "Separate Lounge", "Dining Area"},
			Images:      []string{"/assets/images/room-deluxe.jpg"},
		},
		{
			RoomNumber:  "401",
			Type:        model.RoomTypeExecutive,
			Price:       80000,
			Description: "Art deco-style room with premium amenities and workspace",
			Amenities:   []string{"Free WiFi", "Air Conditioning", "Smart TV", "Mini Bar", "Executive Desk", "Premium Toiletries"},
			Images:      []string{"/assets/images/room-executive.jpg"},
		},
		{
			RoomNumber:  "501",
			Type:        model.RoomTypePenthouseSingle,
			Price:       140000,
			Description: "Luxury suite with panoramic views and premium amenities",
			Amenities:   []string{"Free WiFi", "Air Conditioning", "Smart TV", "Mini Bar", "Separate Living Room", "Premium Bathroom"},
			Images:      []string{"/assets/images/room-penthouse-single.jpg"},
		},
		{
			RoomNumber:  "502",
			Type:        model.RoomTypePenthouseDouble,
			Price:       200000,
			Description: "Ultimate luxury with two bedrooms and spacious living area",
			Amenities:   []string{"Free WiFi", "Air Conditioning", "Smart TV", "Mini Bar", "Two Bedrooms", "Spacious Lounge", "Dining Area"},
			Images:      []string{"/assets/images/room-penthouse-double.jpg"},
		},
	}
}

// Run replaces every stored room with the sample catalogue. All rooms are
// inserted as available.
func Run(ctx context.Context, repo repository.RoomRepository, log *logger.Logger) (int, error) {
	deleted, err := repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear rooms: %w", err)
	}
	log.Info("Cleared existing rooms", "count", deleted)

	rooms := SampleRooms()
	for _, room := range rooms {
		room.Available = true
		if err := repo.Create(ctx, room); err != nil {
			return 0, fmt.Errorf("failed to insert room %s: %w", room.RoomNumber, err)
		}
	}

	log.Info("Sample rooms inserted successfully", "count", len(rooms))
	return len(rooms), nil
}

//go:build integration

package testutil

import (
	"testing"
	"time"

	"fullmoon/pkg/client"
	"fullmoon/pkg/dates"
	"fullmoon/pkg/model"
)

type RoomBuilder struct {
	room model.Room
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		room: model.Room{
			RoomNumber:  "101",
			Type:        model.RoomTypeDeluxe,
			Price:       100000,
			Description: "Spacious deluxe room with a garden view.",
			Amenities:   []string{"Wi-Fi", "Air Conditioning"},
			Images:      []string{"https://cdn.fullmoon.test/rooms/101.jpg"},
			Available:   true,
		},
	}
}

func (b *RoomBuilder) WithNumber(number string) *RoomBuilder {
	b.room.RoomNumber = number
	return b
}

func (b *RoomBuilder) WithType(t model.RoomType) *RoomBuilder {
	b.room.Type = t
	return b
}

func (b *RoomBuilder) WithPrice(price float64) *RoomBuilder {
	b.room.Price = price
	return b
}

func (b *RoomBuilder) Build() model.Room {
	return b.room
}

// CreateRoom stores a room through the admin API and returns it.
func CreateRoom(t *testing.T, hotel *client.HotelClient, room model.Room) *model.Room {
	t.Helper()

	resp, err := hotel.CreateRoom(room)
	if err != nil {
		t.Fatalf("create room failed: %v", err)
	}
	AssertStatusCode(t, resp, 201)

	created, err := hotel.DecodeRoom(resp)
	if err != nil {
		t.Fatalf("decode room failed: %v", err)
	}
	return created
}

// Stay returns ISO check-in/check-out dates starting offsetDays from today.
func Stay(offsetDays, nights int) (string, string) {
	today := dates.Today(time.UTC, time.Now())
	checkIn := today.AddDate(0, 0, offsetDays)
	return dates.Format(checkIn), dates.Format(checkIn.AddDate(0, 0, nights))
}

func ConfirmBody(roomID, checkIn, checkOut string, guests int) map[string]any {
	return map[string]any{
		"room_id":     roomID,
		"check_in":    checkIn,
		"check_out":   checkOut,
		"guests":      guests,
		"guest_name":  "Ada Obi",
		"guest_email": "ada@example.com",
		"guest_phone": "+2348031234567",
	}
}

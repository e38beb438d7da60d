package model

import "time"

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"

	ReservationEventSchemaVersion = "1"
)

// ReservationEvent is published after a reservation commits or is cancelled.
// It carries everything the notifier needs to write to the guest without
// reading the database.
type ReservationEvent struct {
	Type          string            `json:"type"`
	ReservationID string            `json:"reservation_id"`
	Status        ReservationStatus `json:"status"`
	RoomID        string            `json:"room_id"`
	RoomNumber    string            `json:"room_number"`
	RoomType      RoomType          `json:"room_type"`
	CheckIn       string            `json:"check_in"`
	CheckOut      string            `json:"check_out"`
	Nights        int               `json:"nights"`
	Guests        int               `json:"guests"`
	TotalAmount   float64           `json:"total_amount"`
	GuestName     string            `json:"guest_name"`
	GuestEmail    string            `json:"guest_email"`
	GuestCountry  string            `json:"guest_country,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

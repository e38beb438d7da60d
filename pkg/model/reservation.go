package model

import (
	"time"

	"fullmoon/pkg/dates"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// CanTransitionTo encodes confirmed -> cancelled as the only move.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return s == ReservationConfirmed && next == ReservationCancelled
}

// MaxGuestsPerReservation caps the party size of a single reservation.
const MaxGuestsPerReservation = 20

// Reservation covers the half-open stay [CheckIn, CheckOut).
type Reservation struct {
	ID           string            `json:"id,omitempty" bson:"_id,omitempty"`
	RoomID       string            `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	CheckIn      time.Time         `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut     time.Time         `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	Guests       int               `json:"guests" bson:"guests" validate:"required,min=1,max=20"`
	TotalAmount  float64           `json:"total_amount" bson:"total_amount" validate:"gt=0"`
	Status       ReservationStatus `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
	GuestName    string            `json:"guest_name" bson:"guest_name" validate:"required,max=100"`
	GuestEmail   string            `json:"guest_email" bson:"guest_email" validate:"required,email"`
	GuestPhone   string            `json:"guest_phone" bson:"guest_phone" validate:"required,e164"`
	GuestCountry string            `json:"guest_country,omitempty" bson:"guest_country,omitempty"`
	UserID       string            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}

func (r *Reservation) Nights() int {
	return dates.Nights(r.CheckIn, r.CheckOut)
}

// ReservationView is the guest-facing read model with its room populated.
type ReservationView struct {
	*Reservation
	Room *Room `json:"room,omitempty"`
}

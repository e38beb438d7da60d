package model

import "time"

type FacilityBookingStatus string

const (
	FacilityBookingPending   FacilityBookingStatus = "pending"
	FacilityBookingConfirmed FacilityBookingStatus = "confirmed"
	FacilityBookingCancelled FacilityBookingStatus = "cancelled"
	FacilityBookingCompleted FacilityBookingStatus = "completed"
)

// Cancellable reports whether a guest may still cancel the booking.
func (s FacilityBookingStatus) Cancellable() bool {
	return s == FacilityBookingPending || s == FacilityBookingConfirmed
}

type FacilityBooking struct {
	ID              string                `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          string                `json:"user_id" bson:"user_id" validate:"required"`
	FacilityID      string                `json:"facility_id" bson:"facility_id" validate:"required,mongodb"`
	FacilityName    string                `json:"facility_name" bson:"facility_name"`
	BookingDate     time.Time             `json:"booking_date" bson:"booking_date" validate:"required"`
	BookingTime     string                `json:"booking_time" bson:"booking_time" validate:"required,clock"`
	Duration        int                   `json:"duration" bson:"duration" validate:"required,min=1,max=8"`
	Guests          int                   `json:"guests" bson:"guests" validate:"required,min=1"`
	SpecialRequests string                `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=500"`
	Status          FacilityBookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	TotalAmount     float64               `json:"total_amount" bson:"total_amount" validate:"min=0"`
	CreatedAt       time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at" bson:"updated_at"`
}

package model

import "time"

type FacilityType string

const (
	FacilityDining        FacilityType = "dining"
	FacilityWellness      FacilityType = "wellness"
	FacilityBusiness      FacilityType = "business"
	FacilityRecreation    FacilityType = "recreation"
	FacilityEntertainment FacilityType = "entertainment"
)

func (t FacilityType) Valid() bool {
	switch t {
	case FacilityDining, FacilityWellness, FacilityBusiness, FacilityRecreation, FacilityEntertainment:
		return true
	}
	return false
}

type OperatingHours struct {
	Open  string `json:"open" bson:"open" validate:"omitempty,clock"`
	Close string `json:"close" bson:"close" validate:"omitempty,clock"`
}

type ContactInfo struct {
	Phone string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Email string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
}

type Facility struct {
	ID               string         `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type             FacilityType   `json:"type" bson:"type" validate:"required,oneof=dining wellness business recreation entertainment"`
	Description      string         `json:"description" bson:"description" validate:"required"`
	ShortDescription string         `json:"short_description" bson:"short_description" validate:"required,max=150"`
	Image            string         `json:"image" bson:"image" validate:"required,uri"`
	Images           []string       `json:"images" bson:"images" validate:"omitempty,max=20,dive,required,uri"`
	Capacity         int            `json:"capacity" bson:"capacity" validate:"required,min=1"`
	OperatingHours   OperatingHours `json:"operating_hours" bson:"operating_hours"`
	PricePerHour     float64        `json:"price_per_hour" bson:"price_per_hour" validate:"min=0"`
	RequiresGuests   bool           `json:"requires_guests" bson:"requires_guests"`
	MaxGuests        int            `json:"max_guests" bson:"max_guests" validate:"required,min=1"`
	Bookable         bool           `json:"bookable" bson:"bookable"`
	Featured         bool           `json:"featured" bson:"featured"`
	Available        bool           `json:"available" bson:"available"`
	Amenities        []string       `json:"amenities" bson:"amenities" validate:"omitempty,dive,required,max=100"`
	Location         string         `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=100"`
	ContactInfo      ContactInfo    `json:"contact_info" bson:"contact_info"`
	Rules            []string       `json:"rules" bson:"rules" validate:"omitempty,dive,required,max=200"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at"`
}

type FacilityUpdate struct {
	Name             string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Type             FacilityType    `json:"type,omitempty" validate:"omitempty,oneof=dining wellness business recreation entertainment"`
	Description      string          `json:"description,omitempty"`
	ShortDescription string          `json:"short_description,omitempty" validate:"omitempty,max=150"`
	Image            string          `json:"image,omitempty" validate:"omitempty,uri"`
	Capacity         *int            `json:"capacity,omitempty" validate:"omitempty,min=1"`
	OperatingHours   *OperatingHours `json:"operating_hours,omitempty"`
	PricePerHour     *float64        `json:"price_per_hour,omitempty" validate:"omitempty,min=0"`
	MaxGuests        *int            `json:"max_guests,omitempty" validate:"omitempty,min=1"`
	Bookable         *bool           `json:"bookable,omitempty"`
	Featured         *bool           `json:"featured,omitempty"`
	Available        *bool           `json:"available,omitempty"`
	Amenities        *[]string       `json:"amenities,omitempty" validate:"omitempty,dive,required,max=100"`
	Rules            *[]string       `json:"rules,omitempty" validate:"omitempty,dive,required,max=200"`
}

package model

import (
	"strings"
	"time"
)

// RoomType is the closed set of room categories the hotel sells.
type RoomType string

const (
	RoomTypeAnnex           RoomType = "annex"
	RoomTypePremiere        RoomType = "premiere"
	RoomTypeDeluxe          RoomType = "deluxe"
	RoomTypeExecutive       RoomType = "executive"
	RoomTypePenthouseSingle RoomType = "penthouse-single"
	RoomTypePenthouseDouble RoomType = "penthouse-double"
)

var roomTypeLabels = map[RoomType]string{
	RoomTypeAnnex:           "Annex Room",
	RoomTypePremiere:        "Premiere Room",
	RoomTypeDeluxe:          "Deluxe Room",
	RoomTypeExecutive:       "Executive Room",
	RoomTypePenthouseSingle: "Penthouse Single Suite",
	RoomTypePenthouseDouble: "Penthouse Double Suite",
}

// RoomTypes lists every category from the most to the least expensive.
func RoomTypes() []RoomType {
	return []RoomType{
		RoomTypePenthouseDouble,
		RoomTypePenthouseSingle,
		RoomTypeExecutive,
		RoomTypeDeluxe,
		RoomTypePremiere,
		RoomTypeAnnex,
	}
}

func (t RoomType) Label() string {
	return roomTypeLabels[t]
}

func (t RoomType) Valid() bool {
	_, ok := roomTypeLabels[t]
	return ok
}

// ParseRoomType accepts a slug ("penthouse-single") or a display label
// ("Penthouse Single Suite"), ignoring case and extra whitespace.
func ParseRoomType(s string) (RoomType, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if normalized == "" {
		return "", false
	}
	for t, label := range roomTypeLabels {
		if normalized == string(t) || normalized == strings.ToLower(label) {
			return t, true
		}
	}
	return "", false
}

type Room struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomNumber  string    `json:"room_number" bson:"room_number" validate:"required,min=1,max=10"`
	Type        RoomType  `json:"type" bson:"type" validate:"required,room_type"`
	Price       float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Description string    `json:"description" bson:"description" validate:"required,min=2,max=2000"`
	Amenities   []string  `json:"amenities" bson:"amenities" validate:"omitempty,max=50,dive,required,max=100"`
	Images      []string  `json:"images" bson:"images" validate:"omitempty,max=20,dive,required,uri"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type RoomUpdate struct {
	RoomNumber  string    `json:"room_number,omitempty" validate:"omitempty,min=1,max=10"`
	Type        RoomType  `json:"type,omitempty" validate:"omitempty,room_type"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description string    `json:"description,omitempty" validate:"omitempty,min=2,max=2000"`
	Amenities   *[]string `json:"amenities,omitempty" validate:"omitempty,max=50,dive,required,max=100"`
	// NewImages are appended to the room's existing images.
	NewImages []string `json:"new_images,omitempty" validate:"omitempty,max=20,dive,required,uri"`
	Available *bool    `json:"available,omitempty"`
}

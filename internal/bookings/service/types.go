package service

import (
	"time"

	"fullmoon/pkg/model"
)

type SearchRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
}

type SearchResult struct {
	CheckIn  string        `json:"check_in"`
	CheckOut string        `json:"check_out"`
	Nights   int           `json:"nights"`
	Guests   int           `json:"guests"`
	Rooms    []*model.Room `json:"rooms"`
}

type PrepareRequest struct {
	RoomID   string `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

type ConfirmRequest struct {
	PrepareRequest
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
}

// Quote is the priced stay shown on the confirmation page.
type Quote struct {
	Room        *model.Room `json:"room"`
	CheckIn     string      `json:"check_in"`
	CheckOut    string      `json:"check_out"`
	Guests      int         `json:"guests"`
	Nights      int         `json:"nights"`
	TotalAmount float64     `json:"total_amount"`

	checkIn  time.Time
	checkOut time.Time
}

package service

type BookRequest struct {
	FacilityID      string `json:"facility_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Duration        int    `json:"duration"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests"`
}

package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"fullmoon/pkg/model"
)

type Metadata struct {
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int64 `json:"offset"`
}

// HotelClient calls the hotel API. It backs the integration suite and the
// seed command.
type HotelClient struct {
	httpClient *HttpClient
}

func NewHotelClient(baseUrl string) *HotelClient {
	return &HotelClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *HotelClient) HTTP() *HttpClient {
	return c.httpClient
}

// Login signs in and keeps the token for subsequent calls.
func (c *HotelClient) Login(email, password string) (*Response, error) {
	resp, err := c.httpClient.POST("/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if resp.StatusCode == 200 {
		if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
			return nil, fmt.Errorf("could not decode login response:\n%+v\n%s", resp.ToString(), err)
		}
		c.httpClient.Token = wrapper.Data.Token
	}
	return resp, nil
}

func (c *HotelClient) Logout() {
	c.httpClient.Token = ""
}

// --- Rooms ---

func (c *HotelClient) ListRooms() (*Response, error) {
	return c.httpClient.GET("/api/v1/rooms")
}

func (c *HotelClient) GetRoom(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/rooms/id/" + url.PathEscape(id))
}

func (c *HotelClient) CreateRoom(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/admin/rooms", body)
}

func (c *HotelClient) SetRoomAvailability(id string, available bool) (*Response, error) {
	path := "/api/v1/admin/rooms/id/" + url.PathEscape(id) + "/availability"
	return c.httpClient.PUT(path, map[string]bool{"available": available})
}

func (c *HotelClient) DeleteRoom(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/admin/rooms/id/" + url.PathEscape(id))
}

// --- Bookings ---

func (c *HotelClient) Search(checkIn, checkOut string, adults, children int) (*Response, error) {
	return c.httpClient.POST("/api/v1/rooms/availability", map[string]any{
		"check_in":  checkIn,
		"check_out": checkOut,
		"adults":    adults,
		"children":  children,
	})
}

func (c *HotelClient) Quote(roomID, checkIn, checkOut string, guests int) (*Response, error) {
	q := url.Values{}
	q.Set("room_id", roomID)
	q.Set("check_in", checkIn)
	q.Set("check_out", checkOut)
	q.Set("guests", strconv.Itoa(guests))
	return c.httpClient.GET("/api/v1/bookings/quote?" + q.Encode())
}

func (c *HotelClient) Confirm(body any, idempotencyKey string) (*Response, error) {
	if idempotencyKey == "" {
		return c.httpClient.POST("/api/v1/bookings", body)
	}
	return c.httpClient.POSTWithHeaders("/api/v1/bookings", body, map[string]string{
		"Idempotency-Key": idempotencyKey,
	})
}

func (c *HotelClient) GetReservation(reference string) (*Response, error) {
	return c.httpClient.GET("/api/v1/reservations/guest/" + url.PathEscape(reference))
}

func (c *HotelClient) ListReservations(status string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.FormatInt(offset, 10))
	return c.httpClient.GET("/api/v1/admin/reservations?" + q.Encode())
}

func (c *HotelClient) CancelReservation(id string) (*Response, error) {
	return c.httpClient.POST("/api/v1/admin/reservations/id/"+url.PathEscape(id)+"/cancel", nil)
}

// --- Decoding ---

// DecodeData unwraps the {"data": ...} envelope into target.
func DecodeData(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return fmt.Errorf("could not decode wrapper:\n%+v\n%s", resp.ToString(), err)
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		return fmt.Errorf("could not decode data:\n%+v\n%s", resp.ToString(), err)
	}
	return nil
}

func (c *HotelClient) DecodeRoom(resp *Response) (*model.Room, error) {
	var room model.Room
	if err := DecodeData(resp, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *HotelClient) DecodeRooms(resp *Response) ([]*model.Room, error) {
	var rooms []*model.Room
	if err := DecodeData(resp, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *HotelClient) DecodeReservations(resp *Response) ([]*model.Reservation, *Metadata, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
		Metadata
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var reservations []*model.Reservation
	if err := json.Unmarshal(wrapper.Data, &reservations); err != nil {
		return nil, nil, fmt.Errorf("could not decode reservation list:\n%+v\n%s", resp.ToString(), err)
	}
	return reservations, &wrapper.Metadata, nil
}

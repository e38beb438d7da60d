package client

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_Err(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantNil      bool
		wantCode     string
		wantRedirect string
	}{
		{
			name:    "success",
			status:  http.StatusCreated,
			body:    `{"data":{}}`,
			wantNil: true,
		},
		{
			name:         "conflict with redirect",
			status:       http.StatusConflict,
			body:         `{"error":"room already booked","code":"CONFLICT","details":{"redirect":"rooms"}}`,
			wantCode:     "CONFLICT",
			wantRedirect: "rooms",
		},
		{
			name:     "non json body",
			status:   http.StatusBadGateway,
			body:     "upstream down",
			wantCode: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{Response: &http.Response{StatusCode: tt.status}, Body: []byte(tt.body)}

			err := resp.Err()
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantRedirect, apiErr.Redirect())
		})
	}
}

func TestHttpClient_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHttpClient(srv.URL)
	_, err := c.GET("/api/v1/rooms")
	require.NoError(t, err)
	assert.Empty(t, got.Get("Content-Type"))
	assert.Empty(t, got.Get("Authorization"))

	c.Token = "signed"
	_, err = c.POSTWithHeaders("/api/v1/bookings", map[string]int{"guests": 2}, map[string]string{"Idempotency-Key": "k1"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer signed", got.Get("Authorization"))
	assert.Equal(t, "k1", got.Get("Idempotency-Key"))
}

func TestHttpClient_WaitForHealthy(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewHttpClient(srv.URL).WaitForHealthy(5*time.Second))
	assert.Equal(t, int32(2), calls.Load())
}

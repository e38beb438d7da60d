package repository

import (
	"errors"
	"testing"
	"time"

	bookingserrors "fullmoon/internal/bookings/errors"
	"fullmoon/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildOverlapFilter(t *testing.T) {
	checkIn := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)

	filter := buildOverlapFilter(nil, checkIn, checkOut)

	if _, scoped := filter["room_id"]; scoped {
		t.Error("expected unscoped filter without room_id")
	}
	if got := filter["check_in"].(bson.M)["$lt"]; got != checkOut {
		t.Errorf("expected check_in < checkOut, got %v", got)
	}
	if got := filter["check_out"].(bson.M)["$gt"]; got != checkIn {
		t.Errorf("expected check_out > checkIn, got %v", got)
	}
	if got := filter["status"].(bson.M)["$ne"]; got != model.ReservationCancelled {
		t.Errorf("expected cancelled reservations excluded, got %v", got)
	}

	roomID := "6720c0ffee6720c0ffee6720"
	scoped := buildOverlapFilter(&roomID, checkIn, checkOut)
	if scoped["room_id"] != roomID {
		t.Errorf("expected room_id %s, got %v", roomID, scoped["room_id"])
	}
}

func TestStatusFilter(t *testing.T) {
	if len(statusFilter("")) != 0 {
		t.Error("expected empty filter for all statuses")
	}
	if statusFilter(model.ReservationConfirmed)["status"] != model.ReservationConfirmed {
		t.Error("expected status filter")
	}
}

func TestReservationDocument(t *testing.T) {
	reservation := &model.Reservation{
		RoomID:    "6720c0ffee6720c0ffee6720",
		CheckIn:   time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC),
		Guests:    2,
		Status:    model.ReservationConfirmed,
		GuestName: "Ada Obi",
	}

	doc, oid, err := reservationDocument(reservation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["_id"] != oid {
		t.Fatalf("expected _id %v, got %#v", oid, doc["_id"])
	}
	if doc["room_id"] != reservation.RoomID {
		t.Errorf("expected room_id %s, got %v", reservation.RoomID, doc["room_id"])
	}

	// a retried insert sees the hex id set by the aborted attempt
	reservation.ID = oid.Hex()
	retry, retryOID, err := reservationDocument(reservation)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if _, ok := retry["_id"].(primitive.ObjectID); !ok {
		t.Fatalf("expected an ObjectID _id on retry, got %T", retry["_id"])
	}
	if retryOID != oid {
		t.Errorf("expected retry to reuse %v, got %v", oid, retryOID)
	}

	reservation.ID = "not-an-object-id"
	if _, _, err := reservationDocument(reservation); !errors.Is(err, bookingserrors.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

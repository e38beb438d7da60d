package model

import (
	"time"

	"fullmoon/pkg/dates"
)

// BookingLock is an advisory lock document keyed by room night. A second
// insert with the same ID fails with a duplicate key error until the holder
// deletes it or the TTL index expires it.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NightLockIDs returns one lock ID per night in [checkIn, checkOut), so two
// stays in the same room contend only when they share a night.
func NightLockIDs(roomID string, checkIn, checkOut time.Time) []string {
	n := dates.Nights(checkIn, checkOut)
	if n < 1 {
		return nil
	}
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, "room:"+roomID+":"+dates.Format(checkIn.AddDate(0, 0, i)))
	}
	return ids
}

package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id", "check_in", "check_out", "guests", "total_amount",
			"status", "guest_name", "guest_email", "guest_phone", "created_at",
		},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"room_id":       bson.M{"bsonType": "string"},
			"check_in":      bson.M{"bsonType": "date"},
			"check_out":     bson.M{"bsonType": "date"},
			"guests":        bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 20},
			"total_amount":  bson.M{"bsonType": "number", "minimum": 0},
			"status":        bson.M{"bsonType": "string", "enum": []string{"confirmed", "cancelled"}},
			"guest_name":    bson.M{"bsonType": "string", "minLength": 1},
			"guest_email":   bson.M{"bsonType": "string", "minLength": 3},
			"guest_country": bson.M{"bsonType": "string"},
			"guest_phone":   bson.M{"bsonType": "string"},
			"user_id":       bson.M{"bsonType": "string"},
			"created_at":    bson.M{"bsonType": "date"},
			"updated_at":    bson.M{"bsonType": "date"},
		},
	},
}

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "owner", "expires_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"owner":      bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

package validators

import "go.mongodb.org/mongo-driver/bson"

var FacilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "type", "image", "capacity", "max_guests", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":  bson.M{"bsonType": "objectId"},
			"name": bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"type": bson.M{
				"bsonType": "string",
				"enum":     []string{"dining", "wellness", "business", "recreation", "entertainment"},
			},
			"short_description": bson.M{"bsonType": "string", "maxLength": 150},
			"image":             bson.M{"bsonType": "string"},
			"capacity":          bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
			"price_per_hour":    bson.M{"bsonType": "number", "minimum": 0},
			"max_guests":        bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
			"bookable":          bson.M{"bsonType": "bool"},
			"available":         bson.M{"bsonType": "bool"},
			"operating_hours": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"open":  bson.M{"bsonType": "string"},
					"close": bson.M{"bsonType": "string"},
				},
			},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var FacilityBookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id", "facility_id", "booking_date", "booking_time",
			"duration", "guests", "status", "total_amount", "created_at",
		},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":          bson.M{"bsonType": "objectId"},
			"user_id":      bson.M{"bsonType": "string"},
			"facility_id":  bson.M{"bsonType": "string"},
			"booking_date": bson.M{"bsonType": "date"},
			"booking_time": bson.M{"bsonType": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
			"duration":     bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 8},
			"guests":       bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "confirmed", "cancelled", "completed"},
			},
			"total_amount": bson.M{"bsonType": "number", "minimum": 0},
			"created_at":   bson.M{"bsonType": "date"},
		},
	},
}

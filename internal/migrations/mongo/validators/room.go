package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"room_number", "type", "price", "available", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"room_number": bson.M{"bsonType": "string", "minLength": 1, "maxLength": 10},
			"type": bson.M{
				"bsonType": "string",
				"enum":     []string{"annex", "premiere", "deluxe", "executive", "penthouse-single", "penthouse-double"},
			},
			"price":       bson.M{"bsonType": "number", "minimum": 0},
			"description": bson.M{"bsonType": "string"},
			"amenities": bson.M{
				"bsonType": []string{"array", "null"},
				"items":    bson.M{"bsonType": "string"},
			},
			"images": bson.M{
				"bsonType": []string{"array", "null"},
				"maxItems": 20,
				"items":    bson.M{"bsonType": "string"},
			},
			"available":  bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}

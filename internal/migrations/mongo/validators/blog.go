package validators

import "go.mongodb.org/mongo-driver/bson"

var BlogPostValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"title", "slug", "content", "category", "published", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":            bson.M{"bsonType": "objectId"},
			"title":          bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
			"slug":           bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
			"excerpt":        bson.M{"bsonType": "string", "maxLength": 500},
			"content":        bson.M{"bsonType": "string"},
			"category":       bson.M{"bsonType": "string"},
			"author":         bson.M{"bsonType": "string"},
			"featured_image": bson.M{"bsonType": "string"},
			"images": bson.M{
				"bsonType": []string{"array", "null"},
				"items":    bson.M{"bsonType": "string"},
			},
			"tags": bson.M{
				"bsonType": []string{"array", "null"},
				"items":    bson.M{"bsonType": "string"},
			},
			"published":  bson.M{"bsonType": "bool"},
			"featured":   bson.M{"bsonType": "bool"},
			"views":      bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}

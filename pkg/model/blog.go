package model

import "time"

const DefaultAuthor = "Administrator"

type BlogPost struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Slug            string    `json:"slug" bson:"slug"`
	Excerpt         string    `json:"excerpt" bson:"excerpt" validate:"omitempty,max=500"`
	Content         string    `json:"content" bson:"content" validate:"required"`
	Category        string    `json:"category" bson:"category" validate:"required,max=50"`
	Author          string    `json:"author" bson:"author" validate:"omitempty,max=100"`
	FeaturedImage   string    `json:"featured_image,omitempty" bson:"featured_image,omitempty" validate:"omitempty,uri"`
	Images          []string  `json:"images" bson:"images" validate:"omitempty,max=20,dive,required,uri"`
	Tags            []string  `json:"tags" bson:"tags" validate:"omitempty,max=20,dive,required,max=50"`
	Published       bool      `json:"published" bson:"published"`
	Featured        bool      `json:"featured" bson:"featured"`
	MetaTitle       string    `json:"meta_title,omitempty" bson:"meta_title,omitempty" validate:"omitempty,max=60"`
	MetaDescription string    `json:"meta_description,omitempty" bson:"meta_description,omitempty" validate:"omitempty,max=160"`
	Views           int64     `json:"views" bson:"views"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

type BlogPostUpdate struct {
	Title           string    `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Excerpt         string    `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content         string    `json:"content,omitempty"`
	Category        string    `json:"category,omitempty" validate:"omitempty,max=50"`
	Author          string    `json:"author,omitempty" validate:"omitempty,max=100"`
	FeaturedImage   string    `json:"featured_image,omitempty" validate:"omitempty,uri"`
	NewImages       []string  `json:"new_images,omitempty" validate:"omitempty,max=20,dive,required,uri"`
	Tags            *[]string `json:"tags,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	Published       *bool     `json:"published,omitempty"`
	Featured        *bool     `json:"featured,omitempty"`
	MetaTitle       *string   `json:"meta_title,omitempty" validate:"omitempty,max=60"`
	MetaDescription *string   `json:"meta_description,omitempty" validate:"omitempty,max=160"`
}

// BlogPostPage is a single post together with posts from the same category.
type BlogPostPage struct {
	Post    *BlogPost   `json:"post"`
	Related []*BlogPost `json:"related"`
}

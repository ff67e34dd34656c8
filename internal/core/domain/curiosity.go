package domain

import (
	"errors"
	"time"
)

var ErrCuriosityNotFound = errors.New("curiosity not found")
var ErrCuriosityExists = errors.New("curiosity already exists in the specified category")

// Curiosity is a single fact attached to a category.
type Curiosity struct {
	ID         string    `json:"curiosity_id" bson:"_id,omitempty"`
	Curiosity  string    `json:"curiosity" bson:"curiosity"`
	CategoryID string    `json:"category_id" bson:"category_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

package domain

import "errors"

var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")

// Category groups curiosities under a unique name.
type Category struct {
	ID   string `json:"category_id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}

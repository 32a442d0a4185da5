package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product prices are stored in the minor currency unit (kobo) as integers.
type Product struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string        `bson:"name" json:"name"`
	Price         int64         `bson:"price" json:"price"`
	Description   string        `bson:"description" json:"description"`
	Specification string        `bson:"specification" json:"specification"`
	ImageURL      string        `bson:"imageUrl" json:"imageUrl"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

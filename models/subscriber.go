package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Subscriber is one Starlink terminal plotted on the distribution map.
// SubscriptionEndDate is nil for subscribers with no formal expiry; those are
// never touched by the expiry sweep.
type Subscriber struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id"`
	StarlinkID          string        `bson:"starlinkId" json:"starlinkId"`
	SerialNumber        string        `bson:"serialNumber" json:"serialNumber"`
	Longitude           float64       `bson:"longitude" json:"longitude"`
	Latitude            float64       `bson:"latitude" json:"latitude"`
	Country             string        `bson:"country" json:"country"`
	State               string        `bson:"state" json:"state"`
	Active              bool          `bson:"active" json:"active"`
	SubscriptionEndDate *time.Time    `bson:"subscriptionEndDate,omitempty" json:"subscriptionEndDate"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt" json:"updatedAt"`
}

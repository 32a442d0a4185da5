// Package subscription implements the subscription lifecycle rules: end-date
// computation, activation/deactivation, and classification of expired records
// for the sweep.
package subscription

import (
	"time"

	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ComputeEndDate returns from plus the given number of calendar months.
// Calendar arithmetic, not fixed 30-day increments: Jan 15 + 3 = Apr 15.
func ComputeEndDate(months int, from time.Time) (time.Time, error) {
	if months < 1 {
		return time.Time{}, apperr.ErrInvalidDuration
	}
	return from.AddDate(0, months, 0), nil
}

// Activate marks sub active with an end date months calendar months from now.
// Any remaining time on a previous subscription is discarded.
func Activate(sub *models.Subscriber, months int, now time.Time) error {
	end, err := ComputeEndDate(months, now)
	if err != nil {
		return err
	}
	sub.Active = true
	sub.SubscriptionEndDate = &end
	return nil
}

// Deactivate clears the active flag and the end date. Idempotent.
func Deactivate(sub *models.Subscriber) {
	sub.Active = false
	sub.SubscriptionEndDate = nil
}

// Expired reports whether an active subscriber's end date has passed.
// A nil end date means "active, not yet formally expiring" and never expires.
func Expired(active bool, endDate *time.Time, now time.Time) bool {
	if !active || endDate == nil {
		return false
	}
	return !endDate.After(now)
}

// ExpiryFilter is the Mongo filter matching every subscriber Expired would
// flag at the given instant. The $type guard skips both missing fields and
// explicit nulls left behind by Deactivate.
func ExpiryFilter(now time.Time) bson.M {
	return bson.M{
		"active": true,
		"subscriptionEndDate": bson.M{
			"$type": "date",
			"$lte":  now,
		},
	}
}

// ExpiryUpdate flips matched subscribers inactive. The end date is left as-is
// so the record still shows when the subscription ran out.
func ExpiryUpdate(now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"active":    false,
		"updatedAt": now,
	}}
}

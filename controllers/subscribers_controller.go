package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/database"
	"github.com/kelechi/skylinkbackend/dto"
	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/subscription"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CreateSubscriber registers a terminal on the distribution map. New
// subscribers always start active with an end date computed from the given
// duration, whatever the caller put in "active".
func CreateSubscriber() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		var body dto.CreateSubscriberDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := body.Validate(); err != nil {
			renderValidation(c, err)
			return
		}

		now := time.Now().UTC()
		endDate, err := subscription.ComputeEndDate(body.SubscriptionDurationMonths, now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "subscriptionDurationMonths"})
			return
		}

		sub := models.Subscriber{
			ID:                  bson.NewObjectID(),
			StarlinkID:          strings.TrimSpace(body.StarlinkID),
			SerialNumber:        strings.TrimSpace(body.SerialNumber),
			Longitude:           *body.Longitude,
			Latitude:            *body.Latitude,
			Country:             strings.TrimSpace(body.Country),
			State:               strings.TrimSpace(body.State),
			Active:              true,
			SubscriptionEndDate: &endDate,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		if _, err := col.InsertOne(ctx, sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, sub)
	}
}

// GetSubscribers feeds the distribution map. Expired actives are deactivated
// first (the lazy sweep), so the list never shows an active subscriber whose
// end date has passed. Repeating the call is a no-op for already-swept rows.
func GetSubscribers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		now := time.Now().UTC()
		if _, err := col.UpdateMany(ctx, subscription.ExpiryFilter(now), subscription.ExpiryUpdate(now)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Subscriber, 0)
		for cursor.Next(ctx) {
			var s models.Subscriber
			if err := cursor.Decode(&s); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, s)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

// GetSubscriberStats returns per-state active/inactive counts for the map
// legend.
func GetSubscriberStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		cursor, err := col.Aggregate(ctx, subscriberStatsPipeline())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		type bucket struct {
			ID struct {
				State  string `bson:"state"`
				Active bool   `bson:"active"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}

		type stateStat struct {
			Active   int64 `json:"active"`
			Inactive int64 `json:"inactive"`
		}
		stats := map[string]*stateStat{}
		var totalActive, totalInactive int64

		for cursor.Next(ctx) {
			var b bucket
			if err := cursor.Decode(&b); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			st, ok := stats[b.ID.State]
			if !ok {
				st = &stateStat{}
				stats[b.ID.State] = st
			}
			if b.ID.Active {
				st.Active += b.Count
				totalActive += b.Count
			} else {
				st.Inactive += b.Count
				totalInactive += b.Count
			}
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"states":   stats,
			"active":   totalActive,
			"inactive": totalInactive,
		})
	}
}

func subscriberStatsPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":   bson.M{"state": "$state", "active": "$active"},
			"count": bson.M{"$sum": 1},
		}},
	}
}

func GetSubscriber() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscriber id"})
			return
		}

		var sub models.Subscriber
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscriber not found"})
			return
		}

		c.JSON(http.StatusOK, sub)
	}
}

// UpdateSubscriber applies the partial pointer DTO. Supplying a duration
// recomputes the end date from now; any unused remaining time is discarded.
func UpdateSubscriber() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscriber id"})
			return
		}

		var body dto.UpdateSubscriberDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := body.Validate(); err != nil {
			renderValidation(c, err)
			return
		}

		set := bson.M{}
		if body.StarlinkID != nil {
			set["starlinkId"] = strings.TrimSpace(*body.StarlinkID)
		}
		if body.SerialNumber != nil {
			set["serialNumber"] = strings.TrimSpace(*body.SerialNumber)
		}
		if body.Longitude != nil {
			set["longitude"] = *body.Longitude
		}
		if body.Latitude != nil {
			set["latitude"] = *body.Latitude
		}
		if body.Country != nil {
			set["country"] = strings.TrimSpace(*body.Country)
		}
		if body.State != nil {
			set["state"] = strings.TrimSpace(*body.State)
		}
		if body.SubscriptionDurationMonths != nil {
			endDate, err := subscription.ComputeEndDate(*body.SubscriptionDurationMonths, time.Now().UTC())
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "subscriptionDurationMonths"})
				return
			}
			set["subscriptionEndDate"] = endDate
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscriber not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ActivateSubscription restarts the subscription for the given number of
// calendar months from now.
func ActivateSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscriber id"})
			return
		}

		var body dto.ActivateSubscriptionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		endDate, err := subscription.ComputeEndDate(body.DurationMonths, now)
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidDuration) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "durationMonths"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"active":              true,
			"subscriptionEndDate": endDate,
			"updatedAt":           now,
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscriber not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "subscriptionEndDate": endDate})
	}
}

// DeactivateSubscription clears the active flag and the end date. Calling it
// on an already-inactive subscriber is a no-op.
func DeactivateSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscriber id"})
			return
		}

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"active":              false,
			"subscriptionEndDate": nil,
			"updatedAt":           time.Now().UTC(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscriber not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func DeleteSubscriber() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("subscribers")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscriber id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscriber not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

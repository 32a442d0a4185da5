package dto

import "github.com/kelechi/skylinkbackend/apperr"

// CreateSubscriberDTO carries the terminal details plus the initial
// subscription duration. Coordinates are pointers so 0.0 passes "required".
type CreateSubscriberDTO struct {
	StarlinkID                 string   `json:"starlinkId" binding:"required"`
	SerialNumber               string   `json:"serialNumber" binding:"required"`
	Longitude                  *float64 `json:"longitude" binding:"required"`
	Latitude                   *float64 `json:"latitude" binding:"required"`
	Country                    string   `json:"country" binding:"required"`
	State                      string   `json:"state" binding:"required"`
	Active                     *bool    `json:"active"` // ignored: new subscribers always start active
	SubscriptionDurationMonths int      `json:"subscriptionDurationMonths" binding:"required"`
}

func (d *CreateSubscriberDTO) Validate() error {
	if d.Longitude != nil && (*d.Longitude < -180 || *d.Longitude > 180) {
		return apperr.Validation("longitude", "longitude must be between -180 and 180")
	}
	if d.Latitude != nil && (*d.Latitude < -90 || *d.Latitude > 90) {
		return apperr.Validation("latitude", "latitude must be between -90 and 90")
	}
	return nil
}

// UpdateSubscriberDTO is a partial update. Supplying SubscriptionDurationMonths
// recomputes the end date from now; remaining time is not prorated.
type UpdateSubscriberDTO struct {
	StarlinkID                 *string  `json:"starlinkId,omitempty"`
	SerialNumber               *string  `json:"serialNumber,omitempty"`
	Longitude                  *float64 `json:"longitude,omitempty"`
	Latitude                   *float64 `json:"latitude,omitempty"`
	Country                    *string  `json:"country,omitempty"`
	State                      *string  `json:"state,omitempty"`
	SubscriptionDurationMonths *int     `json:"subscriptionDurationMonths,omitempty"`
}

func (d *UpdateSubscriberDTO) Validate() error {
	if d.Longitude != nil && (*d.Longitude < -180 || *d.Longitude > 180) {
		return apperr.Validation("longitude", "longitude must be between -180 and 180")
	}
	if d.Latitude != nil && (*d.Latitude < -90 || *d.Latitude > 90) {
		return apperr.Validation("latitude", "latitude must be between -90 and 90")
	}
	if d.StarlinkID != nil && *d.StarlinkID == "" {
		return apperr.Validation("starlinkId", "starlinkId cannot be empty")
	}
	if d.SerialNumber != nil && *d.SerialNumber == "" {
		return apperr.Validation("serialNumber", "serialNumber cannot be empty")
	}
	return nil
}

type ActivateSubscriptionDTO struct {
	DurationMonths int `json:"durationMonths" binding:"required"`
}

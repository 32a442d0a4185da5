package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/dto"
)

func TestCreateSubscriberDTOValidate(t *testing.T) {
	valid := dto.CreateSubscriberDTO{
		StarlinkID:                 "SL-123",
		SerialNumber:               "KIT00042",
		Longitude:                  float64p(7.49),
		Latitude:                   float64p(9.05),
		Country:                    "Nigeria",
		State:                      "FCT",
		SubscriptionDurationMonths: 3,
	}

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("longitude out of range", func(t *testing.T) {
		d := valid
		d.Longitude = float64p(200)
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "longitude", ve.Field)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		d := valid
		d.Latitude = float64p(-91)
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "latitude", ve.Field)
	})
}

func TestUpdateSubscriberDTOValidate(t *testing.T) {
	t.Run("empty starlinkId rejected", func(t *testing.T) {
		d := dto.UpdateSubscriberDTO{StarlinkID: strp("")}
		ve, ok := apperr.AsValidation(d.Validate())
		require.True(t, ok)
		assert.Equal(t, "starlinkId", ve.Field)
	})

	t.Run("empty update passes validation", func(t *testing.T) {
		d := dto.UpdateSubscriberDTO{}
		assert.NoError(t, d.Validate())
	})
}

package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/subscription"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeEndDate(t *testing.T) {
	t.Run("calendar month arithmetic", func(t *testing.T) {
		end, err := subscription.ComputeEndDate(3, date(2024, time.January, 15))
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.April, 15), end)
	})

	t.Run("single month", func(t *testing.T) {
		end, err := subscription.ComputeEndDate(1, date(2024, time.February, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 10), end)
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		end, err := subscription.ComputeEndDate(12, date(2024, time.June, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.June, 1), end)
	})

	t.Run("zero months rejected", func(t *testing.T) {
		_, err := subscription.ComputeEndDate(0, date(2024, time.January, 1))
		require.ErrorIs(t, err, apperr.ErrInvalidDuration)
	})

	t.Run("negative months rejected", func(t *testing.T) {
		_, err := subscription.ComputeEndDate(-2, date(2024, time.January, 1))
		require.ErrorIs(t, err, apperr.ErrInvalidDuration)
	})
}

func TestActivate(t *testing.T) {
	now := date(2024, time.January, 15)

	t.Run("sets active and end date", func(t *testing.T) {
		sub := models.Subscriber{Active: false}
		require.NoError(t, subscription.Activate(&sub, 3, now))
		assert.True(t, sub.Active)
		require.NotNil(t, sub.SubscriptionEndDate)
		assert.Equal(t, date(2024, time.April, 15), *sub.SubscriptionEndDate)
	})

	t.Run("invalid duration leaves subscriber untouched", func(t *testing.T) {
		sub := models.Subscriber{Active: false}
		err := subscription.Activate(&sub, 0, now)
		require.ErrorIs(t, err, apperr.ErrInvalidDuration)
		assert.False(t, sub.Active)
		assert.Nil(t, sub.SubscriptionEndDate)
	})

	t.Run("re-activation discards remaining time", func(t *testing.T) {
		old := date(2024, time.June, 1)
		sub := models.Subscriber{Active: true, SubscriptionEndDate: &old}
		require.NoError(t, subscription.Activate(&sub, 1, now))
		assert.Equal(t, date(2024, time.February, 15), *sub.SubscriptionEndDate)
	})
}

func TestDeactivate(t *testing.T) {
	end := date(2024, time.June, 1)
	sub := models.Subscriber{Active: true, SubscriptionEndDate: &end}

	subscription.Deactivate(&sub)
	assert.False(t, sub.Active)
	assert.Nil(t, sub.SubscriptionEndDate)

	// idempotent
	subscription.Deactivate(&sub)
	assert.False(t, sub.Active)
	assert.Nil(t, sub.SubscriptionEndDate)
}

func TestExpired(t *testing.T) {
	now := date(2024, time.February, 1)
	past := date(2024, time.January, 1)
	future := date(2024, time.March, 1)

	t.Run("active past end date expires", func(t *testing.T) {
		assert.True(t, subscription.Expired(true, &past, now))
	})

	t.Run("end date exactly now expires", func(t *testing.T) {
		assert.True(t, subscription.Expired(true, &now, now))
	})

	t.Run("active with future end date stays", func(t *testing.T) {
		assert.False(t, subscription.Expired(true, &future, now))
	})

	t.Run("active with no end date is never swept", func(t *testing.T) {
		assert.False(t, subscription.Expired(true, nil, now))
	})

	t.Run("inactive is never swept", func(t *testing.T) {
		assert.False(t, subscription.Expired(false, &past, now))
	})
}

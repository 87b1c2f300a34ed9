package subscription_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func endedAgo(d time.Duration) *time.Time {
	end := testNow.Add(-d)
	return &end
}

func TestSubscription_ExpiryAt(t *testing.T) {
	t.Parallel()

	t.Run("nil end date never expires", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{Status: subscription.StatusActive}

		exp := sub.ExpiryAt(testNow)
		assert.False(t, exp.Expired)
		assert.Equal(t, 0, exp.DaysElapsed)
	})

	t.Run("end date in the future", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{EndDate: endedAgo(-48 * time.Hour)}

		exp := sub.ExpiryAt(testNow)
		assert.False(t, exp.Expired)
	})

	t.Run("end date exactly now is not expired", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{EndDate: &testNow}

		exp := sub.ExpiryAt(testNow)
		assert.False(t, exp.Expired)
	})

	t.Run("fractional days floor to zero", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{EndDate: endedAgo(23 * time.Hour)}

		exp := sub.ExpiryAt(testNow)
		assert.True(t, exp.Expired)
		assert.Equal(t, 0, exp.DaysElapsed)
	})

	t.Run("full day counts as one", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{EndDate: endedAgo(24 * time.Hour)}

		exp := sub.ExpiryAt(testNow)
		assert.True(t, exp.Expired)
		assert.Equal(t, 1, exp.DaysElapsed)
	})

	t.Run("ten and a half days floor to ten", func(t *testing.T) {
		t.Parallel()
		sub := &subscription.Subscription{EndDate: endedAgo(10*24*time.Hour + 12*time.Hour)}

		exp := sub.ExpiryAt(testNow)
		assert.True(t, exp.Expired)
		assert.Equal(t, 10, exp.DaysElapsed)
	})
}

func TestSubscription_Usable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status subscription.Status
		want   bool
	}{
		{subscription.StatusActive, true},
		{subscription.StatusTrialing, true},
		{subscription.StatusPastDue, false},
		{subscription.StatusCanceled, false},
		{subscription.StatusIncomplete, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.status), func(t *testing.T) {
			t.Parallel()
			sub := &subscription.Subscription{Status: tc.status}
			assert.Equal(t, tc.want, sub.Usable())
		})
	}
}

func TestSubscription_Clone(t *testing.T) {
	t.Parallel()

	end := testNow.AddDate(0, 1, 0)
	sub := &subscription.Subscription{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Tier:     plan.TierProfessional,
		Status:   subscription.StatusActive,
		EndDate:  &end,
	}

	clone := sub.Clone()
	assert.Equal(t, sub, clone)

	// Mutating the clone's pointer fields must not touch the original.
	*clone.EndDate = clone.EndDate.AddDate(1, 0, 0)
	assert.Equal(t, end, *sub.EndDate)

	var nilSub *subscription.Subscription
	assert.Nil(t, nilSub.Clone())
}

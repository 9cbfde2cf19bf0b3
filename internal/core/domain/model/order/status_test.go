package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("catalog_values_are_valid", func(t *testing.T) {
		for s := order.AwaitingRestaurant; s <= order.Cancelled; s++ {
			require.NoError(t, s.Validate(), "status %d", s)
		}
	})

	t.Run("out_of_catalog_values_are_invalid", func(t *testing.T) {
		for _, s := range []order.Status{0, 8, -1, 100} {
			require.Error(t, s.Validate(), "status %d", s)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{
		order.AwaitingRestaurant:  false,
		order.AwaitingDeliverer:   false,
		order.InPreparation:       false,
		order.InDelivery:          false,
		order.Delivered:           true,
		order.RefusedByRestaurant: true,
		order.Cancelled:           true,
	}

	for s, want := range terminal {
		assert.Equal(t, want, s.IsTerminal(), "status %s", s)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Awaiting deliverer pickup", order.AwaitingDeliverer.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

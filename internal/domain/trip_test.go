package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripParametersRejectsCycleHoursOutOfRange(t *testing.T) {
	for _, hours := range []float64{-0.5, -1, 70.01, 71, 500} {
		_, err := NewTripParameters("A", "B", "C", hours)
		require.Error(t, err, "cycle hours %v", hours)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "cycle_used", ve.Field)
	}
}

func TestNewTripParametersAcceptsBounds(t *testing.T) {
	for _, hours := range []float64{0, 35.5, 70} {
		trip, err := NewTripParameters(" New York, NY ", "Philadelphia, PA", "Atlanta, GA", hours)
		require.NoError(t, err)
		assert.Equal(t, hours, trip.CycleUsedHours)
		assert.Equal(t, "New York, NY", trip.CurrentLocation)
	}
}

func TestNewTripParametersRequiresLocations(t *testing.T) {
	_, err := NewTripParameters("A", "  ", "C", 10)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "pickup_location", ve.Field)
	assert.Equal(t, "pickup_location: is required", ve.Error())
}

func TestTripParametersLabels(t *testing.T) {
	trip, err := NewTripParameters("Los Angeles, CA", "Phoenix, AZ", "Dallas, TX", 0)
	require.NoError(t, err)
	assert.Equal(t, "Phoenix, AZ", trip.PickupLabel())
	assert.Equal(t, "Dallas, TX", trip.DropoffLabel())

	trip.PickupDisplayName = "Phoenix, Maricopa County, Arizona"
	trip.DropoffDisplayName = "  "
	assert.Equal(t, "Phoenix, Maricopa County, Arizona", trip.PickupLabel())
	assert.Equal(t, "Dallas, TX", trip.DropoffLabel())
}

package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_DatesRoundTrip(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	r := NewRepository(nil, moscow)

	// 22:30 UTC is already the next day in Moscow
	dates := []time.Time{time.Date(2030, 1, 6, 22, 30, 0, 0, time.UTC)}

	formatted := r.formatDates(dates)
	assert.Equal(t, []string{"2030-01-07"}, formatted)

	parsed, err := r.parseDates(formatted)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, time.Date(2030, 1, 7, 0, 0, 0, 0, moscow), parsed[0])

	_, err = r.parseDates([]string{"07.01.2030"})
	assert.Error(t, err)
}

func TestAvailabilityColumns(t *testing.T) {
	assert.Equal(t, "provider_id", availabilityColumns[0])
	assert.Equal(t, "works_monday", availabilityColumns[2])
	assert.Equal(t, "works_sunday", availabilityColumns[8])
	assert.Equal(t, "updated_at", availabilityColumns[len(availabilityColumns)-1])
}

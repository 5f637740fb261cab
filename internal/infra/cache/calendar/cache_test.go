package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestKeys(t *testing.T) {
	key := Key{ProviderID: "provider-1", Month: "2030-01", Today: "2030-01-05"}

	assert.Equal(t, "calendar:provider-1:version", versionKey("provider-1"))
	assert.Equal(t, "calendar:provider-1:v3:2030-01:2030-01-05", dataKey(key, 3))
	assert.NotEqual(t, dataKey(key, 3), dataKey(key, 4))
}

func TestCodec(t *testing.T) {
	days := []domain.DayAvailability{
		{Date: time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC), Status: domain.DayOpen},
		{Date: time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC), Status: domain.DayFull},
		{Date: time.Date(2030, 1, 12, 0, 0, 0, 0, time.UTC), Status: domain.DayClosed},
	}

	data, err := encode(days)
	require.NoError(t, err)

	decoded, err := decode(data, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, days, decoded)

	_, err = decode([]byte(`[{"date":"07.01.2030","status":"open"}]`), time.UTC)
	assert.Error(t, err)
}

func TestNopCache(t *testing.T) {
	var c NopCache

	require.NoError(t, c.Set(context.Background(), Key{}, nil))
	days, ok, err := c.Get(context.Background(), Key{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, days)
	assert.NoError(t, c.Invalidate(context.Background(), "provider-1"))
}

package appointment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestServicesSnapshotRoundTrip(t *testing.T) {
	services := []domain.ServiceCatalogEntry{
		{Name: "Haircut", DurationMinutes: 30, Price: 100},
		{Name: "Beard", DurationMinutes: 15, Price: 40.5},
	}

	data, err := encodeServices(services)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Haircut","durationMinutes":30,"price":100},{"name":"Beard","durationMinutes":15,"price":40.5}]`, string(data))

	decoded, err := decodeServices(data)
	require.NoError(t, err)
	assert.Equal(t, services, decoded)
}

func TestIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "exclusion violation", err: &pq.Error{Code: "23P01"}, want: true},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "check violation", err: &pq.Error{Code: "23514"}, want: false},
		{name: "plain error", err: errors.New("connection reset"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSlotConflict(tt.err))
		})
	}
}

func TestIsInvalidID(t *testing.T) {
	assert.True(t, isInvalidID(&pq.Error{Code: "22P02"}))
	assert.False(t, isInvalidID(&pq.Error{Code: "23P01"}))
}

package get_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getCalendar "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_calendar"
)

func TestToUseCaseRequest(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	now := time.Date(2025, 10, 31, 22, 0, 0, 0, time.UTC) // уже 1 ноября по Москве

	req, err := ToUseCaseRequest("prov-1", "", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.November, req.Month.Month())

	req, err = ToUseCaseRequest("prov-1", "2025-02", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.February, req.Month.Month())
	assert.Equal(t, 2025, req.Month.Year())

	_, err = ToUseCaseRequest("prov-1", "2025-13", now, loc)
	assert.Error(t, err)
}

func TestFromUseCaseResponse(t *testing.T) {
	resp := FromUseCaseResponse(&getCalendar.Response{
		ProviderID: "prov-1",
		Month:      "2025-10",
		Days: []domain.DayAvailability{
			{Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), Status: domain.DayOpen},
		},
	})

	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2025-10-01", resp.Days[0].Date)
	assert.Equal(t, "open", resp.Days[0].Status)
}

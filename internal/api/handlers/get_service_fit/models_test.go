package get_service_fit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	getServiceFit "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_fit"
)

func TestToUseCaseRequest(t *testing.T) {
	req, err := ToUseCaseRequest("prov-1", "2025-10-15T09:30:00+03:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 10, 15, 6, 30, 0, 0, time.UTC).Equal(req.StartTime))

	_, err = ToUseCaseRequest("prov-1", "2025-10-15 09:30")
	assert.Error(t, err)
}

func TestFromUseCaseResponse(t *testing.T) {
	resp := FromUseCaseResponse(&getServiceFit.Response{
		ProviderID:  "prov-1",
		StartTime:   time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
		MaxDuration: 45,
		Services: []scheduling.FittedService{
			{Service: domain.ServiceCatalogEntry{Name: "Haircut", DurationMinutes: 30, Price: 25}, Fits: true},
			{Service: domain.ServiceCatalogEntry{Name: "Coloring", DurationMinutes: 90, Price: 80}, Fits: false},
		},
	})

	assert.Equal(t, 45, resp.MaxDuration)
	require.Len(t, resp.Services, 2)
	assert.True(t, resp.Services[0].Fits)
	assert.False(t, resp.Services[1].Fits)
	assert.Equal(t, "2025-10-15T09:00:00Z", resp.StartTime)
}

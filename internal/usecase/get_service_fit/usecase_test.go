package get_service_fit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// 2030-01-07 is a Monday
var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

type fakeAppointments struct {
	booked []domain.BookedInterval
}

func (f *fakeAppointments) ListConfirmedInRange(_ context.Context, _ string, _, _ time.Time) ([]domain.BookedInterval, error) {
	return f.booked, nil
}

type fakeProviders struct {
	av      *domain.ProviderAvailability
	catalog domain.ServiceCatalog
}

func (f *fakeProviders) GetAvailability(_ context.Context, providerID string) (*domain.ProviderAvailability, error) {
	if f.av.ProviderID != providerID {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.av, nil
}

func (f *fakeProviders) ListServices(_ context.Context, _ string) (domain.ServiceCatalog, error) {
	return f.catalog, nil
}

func at(hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(monday)
}

func newUseCase() *UseCase {
	appointments := &fakeAppointments{booked: []domain.BookedInterval{{Start: at("10:15"), End: at("11:00")}}}
	providers := &fakeProviders{
		av: &domain.ProviderAvailability{
			ProviderID:  "provider-1",
			WorkingDays: domain.WorkingDays{time.Monday: true},
			OpenTime:    types.MustTimeString("09:00"),
			CloseTime:   types.MustTimeString("18:00"),
		},
		catalog: domain.ServiceCatalog{
			{Name: "Beard", DurationMinutes: 15, Price: 40},
			{Name: "Haircut", DurationMinutes: 30, Price: 100},
			{Name: "Coloring", DurationMinutes: 90, Price: 300},
		},
	}
	return NewUseCase(appointments, providers, time.UTC, logger.NewNop())
}

func TestExecute_FitsBeforeNextBooking(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: "provider-1", StartTime: at("09:30")})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.MaxDuration)
	require.Len(t, resp.Services, 3)
	assert.True(t, resp.Services[0].Fits)
	assert.True(t, resp.Services[1].Fits)
	assert.False(t, resp.Services[2].Fits)
}

func TestExecute_OneStepBeforeBooking(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: "provider-1", StartTime: at("10:00")})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.MaxDuration)
	assert.True(t, resp.Services[0].Fits)
	assert.False(t, resp.Services[1].Fits)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{ProviderID: "provider-1", StartTime: at("10:30")})
	assert.ErrorIs(t, err, ErrInvalidStartTime)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "provider-1", StartTime: at("19:00")})
	assert.ErrorIs(t, err, ErrInvalidStartTime)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "nobody", StartTime: at("10:00")})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "provider-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

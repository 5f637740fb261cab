package get_available_slots

import (
	"context"
	"errors"
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

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointments struct {
	booked  []domain.BookedInterval
	listErr error
}

func (f *fakeAppointments) ListConfirmedInRange(_ context.Context, _ string, from, to time.Time) ([]domain.BookedInterval, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]domain.BookedInterval, 0)
	for _, b := range f.booked {
		if b.Overlaps(from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeProviders struct {
	av *domain.ProviderAvailability
}

func (f *fakeProviders) GetAvailability(_ context.Context, providerID string) (*domain.ProviderAvailability, error) {
	if f.av == nil || f.av.ProviderID != providerID {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.av, nil
}

func newUseCase(booked []domain.BookedInterval) (*UseCase, *fakeAppointments) {
	appointments := &fakeAppointments{booked: booked}
	providers := &fakeProviders{av: &domain.ProviderAvailability{
		ProviderID:  "provider-1",
		WorkingDays: domain.WorkingDays{time.Monday: true, time.Friday: true},
		OpenTime:    types.MustTimeString("09:00"),
		CloseTime:   types.MustTimeString("18:00"),
	}}
	uc := NewUseCase(appointments, providers, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{now: monday.AddDate(0, 0, -3)}
	return uc, appointments
}

func TestExecute_ExcludesBookedSlots(t *testing.T) {
	start := types.MustTimeString("09:00").On(monday)
	uc, _ := newUseCase([]domain.BookedInterval{{Start: start, End: start.Add(30 * time.Minute)}})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: "provider-1", Date: monday.Add(15 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, monday, resp.Date)
	assert.Len(t, resp.Slots, 34)
	assert.Equal(t, start.Add(30*time.Minute), resp.Slots[0])
}

func TestExecute_ClosedDay(t *testing.T) {
	uc, _ := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: "provider-1", Date: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	uc, appointments := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: "", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "unknown", Date: monday})
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	appointments.listErr = errors.New("connection refused")
	_, err = uc.Execute(context.Background(), &Request{ProviderID: "provider-1", Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestExecute_InvalidWorkingHoursIsNotRetryable(t *testing.T) {
	uc, _ := newUseCase(nil)
	providers := uc.providerRepo.(*fakeProviders)
	providers.av.CloseTime = types.MustTimeString("08:00")

	_, err := uc.Execute(context.Background(), &Request{ProviderID: "provider-1", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}

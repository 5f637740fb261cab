package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// 2030-01-07 is a Monday
var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixedCode string

func (c fixedCode) Generate() (string, error) { return string(c), nil }

type fakeAppointments struct {
	mu        sync.Mutex
	items     []*domain.Appointment
	createErr error
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.items = append(f.items, a)
	return nil
}

func (f *fakeAppointments) ListConfirmedInRange(_ context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.BookedInterval, 0)
	for _, a := range f.items {
		if a.ProviderID == providerID && a.IsConfirmed() && a.Interval().Overlaps(from, to) {
			result = append(result, a.Interval())
		}
	}
	return result, nil
}

type fakeProviders struct {
	av      *domain.ProviderAvailability
	catalog domain.ServiceCatalog
}

func (f *fakeProviders) LockAvailability(_ context.Context, providerID string) (*domain.ProviderAvailability, error) {
	if f.av == nil || f.av.ProviderID != providerID {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.av, nil
}

func (f *fakeProviders) ListServices(_ context.Context, _ string) (domain.ServiceCatalog, error) {
	return f.catalog, nil
}

// serialTx выполняет транзакции строго по очереди, как блокировка строки провайдера
type serialTx struct {
	mu  sync.Mutex
	err error
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) RecordTransition(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[status]++
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointments
	providers    *fakeProviders
	tx           *serialTx
	metrics      *countingMetrics
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		appointments: &fakeAppointments{},
		providers: &fakeProviders{
			av: &domain.ProviderAvailability{
				ProviderID: "provider-1",
				WorkingDays: domain.WorkingDays{
					time.Monday:    true,
					time.Tuesday:   true,
					time.Wednesday: true,
					time.Thursday:  true,
					time.Friday:    true,
				},
				OpenTime:  types.MustTimeString("09:00"),
				CloseTime: types.MustTimeString("18:00"),
			},
			catalog: domain.ServiceCatalog{
				{Name: "Haircut", DurationMinutes: 30, Price: 100},
				{Name: "Beard", DurationMinutes: 15, Price: 40},
			},
		},
		tx:      &serialTx{},
		metrics: &countingMetrics{},
	}
	f.uc = NewUseCase(f.appointments, f.providers, f.tx, fixedCode("042917"), f.metrics, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func at(hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(monday)
}

func haircutAt(hhmm string) *Request {
	return &Request{
		ProviderID:   "provider-1",
		ClientID:     "client-1",
		StartTime:    at(hhmm),
		ServiceNames: []string{"Haircut"},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -3))

	req := haircutAt("09:00")
	req.ServiceNames = []string{"Haircut", "Beard"}
	req.ExpectedDuration = ptr.Ptr(45)
	req.ExpectedPrice = ptr.Ptr(140.0)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, at("09:00"), resp.StartTime)
	assert.Equal(t, at("09:45"), resp.EndTime)
	assert.Equal(t, 45, resp.TotalDuration)
	assert.InDelta(t, 140, resp.TotalPrice, 0.001)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, "042917", resp.CompletionCode)
	require.Len(t, f.appointments.items, 1)
	assert.False(t, f.appointments.items[0].IsReviewed)
	assert.Equal(t, 1, f.metrics.counts["confirmed"])
}

func TestExecute_SnapshotIsIndependentOfCatalog(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -3))

	resp, err := f.uc.Execute(context.Background(), haircutAt("09:00"))
	require.NoError(t, err)

	f.providers.catalog[0].Price = 500
	assert.InDelta(t, 100, resp.Services[0].Price, 0.001)
	assert.InDelta(t, 100, f.appointments.items[0].Services[0].Price, 0.001)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request, f *fixture)
		wantErr  error
		category error
	}{
		{
			name:     "no services",
			mutate:   func(req *Request, _ *fixture) { req.ServiceNames = nil },
			wantErr:  ErrNoServices,
			category: domain.ErrValidation,
		},
		{
			name:     "duplicate service",
			mutate:   func(req *Request, _ *fixture) { req.ServiceNames = []string{"Haircut", "Haircut"} },
			wantErr:  ErrInvalidInput,
			category: domain.ErrValidation,
		},
		{
			name:     "unknown provider",
			mutate:   func(req *Request, _ *fixture) { req.ProviderID = "nobody" },
			wantErr:  ErrProviderNotFound,
			category: domain.ErrNotFound,
		},
		{
			name:     "unknown service",
			mutate:   func(req *Request, _ *fixture) { req.ServiceNames = []string{"Massage"} },
			wantErr:  ErrUnknownService,
			category: domain.ErrValidation,
		},
		{
			name:     "price mismatch",
			mutate:   func(req *Request, _ *fixture) { req.ExpectedPrice = ptr.Ptr(90.0) },
			wantErr:  ErrTotalsMismatch,
			category: domain.ErrValidation,
		},
		{
			name:     "weekend",
			mutate:   func(req *Request, _ *fixture) { req.StartTime = req.StartTime.AddDate(0, 0, 5) },
			wantErr:  ErrDayClosed,
			category: domain.ErrPreconditionFailed,
		},
		{
			name: "blocked date",
			mutate: func(_ *Request, f *fixture) {
				f.providers.av.BlockedDates = []time.Time{monday}
			},
			wantErr:  ErrDayClosed,
			category: domain.ErrPreconditionFailed,
		},
		{
			name:     "off grid",
			mutate:   func(req *Request, _ *fixture) { req.StartTime = at("09:10") },
			wantErr:  ErrInvalidStartTime,
			category: domain.ErrValidation,
		},
		{
			name:     "before opening",
			mutate:   func(req *Request, _ *fixture) { req.StartTime = at("08:45") },
			wantErr:  ErrInvalidStartTime,
			category: domain.ErrValidation,
		},
		{
			name:     "runs past closing",
			mutate:   func(req *Request, _ *fixture) { req.StartTime = at("17:45") },
			wantErr:  ErrCapacityExceeded,
			category: domain.ErrCapacityExceeded,
		},
		{
			name: "store failure",
			mutate: func(_ *Request, f *fixture) {
				f.appointments.createErr = appointmentRepo.ErrExecQuery
			},
			wantErr:  ErrInternal,
			category: domain.ErrStoreUnavailable,
		},
		{
			name: "exclusion constraint",
			mutate: func(_ *Request, f *fixture) {
				f.appointments.createErr = appointmentRepo.ErrSlotNotAvailable
			},
			wantErr:  ErrSlotNotAvailable,
			category: domain.ErrConflict,
		},
		{
			name: "serialization failure",
			mutate: func(_ *Request, f *fixture) {
				f.tx.err = txmanager.ErrSerializationFailure
			},
			wantErr:  ErrSlotNotAvailable,
			category: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(monday.AddDate(0, 0, -3))
			req := haircutAt("09:00")
			tt.mutate(req, f)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.category)
		})
	}
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(at("10:05"))

	_, err := f.uc.Execute(context.Background(), haircutAt("10:00"))
	assert.ErrorIs(t, err, ErrStartInPast)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	_, err = f.uc.Execute(context.Background(), haircutAt("10:15"))
	assert.NoError(t, err)
}

func TestExecute_Overlap(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -3))

	_, err := f.uc.Execute(context.Background(), haircutAt("09:00"))
	require.NoError(t, err)

	req := haircutAt("09:15")
	req.ClientID = "client-2"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	req = haircutAt("09:30")
	req.ClientID = "client-2"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentBookingsNeverOverlap(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -3))

	const clients = 20
	var wg sync.WaitGroup
	errs := make([]error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := haircutAt("09:00")
			req.ClientID = "client-" + string(rune('a'+i))
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.appointments.items, 1)
}

func TestExecute_PqSerializationFailureFromRepo(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -3))
	f.tx.err = errors.Join(txmanager.ErrSerializationFailure, &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), haircutAt("09:00"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

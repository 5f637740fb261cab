package submit_review

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/review"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type store struct {
	mu           sync.Mutex
	appointments map[string]*domain.Appointment
	reviews      map[string]*domain.Review // по appointment id
}

func newStore(status domain.AppointmentStatus) *store {
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	return &store{
		appointments: map[string]*domain.Appointment{
			"a-1": {
				ID:         "a-1",
				ProviderID: "provider-1",
				ClientID:   "client-1",
				StartTime:  start,
				EndTime:    start.Add(30 * time.Minute),
				Status:     status,
				ClientName: ptr.Ptr("Maria"),
			},
		},
		reviews: make(map[string]*domain.Review),
	}
}

type fakeAppointments struct{ s *store }

func (f fakeAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (f fakeAppointments) MarkReviewed(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a := f.s.appointments[id]
	if a.Status != domain.StatusCompleted || a.IsReviewed {
		return appointmentRepo.ErrAlreadyReviewed
	}
	a.IsReviewed = true
	return nil
}

type fakeReviews struct{ s *store }

func (f fakeReviews) Create(_ context.Context, r *domain.Review) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[r.AppointmentID]; ok {
		return reviewRepo.ErrReviewExists
	}
	r.CreatedAt = time.Now()
	f.s.reviews[r.AppointmentID] = r
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newUseCase(s *store) *UseCase {
	return NewUseCase(fakeAppointments{s}, fakeReviews{s}, inlineTx{}, logger.NewNop())
}

func TestExecute_Success(t *testing.T) {
	s := newStore(domain.StatusCompleted)
	uc := newUseCase(s)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "a-1",
		ClientID:      "client-1",
		Rating:        5,
		Comment:       ptr.Ptr("  Great haircut  "),
	})

	require.NoError(t, err)
	assert.Equal(t, "provider-1", resp.ProviderID)
	assert.Equal(t, "Great haircut", *resp.Comment)
	assert.Equal(t, "Maria", *resp.ClientName)
	assert.True(t, s.appointments["a-1"].IsReviewed)
	assert.Len(t, s.reviews, 1)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		req     Request
		wantErr error
	}{
		{
			name:    "rating below range",
			status:  domain.StatusCompleted,
			req:     Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 0},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "rating above range",
			status:  domain.StatusCompleted,
			req:     Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 6},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "comment too long",
			status:  domain.StatusCompleted,
			req:     Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 4, Comment: ptr.Ptr(strings.Repeat("a", 1001))},
			wantErr: ErrCommentTooLong,
		},
		{
			name:    "not the client",
			status:  domain.StatusCompleted,
			req:     Request{AppointmentID: "a-1", ClientID: "provider-1", Rating: 4},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "not completed",
			status:  domain.StatusConfirmed,
			req:     Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 4},
			wantErr: ErrNotCompleted,
		},
		{
			name:    "cancelled appointment",
			status:  domain.StatusCancelledByClient,
			req:     Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 4},
			wantErr: ErrNotCompleted,
		},
		{
			name:    "unknown appointment",
			status:  domain.StatusCompleted,
			req:     Request{AppointmentID: "a-404", ClientID: "client-1", Rating: 4},
			wantErr: ErrAppointmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(tt.status)
			uc := newUseCase(s)

			_, err := uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, s.appointments["a-1"].IsReviewed)
			assert.Empty(t, s.reviews)
		})
	}
}

func TestExecute_SecondReviewRejected(t *testing.T) {
	s := newStore(domain.StatusCompleted)
	uc := newUseCase(s)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 5})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: "a-1", ClientID: "client-1", Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	assert.Equal(t, 5, s.reviews["a-1"].Rating)
}

func TestExecute_ConcurrentReviewsExactlyOne(t *testing.T) {
	s := newStore(domain.StatusCompleted)
	uc := newUseCase(s)

	const attempts = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{AppointmentID: "a-1", ClientID: "client-1", Rating: rating})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrAlreadyReviewed)
		}(i%5 + 1)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, s.reviews, 1)
}

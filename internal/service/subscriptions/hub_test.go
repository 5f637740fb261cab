package subscriptions

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var day = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu     sync.Mutex
	booked map[string][]domain.BookedInterval
	err    error
}

func (f *fakeSource) ListConfirmedInRange(_ context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	result := make([]domain.BookedInterval, 0)
	for _, b := range f.booked[providerID] {
		if b.Overlaps(from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeSource) book(providerID string, start time.Time, minutes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked[providerID] = append(f.booked[providerID], domain.BookedInterval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	})
}

// gatedSource задерживает первое чтение уже после того, как состояние прочитано
type gatedSource struct {
	*fakeSource
	calls   atomic.Int32
	started chan struct{}
	gate    chan struct{}
}

func (g *gatedSource) ListConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]domain.BookedInterval, error) {
	result, err := g.fakeSource.ListConfirmedInRange(ctx, providerID, from, to)
	if g.calls.Add(1) == 1 {
		close(g.started)
		<-g.gate
	}
	return result, err
}

type recordingHook struct {
	mu        sync.Mutex
	providers []string
}

func (r *recordingHook) Invalidate(_ context.Context, providerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, providerID)
	return nil
}

func receive(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.Updates():
		require.True(t, ok, "updates channel closed")
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return Snapshot{}
	}
}

func TestSubscribe_InitialAndChangeSnapshots(t *testing.T) {
	source := &fakeSource{booked: map[string][]domain.BookedInterval{}}
	hook := &recordingHook{}
	hub := NewHub(source, logger.NewNop())
	hub.AddHook(hook)

	sub, err := hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	defer sub.Close()

	assert.Empty(t, receive(t, sub).Intervals)

	source.book("provider-1", day.Add(9*time.Hour), 30)
	hub.Notify(context.Background(), "provider-1")

	snap := receive(t, sub)
	require.Len(t, snap.Intervals, 1)
	assert.Equal(t, day.Add(9*time.Hour), snap.Intervals[0].Start)
	assert.Equal(t, []string{"provider-1"}, hook.providers)
}

func TestNotify_OnlyLatestSnapshotKept(t *testing.T) {
	source := &fakeSource{booked: map[string][]domain.BookedInterval{}}
	hub := NewHub(source, logger.NewNop())

	sub, err := hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	defer sub.Close()

	source.book("provider-1", day.Add(9*time.Hour), 30)
	hub.Notify(context.Background(), "provider-1")
	source.book("provider-1", day.Add(10*time.Hour), 30)
	hub.Notify(context.Background(), "provider-1")

	assert.Len(t, receive(t, sub).Intervals, 2)

	select {
	case <-sub.Updates():
		t.Fatal("stale snapshot was not dropped")
	default:
	}
}

func TestSubscribe_SlowInitialLoadDoesNotOverrideNewerSnapshot(t *testing.T) {
	source := &gatedSource{
		fakeSource: &fakeSource{booked: map[string][]domain.BookedInterval{}},
		started:    make(chan struct{}),
		gate:       make(chan struct{}),
	}
	hub := NewHub(source, logger.NewNop())

	type result struct {
		sub *Subscription
		err error
	}
	done := make(chan result, 1)
	go func() {
		sub, err := hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
		done <- result{sub: sub, err: err}
	}()

	<-source.started
	source.book("provider-1", day.Add(9*time.Hour), 30)
	hub.Notify(context.Background(), "provider-1")
	close(source.gate)

	res := <-done
	require.NoError(t, res.err)
	defer res.sub.Close()

	assert.Len(t, receive(t, res.sub).Intervals, 1)

	select {
	case snap := <-res.sub.Updates():
		t.Fatalf("stale snapshot delivered after newer one: %d intervals", len(snap.Intervals))
	default:
	}
}

func TestNotify_OtherProviderUnaffected(t *testing.T) {
	source := &fakeSource{booked: map[string][]domain.BookedInterval{}}
	hub := NewHub(source, logger.NewNop())

	sub, err := hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	defer sub.Close()
	receive(t, sub)

	hub.Notify(context.Background(), "provider-2")

	select {
	case <-sub.Updates():
		t.Fatal("unexpected snapshot")
	default:
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(&fakeSource{booked: map[string][]domain.BookedInterval{}}, logger.NewNop())

	sub, err := hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, hub.SubscriberCount("provider-1"))

	sub.Close()
	assert.NotPanics(t, sub.Close)
	assert.Equal(t, 0, hub.SubscriberCount("provider-1"))

	// После закрытия канал вычитывается до конца и закрывается
	for range sub.Updates() {
	}
	assert.NotPanics(t, func() { hub.Notify(context.Background(), "provider-1") })
}

func TestSubscription_ReleasedOnContextCancel(t *testing.T) {
	hub := NewHub(&fakeSource{booked: map[string][]domain.BookedInterval{}}, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := hub.Subscribe(ctx, "provider-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	cancel()

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription was not released")
	}
	assert.Eventually(t, func() bool { return hub.SubscriberCount("provider-1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestSubscribe_Errors(t *testing.T) {
	source := &fakeSource{booked: map[string][]domain.BookedInterval{}, err: errors.New("connection refused")}
	hub := NewHub(source, logger.NewNop())

	_, err := hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, 0, hub.SubscriberCount("provider-1"))

	_, err = hub.Subscribe(context.Background(), "provider-1", day, day)
	assert.ErrorIs(t, err, domain.ErrValidation)

	hub.Close()
	_, err = hub.Subscribe(context.Background(), "provider-1", day, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrHubClosed)
}

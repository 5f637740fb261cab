package subscriptions

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Snapshot подтверждённые интервалы провайдера в диапазоне подписки на момент At
type Snapshot struct {
	ProviderID string
	From       time.Time
	To         time.Time
	Intervals  []domain.BookedInterval
	At         time.Time

	seq uint64
}

// Subscription подписка на изменения занятости провайдера.
// Канал Updates хранит только последний недоставленный снимок.
// Подписку нужно освободить через Close или отменой контекста.
type Subscription struct {
	ProviderID string
	From       time.Time
	To         time.Time

	hub     *Hub
	updates chan Snapshot
	done    chan struct{}

	mu      sync.Mutex
	closed  bool
	lastSeq uint64
}

func newSubscription(hub *Hub, providerID string, from, to time.Time) *Subscription {
	return &Subscription{
		ProviderID: providerID,
		From:       from,
		To:         to,
		hub:        hub,
		updates:    make(chan Snapshot, 1),
		done:       make(chan struct{}),
	}
}

// Updates канал снимков. Закрывается после Close.
func (s *Subscription) Updates() <-chan Snapshot {
	return s.updates
}

// Done закрывается после Close
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close освобождает подписку. Повторный вызов ничего не делает.
func (s *Subscription) Close() {
	if !s.markClosed() {
		return
	}
	s.hub.remove(s)
}

// markClosed закрывает каналы, возвращает false, если подписка уже закрыта
func (s *Subscription) markClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.closed = true
	close(s.done)
	close(s.updates)
	return true
}

// deliver кладёт снимок в канал, вытесняя недоставленный старый.
// Снимок, прочитанный раньше уже доставленного, отбрасывается.
func (s *Subscription) deliver(snapshot Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || snapshot.seq <= s.lastSeq {
		return false
	}
	s.lastSeq = snapshot.seq

	select {
	case <-s.updates:
	default:
	}
	s.updates <- snapshot
	return true
}

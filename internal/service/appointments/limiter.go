package appointments

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultSweepInterval период очистки простаивающих лимитеров
const DefaultSweepInterval = 10 * time.Minute

type attemptEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// CodeAttemptLimiter token bucket на каждую запись.
// Хранит лимитеры в map под мьютексом. Запись удаляется после успешного завершения
// или при очистке, когда её bucket успел наполниться заново.
type CodeAttemptLimiter struct {
	mu       sync.Mutex
	limiters map[string]*attemptEntry
	limit    rate.Limit
	burst    int
	// refill время, за которое пустой bucket наполняется полностью
	refill time.Duration
	now    func() time.Time
}

// NewCodeAttemptLimiter создаёт лимитер: attemptsPerHour попыток в час с запасом burst.
// attemptsPerHour <= 0 отключает ограничение.
func NewCodeAttemptLimiter(attemptsPerHour, burst int) *CodeAttemptLimiter {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	var refill time.Duration
	if attemptsPerHour > 0 {
		interval := time.Hour / time.Duration(attemptsPerHour)
		limit = rate.Every(interval)
		refill = interval * time.Duration(burst)
	}

	return &CodeAttemptLimiter{
		limiters: make(map[string]*attemptEntry),
		limit:    limit,
		burst:    burst,
		refill:   refill,
		now:      time.Now,
	}
}

// Allow расходует одну попытку для key
func (l *CodeAttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, exists := l.limiters[key]
	if !exists {
		entry = &attemptEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Forget удаляет лимитер для key
func (l *CodeAttemptLimiter) Forget(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, key)
}

// Sweep удаляет лимитеры, к которым не обращались дольше времени полного восстановления bucket.
// Такой лимитер неотличим от нового. Возвращает число удалённых.
func (l *CodeAttemptLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.refill {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len возвращает число хранимых лимитеров
func (l *CodeAttemptLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Run периодически вызывает Sweep до отмены ctx
func (l *CodeAttemptLimiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

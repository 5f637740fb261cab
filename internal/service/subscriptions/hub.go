package subscriptions

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Hub раздаёт подписчикам снимки занятости провайдеров.
// Снимок отправляется сразу при подписке и после каждого уведомления об изменении.
type Hub struct {
	source IntervalSource
	logger Logger
	now    func() time.Time

	// seq номер чтения из источника, растёт с каждой загрузкой снимка
	seq atomic.Uint64

	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	hooks  []ChangeHook
	closed bool
}

// NewHub создает hub поверх источника интервалов
func NewHub(source IntervalSource, logger Logger) *Hub {
	return &Hub{
		source: source,
		logger: logger,
		now:    time.Now,
		subs:   make(map[string]map[*Subscription]struct{}),
	}
}

// AddHook регистрирует обработчик изменений
func (h *Hub) AddHook(hook ChangeHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Subscribe подписывается на занятость провайдера в [from, to).
// Первый снимок уже лежит в канале Updates при успешном возврате.
// Подписка освобождается при отмене ctx.
func (h *Hub) Subscribe(ctx context.Context, providerID string, from, to time.Time) (*Subscription, error) {
	if providerID == "" {
		return nil, fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: range end must be after start", ErrInvalidInput)
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	sub := newSubscription(h, providerID, from, to)
	if h.subs[providerID] == nil {
		h.subs[providerID] = make(map[*Subscription]struct{})
	}
	h.subs[providerID][sub] = struct{}{}
	h.mu.Unlock()

	// Регистрируемся до загрузки снимка: изменение между ними не потеряется
	snapshot, err := h.load(ctx, sub)
	if err != nil {
		sub.Close()
		h.logger.Error("Subscribe: failed to load snapshot for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !sub.deliver(snapshot) {
		h.logger.Info("Subscribe: initial snapshot for provider=%s superseded by a newer one", providerID)
	}

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.Done():
		}
	}()

	h.logger.Info("Subscribe: provider=%s, range=%s..%s", providerID, from.Format(time.RFC3339), to.Format(time.RFC3339))
	return sub, nil
}

// Notify обрабатывает изменение расписания провайдера:
// вызывает обработчики и рассылает свежие снимки подписчикам
func (h *Hub) Notify(ctx context.Context, providerID string) {
	h.mu.Lock()
	hooks := append([]ChangeHook(nil), h.hooks...)
	subs := make([]*Subscription, 0, len(h.subs[providerID]))
	for sub := range h.subs[providerID] {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, hook := range hooks {
		if err := hook.Invalidate(ctx, providerID); err != nil {
			h.logger.Warn("Notify: change hook failed for provider=%s: %v", providerID, err)
		}
	}

	for _, sub := range subs {
		snapshot, err := h.load(ctx, sub)
		if err != nil {
			h.logger.Error("Notify: failed to load snapshot for provider=%s: %v", providerID, err)
			continue
		}
		sub.deliver(snapshot)
	}
}

// NotifyAll рассылает свежие снимки всем подписчикам.
// Используется после переподключения к источнику уведомлений, когда часть изменений могла потеряться.
func (h *Hub) NotifyAll(ctx context.Context) {
	h.mu.Lock()
	providers := make([]string, 0, len(h.subs))
	for providerID := range h.subs {
		providers = append(providers, providerID)
	}
	h.mu.Unlock()

	for _, providerID := range providers {
		h.Notify(ctx, providerID)
	}
}

// SubscriberCount возвращает число активных подписок провайдера
func (h *Hub) SubscriberCount(providerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[providerID])
}

// Close закрывает все подписки, новые подписки отклоняются
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	all := make([]*Subscription, 0)
	for _, subs := range h.subs {
		for sub := range subs {
			all = append(all, sub)
		}
	}
	h.subs = make(map[string]map[*Subscription]struct{})
	h.mu.Unlock()

	for _, sub := range all {
		sub.markClosed()
	}
	h.logger.Info("Hub: closed %d subscriptions", len(all))
}

// load читает снимок. Номер берётся до чтения: снимок с большим номером
// прочитан позже и не старее снимка с меньшим.
func (h *Hub) load(ctx context.Context, sub *Subscription) (Snapshot, error) {
	seq := h.seq.Add(1)
	intervals, err := h.source.ListConfirmedInRange(ctx, sub.ProviderID, sub.From, sub.To)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ProviderID: sub.ProviderID,
		From:       sub.From,
		To:         sub.To,
		Intervals:  intervals,
		At:         h.now(),
		seq:        seq,
	}, nil
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[sub.ProviderID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subs, sub.ProviderID)
	}
}

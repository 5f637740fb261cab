package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Channel канал LISTEN/NOTIFY, в который триггеры пишут provider_id
const Channel = "appointment_changes"

const (
	defaultMinReconnect = 10 * time.Second
	defaultMaxReconnect = time.Minute
	defaultPingInterval = 90 * time.Second
)

// ErrListen возвращается, когда не удалось подписаться на канал
var ErrListen = errors.New("pgnotify: failed to listen")

// Notifier получатель уведомлений об изменениях расписания
type Notifier interface {
	Notify(ctx context.Context, providerID string)
	NotifyAll(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Listener слушает канал Postgres и передаёт provider_id из уведомлений в Notifier
type Listener struct {
	dsn          string
	channel      string
	notifier     Notifier
	logger       Logger
	pingInterval time.Duration
}

// NewListener создает слушателя канала Channel
func NewListener(dsn string, notifier Notifier, logger Logger) *Listener {
	return &Listener{
		dsn:          dsn,
		channel:      Channel,
		notifier:     notifier,
		logger:       logger,
		pingInterval: defaultPingInterval,
	}
}

// Run слушает канал до отмены ctx. pq.Listener сам переподключается при обрыве связи.
func (l *Listener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.dsn, defaultMinReconnect, defaultMaxReconnect, l.onEvent)
	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, l.channel, err)
	}

	l.logger.Info("pgnotify: listening on channel %s", l.channel)
	return l.loop(ctx, listener.Notify, listener.Ping)
}

// loop читает уведомления. nil уведомление означает переподключение,
// после которого часть изменений могла потеряться.
func (l *Listener) loop(ctx context.Context, notifications <-chan *pq.Notification, ping func() error) error {
	ticker := time.NewTicker(l.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("pgnotify: stopped listening on channel %s", l.channel)
			return nil

		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			l.dispatch(ctx, n)

		case <-ticker.C:
			if err := ping(); err != nil {
				l.logger.Warn("pgnotify: ping failed: %v", err)
			}
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, n *pq.Notification) {
	if n == nil {
		l.logger.Warn("pgnotify: connection re-established, refreshing all subscribers")
		l.notifier.NotifyAll(ctx)
		return
	}

	providerID := strings.TrimSpace(n.Extra)
	if providerID == "" {
		l.logger.Warn("pgnotify: notification without provider id on channel %s", n.Channel)
		return
	}

	l.notifier.Notify(ctx, providerID)
}

func (l *Listener) onEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnected:
		l.logger.Info("pgnotify: connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("pgnotify: disconnected: %v", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("pgnotify: reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Error("pgnotify: connection attempt failed: %v", err)
	}
}

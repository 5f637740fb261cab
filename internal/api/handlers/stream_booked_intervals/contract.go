package stream_booked_intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/subscriptions"
)

type SubscriptionHub interface {
	Subscribe(ctx context.Context, providerID string, from, to time.Time) (*subscriptions.Subscription, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

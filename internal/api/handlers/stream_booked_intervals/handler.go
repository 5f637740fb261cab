package stream_booked_intervals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/subscriptions"
)

// DefaultHeartbeat период комментариев-пингов, чтобы прокси не рвали соединение
const DefaultHeartbeat = 25 * time.Second

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidRange      = "некорректный диапазон дат, ожидается from=YYYY-MM-DD и to=YYYY-MM-DD не дальше 62 дней"
	msgStreamUnsupported = "потоковая передача не поддерживается"
	msgUnavailable       = "подписки временно недоступны"
)

type Handler struct {
	hub       SubscriptionHub
	location  *time.Location
	heartbeat time.Duration
	logger    Logger
}

func NewHandler(hub SubscriptionHub, location *time.Location, heartbeat time.Duration, logger Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Handler{
		hub:       hub,
		location:  location,
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/booked-intervals/stream
// Query params: from (required, YYYY-MM-DD), to (YYYY-MM-DD, по умолчанию from)
// Server-Sent Events: event snapshot с занятыми интервалами при подписке и после каждого изменения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("GET /providers/{id}/booked-intervals/stream - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	from, to, err := ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"), h.location)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/booked-intervals/stream - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /providers/{id}/booked-intervals/stream - ResponseWriter does not support flushing")
		handlers.RespondInternalError(w)
		return
	}

	sub, err := h.hub.Subscribe(r.Context(), providerID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrHubClosed):
			h.logger.Warn("GET /providers/{id}/booked-intervals/stream - Hub closed: provider_id=%s", providerID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("GET /providers/{id}/booked-intervals/stream - Failed to subscribe: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondServiceError(w, err)
		}
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /providers/{id}/booked-intervals/stream - Subscribed: provider_id=%s, from=%s, to=%s",
		providerID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /providers/{id}/booked-intervals/stream - Client disconnected: provider_id=%s, snapshots=%d",
				providerID, sent)
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case snapshot, ok := <-sub.Updates():
			if !ok {
				h.logger.Info("GET /providers/{id}/booked-intervals/stream - Subscription closed: provider_id=%s, snapshots=%d",
					providerID, sent)
				return
			}
			if err := writeEvent(w, "snapshot", FromSnapshot(snapshot)); err != nil {
				h.logger.Warn("GET /providers/{id}/booked-intervals/stream - Failed to write snapshot: provider_id=%s, error=%v",
					providerID, err)
				return
			}
			flusher.Flush()
			sent++
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

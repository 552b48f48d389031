// internal/adapter/sheets/mirror.go

package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"brandpulse/internal/domain/social"
)

// WorkerConfig contains configuration for the mirror worker.
type WorkerConfig struct {
	SearchTopic   string
	MirrorTimeout time.Duration
}

// Worker subscribes to completed-search events and mirrors each one
// into the brand's spreadsheet. Mirroring runs off the request path, so
// a spreadsheet failure can never delay or break an API response; it is
// logged and the event is dropped.
type Worker struct {
	service *Service
	conn    *nats.Conn
	config  WorkerConfig
	logger  logrus.FieldLogger
	sub     *nats.Subscription
}

// NewWorker creates a new mirror worker.
func NewWorker(service *Service, conn *nats.Conn, config WorkerConfig, logger logrus.FieldLogger) *Worker {
	return &Worker{
		service: service,
		conn:    conn,
		config:  config,
		logger:  logger,
	}
}

// Start subscribes the worker to the search events topic.
func (w *Worker) Start() error {
	sub, err := w.conn.Subscribe(w.config.SearchTopic, func(msg *nats.Msg) {
		w.handle(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", w.config.SearchTopic, err)
	}

	w.sub = sub
	w.logger.WithField("topic", w.config.SearchTopic).Info("Mirror worker started")
	return nil
}

// Stop unsubscribes the worker.
func (w *Worker) Stop() error {
	if w.sub == nil {
		return nil
	}
	return w.sub.Unsubscribe()
}

func (w *Worker) handle(data []byte) {
	var event social.SearchEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.WithError(err).Error("Error decoding search event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.config.MirrorTimeout)
	defer cancel()

	if err := w.service.MirrorSearch(ctx, event); err != nil {
		w.logger.WithFields(logrus.Fields{"brand": event.Brand, "event": event.ID}).
			WithError(err).Error("Error updating Google Sheets")
	}
}

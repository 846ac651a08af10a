package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/mediease/insurance-portal-service/internal/config"
	"github.com/mediease/insurance-portal-service/internal/adapters/repository"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

const (
	// PostgreSQL NOTIFY/LISTEN configuration
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute
	outboxChannelName            = "outbox_channel"

	// Event processing timeouts
	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	// Health check configuration
	healthCheckStaleThreshold = 5 * time.Minute

	// Batch processing limits
	maxEventsPerBatch = 100
)

// Relay listens for PostgreSQL NOTIFY signals on the outbox channel and
// publishes committed claim-decision events to RabbitMQ.
type Relay struct {
	db            *sql.DB
	publisher     ports.ClaimEventPublisher
	listener      *pq.Listener
	dbURL         string
	dbCB          *gobreaker.CircuitBreaker
	lastProcessed time.Time
	isHealthy     bool
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.ClaimEventPublisher) *Relay {
	return &Relay{
		db:            db,
		dbURL:         dbURL,
		publisher:     publisher,
		dbCB:          config.NewCircuitBreaker("Relay-PostgreSQL"),
		lastProcessed: time.Now(),
		isHealthy:     true,
	}
}

// IsHealthy reports whether the relay process is alive and responding.
// Liveness only: an open circuit breaker is degraded but recoverable, and
// should not get the pod killed.
func (r *Relay) IsHealthy() bool {
	return r.isHealthy
}

// IsReady reports whether the relay can currently process events.
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	if time.Since(r.lastProcessed) > healthCheckStaleThreshold {
		return false
	}
	return r.isHealthy
}

// Start begins listening for outbox notifications and processing events.
// Blocks until the context is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error().Err(err).Msg("outbox relay: listener error")
		}
	}

	r.listener = pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer r.listener.Close()

	if err := r.listener.Listen(outboxChannelName); err != nil {
		return err
	}

	log.Info().Str("channel", outboxChannelName).Msg("outbox relay: listening for notifications")

	// Catch up on anything left unprocessed before the last shutdown.
	if err := r.processUnprocessedEvents(ctx); err != nil {
		log.Error().Err(err).Msg("outbox relay: error processing startup backlog")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox relay: shutting down")
			return ctx.Err()

		case notification := <-r.listener.Notify:
			if notification == nil {
				log.Warn().Msg("outbox relay: nil notification, reconnecting")
				r.isHealthy = false
				continue
			}

			if err := r.processEventByID(ctx, notification.Extra); err != nil {
				log.Error().Err(err).Str("event_id", notification.Extra).Msg("outbox relay: error processing event")
			} else {
				r.lastProcessed = time.Now()
				r.isHealthy = true
			}

		case <-time.After(periodicProcessInterval):
			// Keep the connection alive and sweep for missed events.
			go r.listener.Ping()

			if err := r.processUnprocessedEvents(ctx); err != nil {
				log.Error().Err(err).Msg("outbox relay: error in periodic processing")
			} else {
				r.lastProcessed = time.Now()
			}
		}
	}
}

func (r *Relay) processEventByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var id, eventType string
		var payload []byte
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&id, &eventType, &payload)

		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if eventType == repository.EventClaimDecided {
			var evt ports.ClaimDecidedEvent
			if err := json.Unmarshal(payload, &evt); err != nil {
				log.Error().Err(err).Str("event_id", id).Msg("outbox relay: invalid payload")
				// Mark as processed anyway to avoid infinite retries on bad data
				_, _ = tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
				return nil, tx.Commit()
			}

			if r.publisher == nil {
				return nil, errors.New("message broker unavailable")
			}
			if err := r.publisher.PublishClaimDecided(ctx, evt); err != nil {
				return nil, err
			}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id); err != nil {
			return nil, err
		}

		return nil, tx.Commit()
	})
	return err
}

func (r *Relay) processUnprocessedEvents(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		type record struct {
			ID        string
			EventType string
			Payload   []byte
		}

		var records []record
		for rows.Next() {
			var rec record
			if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Payload); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, rec := range records {
			if rec.EventType == repository.EventClaimDecided {
				var evt ports.ClaimDecidedEvent
				if err := json.Unmarshal(rec.Payload, &evt); err != nil {
					log.Error().Err(err).Str("event_id", rec.ID).Msg("outbox relay: invalid payload")
					_, _ = tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, rec.ID)
					continue
				}

				if r.publisher == nil {
					return nil, errors.New("message broker unavailable")
				}
				if err := r.publisher.PublishClaimDecided(ctx, evt); err != nil {
					log.Error().Err(err).Str("event_id", rec.ID).Msg("outbox relay: failed to publish event")
					continue
				}
			}

			if _, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, rec.ID); err != nil {
				return nil, err
			}

			log.Debug().Str("event_id", rec.ID).Msg("outbox relay: processed event")
		}

		return nil, tx.Commit()
	})
	return err
}

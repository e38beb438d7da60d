package notifier

import (
	"context"
	"errors"

	"fullmoon/pkg/kafka"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"
)

// Sink receives decoded reservation events.
type Sink interface {
	Deliver(ctx context.Context, event model.ReservationEvent) error
}

// NewEventHandler decodes reservation events from Kafka and hands them to
// sink. Undecodable or unknown events are permanent failures and go
// straight to the dead-letter topic; delivery failures are retried.
func NewEventHandler(sink Sink, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event model.ReservationEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode reservation event", err)
		}
		if event.Type == "" {
			event.Type = msg.GetEventType()
		}
		if event.ReservationID == "" || event.GuestEmail == "" {
			return kafka.NewPermanentError("reservation event is missing its reservation id or guest email", nil)
		}

		if err := sink.Deliver(ctx, event); err != nil {
			if errors.Is(err, ErrUnknownEvent) {
				return kafka.NewPermanentError("unsupported reservation event", err)
			}
			return kafka.NewTransientError("failed to deliver reservation event", err)
		}

		log.Debug("Reservation event handled",
			"type", event.Type,
			"reservation_id", event.ReservationID,
			"event_id", msg.GetEventID(),
			"correlation_id", msg.GetCorrelationID(),
		)
		return nil
	}
}

// Package notifier delivers reservation events to guests. The booking
// service hands events to a sink: KafkaSink publishes them for the
// notifier process, MailSink emails the guest directly.
package notifier

import (
	"context"
	"fmt"

	"fullmoon/pkg/kafka"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/mail"
	"fullmoon/pkg/middleware"
	"fullmoon/pkg/model"
)

// Publisher is the subset of *kafka.Producer the sink needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaSink struct {
	publisher Publisher
	source    string
	log       *logger.Logger
}

func NewKafkaSink(publisher Publisher, source string, log *logger.Logger) *KafkaSink {
	return &KafkaSink{
		publisher: publisher,
		source:    source,
		log:       log,
	}
}

// Deliver publishes the event keyed by reservation id, so every event of
// one reservation lands on the same partition in order.
func (s *KafkaSink) Deliver(ctx context.Context, event model.ReservationEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.ReservationID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFrom(ctx)).
		WithSchemaVersion(model.ReservationEventSchemaVersion).
		WithSource(s.source).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s message: %w", event.Type, err)
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	s.log.Debug("Reservation event published",
		"type", event.Type,
		"reservation_id", event.ReservationID,
		"event_id", msg.GetEventID(),
	)
	return nil
}

type MailSink struct {
	mailer   mail.Mailer
	currency string
	log      *logger.Logger
}

func NewMailSink(mailer mail.Mailer, currency string, log *logger.Logger) *MailSink {
	return &MailSink{
		mailer:   mailer,
		currency: currency,
		log:      log,
	}
}

func (s *MailSink) Deliver(ctx context.Context, event model.ReservationEvent) error {
	msg, err := s.render(event)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", event.Type, err)
	}

	s.log.Info("Reservation email sent",
		"type", event.Type,
		"reservation_id", event.ReservationID,
		"to", event.GuestEmail,
	)
	return nil
}

func (s *MailSink) render(event model.ReservationEvent) (mail.Message, error) {
	details := mail.ReservationDetails{
		Reference:   event.ReservationID,
		GuestName:   event.GuestName,
		GuestEmail:  event.GuestEmail,
		RoomNumber:  event.RoomNumber,
		RoomType:    event.RoomType.Label(),
		CheckIn:     event.CheckIn,
		CheckOut:    event.CheckOut,
		Nights:      event.Nights,
		Guests:      event.Guests,
		TotalAmount: event.TotalAmount,
		Currency:    s.currency,
	}

	switch event.Type {
	case model.EventReservationConfirmed:
		return mail.ReservationConfirmed(details)
	case model.EventReservationCancelled:
		return mail.ReservationCancelled(details)
	default:
		return mail.Message{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
}

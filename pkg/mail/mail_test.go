package mail

import (
	"context"
	"errors"
	"testing"

	"fullmoon/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{dialer: d, from: "reservations@fullmoon-hotels.com", log: logger.Discard()}

	err := m.Send(context.Background(), Message{To: "ada@example.com", ReplyTo: "desk@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"reservations@fullmoon-hotels.com"}, d.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"desk@example.com"}, d.sent[0].GetHeader("Reply-To"))
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := &SMTPMailer{dialer: &fakeDialer{err: errors.New("dial tcp: connection refused")}, log: logger.Discard()}

	err := m.Send(context.Background(), Message{To: "ada@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{dialer: d, log: logger.Discard()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Message{To: "ada@example.com"}), context.Canceled)
	assert.Empty(t, d.sent)
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(logger.Discard()).Send(context.Background(), Message{To: "x@example.com"}))
}

func TestReservationConfirmed(t *testing.T) {
	msg, err := ReservationConfirmed(ReservationDetails{
		Reference:   "6720c0ffee",
		GuestName:   "Ada <script>",
		GuestEmail:  "ada@example.com",
		RoomNumber:  "301",
		RoomType:    "Deluxe Room",
		CheckIn:     "2025-11-14",
		CheckOut:    "2025-11-16",
		Nights:      2,
		Guests:      2,
		TotalAmount: 130000,
		Currency:    "NGN",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Contains(t, msg.Subject, "6720c0ffee")
	assert.Contains(t, msg.HTML, "NGN 130000.00")
	assert.Contains(t, msg.HTML, "2025-11-14")
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestReservationCancelled(t *testing.T) {
	msg, err := ReservationCancelled(ReservationDetails{Reference: "abc", GuestEmail: "ada@example.com", RoomNumber: "101"})
	require.NoError(t, err)
	assert.Contains(t, msg.Subject, "Cancelled")
	assert.Contains(t, msg.HTML, "101")
}

func TestContactMessages(t *testing.T) {
	admin, reply, err := ContactMessages("info@fullmoon-hotels.com", ContactDetails{
		Name:    "Tunde",
		Email:   "tunde@example.com",
		Subject: "Wedding venue",
		Message: "Do you host receptions?",
	})
	require.NoError(t, err)

	assert.Equal(t, "info@fullmoon-hotels.com", admin.To)
	assert.Equal(t, "tunde@example.com", admin.ReplyTo)
	assert.Contains(t, admin.HTML, "Do you host receptions?")
	assert.Equal(t, "tunde@example.com", reply.To)
	assert.Contains(t, reply.HTML, "Wedding venue")
}

package mail

import (
	"fmt"
	"html/template"
	"time"
)

const hotelName = "Full Moon Hotel"

var (
	confirmationTemplate = template.Must(template.New("reservation_confirmed").Parse(`
<h2>Booking confirmed</h2>
<p>Dear {{.GuestName}},</p>
<p>Thank you for choosing {{.Hotel}}. Your reservation is confirmed.</p>
<table>
  <tr><td>Reference</td><td><strong>{{.Reference}}</strong></td></tr>
  <tr><td>Room</td><td>{{.RoomNumber}} ({{.RoomType}})</td></tr>
  <tr><td>Check-in</td><td>{{.CheckIn}}</td></tr>
  <tr><td>Check-out</td><td>{{.CheckOut}}</td></tr>
  <tr><td>Nights</td><td>{{.Nights}}</td></tr>
  <tr><td>Guests</td><td>{{.Guests}}</td></tr>
  <tr><td>Total</td><td>{{.Currency}} {{printf "%.2f" .TotalAmount}}</td></tr>
</table>
<p>&copy; {{.Year}} {{.Hotel}}</p>`))

	cancellationTemplate = template.Must(template.New("reservation_cancelled").Parse(`
<h2>Booking cancelled</h2>
<p>Dear {{.GuestName}},</p>
<p>Your reservation <strong>{{.Reference}}</strong> for room {{.RoomNumber}}
from {{.CheckIn}} to {{.CheckOut}} has been cancelled.</p>
<p>&copy; {{.Year}} {{.Hotel}}</p>`))

	contactAdminTemplate = template.Must(template.New("contact_admin").Parse(`
<h2>New contact message</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>`))

	contactReplyTemplate = template.Must(template.New("contact_reply").Parse(`
<p>Dear {{.Name}},</p>
<p>Thank you for contacting {{.Hotel}}. We received your message about
"{{.Subject}}" and will get back to you shortly.</p>
<p>&copy; {{.Year}} {{.Hotel}}</p>`))
)

type ReservationDetails struct {
	Reference   string
	GuestName   string
	GuestEmail  string
	RoomNumber  string
	RoomType    string
	CheckIn     string
	CheckOut    string
	Nights      int
	Guests      int
	TotalAmount float64
	Currency    string
}

type ContactDetails struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type templateData struct {
	ReservationDetails
	ContactDetails
	Hotel string
	Year  int
}

func ReservationConfirmed(d ReservationDetails) (Message, error) {
	body, err := render(confirmationTemplate, templateData{ReservationDetails: d, Hotel: hotelName, Year: time.Now().Year()})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      d.GuestEmail,
		Subject: fmt.Sprintf("Booking Confirmation - %s", d.Reference),
		HTML:    body,
	}, nil
}

func ReservationCancelled(d ReservationDetails) (Message, error) {
	body, err := render(cancellationTemplate, templateData{ReservationDetails: d, Hotel: hotelName, Year: time.Now().Year()})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      d.GuestEmail,
		Subject: fmt.Sprintf("Booking Cancelled - %s", d.Reference),
		HTML:    body,
	}, nil
}

// ContactMessages builds the inbox notification and the auto-reply to the sender.
func ContactMessages(inbox string, d ContactDetails) (Message, Message, error) {
	data := templateData{ContactDetails: d, Hotel: hotelName, Year: time.Now().Year()}

	adminBody, err := render(contactAdminTemplate, data)
	if err != nil {
		return Message{}, Message{}, err
	}
	replyBody, err := render(contactReplyTemplate, data)
	if err != nil {
		return Message{}, Message{}, err
	}

	admin := Message{
		To:      inbox,
		ReplyTo: d.Email,
		Subject: fmt.Sprintf("New Contact Form Submission: %s", d.Subject),
		HTML:    adminBody,
	}
	reply := Message{
		To:      d.Email,
		Subject: fmt.Sprintf("Thank you for contacting %s", hotelName),
		HTML:    replyBody,
	}
	return admin, reply, nil
}

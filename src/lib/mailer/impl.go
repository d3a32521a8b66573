package mailer

import (
	"fmt"
	"os"
	"venuebook/src/lib"
	"venuebook/src/models"
)

// SendBookingConfirmation mails the customer after a payment reconciles.
// Best effort: a mail failure never rolls back the reconciled state.
func SendBookingConfirmation(booking *models.Booking) error {
	if booking.CustomerEmail == "" {
		return fmt.Errorf("booking %d has no customer email", booking.ID)
	}
	venueName := ""
	if booking.Venue != nil {
		venueName = booking.Venue.Name
	}
	from := os.Getenv("MAIL_FROM")
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking at %s on %s for %d guests is confirmed. We received your payment.\n\nSee you soon!",
		booking.CustomerName,
		venueName,
		booking.Date.Format("Mon, 02 Jan 2006 15:04"),
		booking.PartySize,
	)
	return lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: venueName,
		To:       []string{booking.CustomerEmail},
		Subject:  fmt.Sprintf("Booking confirmed: %s", venueName),
		Body:     body,
	})
}

package mailer

import (
	"fmt"
	"log"
	"os"
	"tbs/src/lib"
	"tbs/src/utils"
)

// SendBookingConfirmation mails the traveler their reservation code.
// Best-effort: runs in its own goroutine and only logs failures.
func SendBookingConfirmation(to string, bookingRef string, totalFare float64, currency string) {
	go func() {
		from := os.Getenv("SMTP_FROM")
		if from == "" || to == "" {
			return
		}
		body := fmt.Sprintf(`
		<p>Your flight booking is confirmed.</p>
		<p>Booking reference: <strong>%s</strong></p>
		<p>Total fare: %s</p>
		`, bookingRef, utils.FormatCurrency(totalFare, currency))
		if err := lib.SendMail(&lib.SendMailInput{
			From:     from,
			FromName: "Bookings",
			To:       []string{to},
			Subject:  fmt.Sprintf("Booking confirmed - %s", bookingRef),
			Body:     body,
			Html:     true,
		}); err != nil {
			log.Printf("Could not send confirmation email for [%s]: %s\n", bookingRef, err.Error())
		}
	}()
}

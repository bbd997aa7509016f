package email

import (
	"context"
	"fmt"

	"github.com/melnyk-o/airport-api/internal/kafka"
	"github.com/skip2/go-qrcode"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send renders a boarding-pass QR code for every ticket of the order and
// delivers the confirmation. Delivery itself is a stdout stub.
func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	for _, t := range event.Tickets {
		payload := fmt.Sprintf("%s|%d|%d|%d", event.Number, t.FlightID, t.Row, t.Seat)
		png, err := qrcode.Encode(payload, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("render boarding pass: %w", err)
		}
		fmt.Printf("send email to %s: order %s, flight %d, row %d, seat %d (boarding pass %d bytes)\n",
			event.UserEmail, event.Number, t.FlightID, t.Row, t.Seat, len(png))
	}
	return nil
}

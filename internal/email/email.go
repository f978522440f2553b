package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/kafka"
	"go.uber.org/zap"
)

type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	s.logger.Info("send order notification",
		zap.Int64("user_id", event.UserID),
		zap.Int64("order_id", event.OrderID),
		zap.String("type", event.Type),
		zap.String("body", Body(event)),
	)
	return nil
}

// Body renders the notification text for an order event.
func Body(event kafka.OrderEvent) string {
	var b strings.Builder
	switch event.Type {
	case kafka.EventOrderCancelled:
		fmt.Fprintf(&b, "Order #%d was cancelled.", event.OrderID)
	default:
		fmt.Fprintf(&b, "Order #%d is confirmed.", event.OrderID)
	}
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "\n%s: row %d, seat %d", t.Route, t.Row, t.Seat)
	}
	return b.String()
}

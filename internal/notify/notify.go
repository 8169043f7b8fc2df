package notify

import (
	"context"
	"fmt"

	"github.com/utopia-air/flightnet/internal/kafka"
)

// Notifier forwards network events to the operations channel. The current
// implementation just prints; the interface is what the worker depends on.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.NetworkEvent) error {
	removed := event.DeletedAirports + event.DeletedTypes + event.DeletedAirplanes + event.DeletedRoutes + event.DeletedFlights
	if removed > 0 {
		fmt.Printf("network %s: %s %s removed %d records\n", event.Type, event.Entity, event.Key, removed)
		return nil
	}
	fmt.Printf("network %s: %s %s\n", event.Type, event.Entity, event.Key)
	return nil
}

package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
)

var ErrUnsupportedType = errors.New("no notifier registered for alert type")

// Notifier delivers one alert notification. Implementations bound their own
// outbound time and never retry.
type Notifier interface {
	Notify(ctx context.Context, n alert.Notification) error
}

// Registry picks the notifier matching a rule's alert type.
type Registry map[alert.Type]Notifier

func (r Registry) Notify(ctx context.Context, n alert.Notification) error {
	impl, ok := r[n.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, n.Type)
	}
	return impl.Notify(ctx, n)
}

func summary(n alert.Notification) string {
	return fmt.Sprintf("%d AI bot requests detected in the last %s (threshold %d)",
		n.Count, n.Window, n.Threshold)
}

package services

import (
	"context"
	"log/slog"
	"time"

	"bookit/utils"

	pubnub "github.com/pubnub/go"
)

// AvailabilityNotifier fans out slot capacity changes to subscribed clients
// so experience pages can refresh remaining counts without polling. Publishes
// are best effort and sit behind a circuit breaker: a PubNub outage must
// never fail a booking.
type AvailabilityNotifier struct {
	pn      *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewAvailabilityNotifier(pn *pubnub.PubNub) *AvailabilityNotifier {
	return &AvailabilityNotifier{
		pn:      pn,
		breaker: utils.NewCircuitBreaker("pubnub"),
	}
}

func (n *AvailabilityNotifier) PublishAvailability(ctx context.Context, experienceID, slotID string, remaining int) {
	if n == nil || n.pn == nil {
		return
	}

	err := n.breaker.Do(func() error {
		_, _, err := n.pn.Publish().
			Channel("availability." + experienceID).
			Message(map[string]any{
				"slot_id":    slotID,
				"remaining":  remaining,
				"updated_at": time.Now().UTC().Format(time.RFC3339),
			}).
			Execute()
		return err
	})
	if err != nil {
		slog.Warn("availability publish skipped",
			"experience_id", experienceID,
			"slot_id", slotID,
			"error", err,
		)
	}
}

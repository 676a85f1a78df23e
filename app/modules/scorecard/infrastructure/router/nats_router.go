package scorecardrouter

import (
	"errors"

	scorecardhandlers "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/handlers"
	"github.com/nats-io/nats.go"
)

// DefaultQueueGroup load-balances compute requests across service instances.
const DefaultQueueGroup = "bowl-bot"

// RequestRouter manages the NATS request/reply subscriptions of the scorecard module.
type RequestRouter struct {
	handlers   scorecardhandlers.Handlers
	nc         *nats.Conn
	computeSub *nats.Subscription
}

// NewRequestRouter creates a RequestRouter.
func NewRequestRouter(handlers scorecardhandlers.Handlers, nc *nats.Conn) *RequestRouter {
	return &RequestRouter{
		handlers: handlers,
		nc:       nc,
	}
}

// Start subscribes to the compute subject with a queue group.
func (r *RequestRouter) Start(subject, queueGroup string) error {
	if r.nc == nil {
		return errors.New("no NATS connection")
	}
	if queueGroup == "" {
		queueGroup = DefaultQueueGroup
	}

	var err error
	r.computeSub, err = r.nc.QueueSubscribe(subject, queueGroup, r.handlers.HandleComputeRequest)
	return err
}

// Stop drains the subscription so in flight requests are still answered.
func (r *RequestRouter) Stop() error {
	if r.computeSub == nil {
		return nil
	}
	err := r.computeSub.Drain()
	r.computeSub = nil
	return err
}

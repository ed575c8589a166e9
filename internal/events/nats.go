package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"legalease/internal/retry"
)

const connectAttempts = 3

// Connect dials the NATS server with a few retries before giving up.
func Connect(url string, log *slog.Logger) (*nats.Conn, error) {
	var nc *nats.Conn
	var err error
	for attempt := 0; attempt < connectAttempts; attempt++ {
		nc, err = nats.Connect(url)
		if err == nil {
			return nc, nil
		}
		wait := retry.ExponentialBackoff(attempt, time.Second)
		log.Warn("failed to connect to nats, retrying", "attempt", attempt+1, "wait", wait, "err", err)
		time.Sleep(wait)
	}
	return nil, err
}

// NewNATS constructs a publisher over an established NATS connection.
func NewNATS(nc *nats.Conn) Publisher {
	return &natsPublisher{nc: nc}
}

type natsPublisher struct {
	nc *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish("session."+event.Slot, body)
}

func (p *natsPublisher) Close() {
	p.nc.Close()
}

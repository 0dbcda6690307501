package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
	"trip-planner-service/internal/ports"

	"github.com/nats-io/nats.go"
)

const DefaultSubject = "trips.planned"

// NATSPublisher publishes trip events as JSON on a single subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	nc, err := nats.Connect(url,
		nats.Name("trip-planner-service"),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats disconnected err=%v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("nats reconnected url=%s", c.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %q: %w", url, err)
	}

	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) PublishTripPlanned(ctx context.Context, ev ports.TripPlannedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := encodeEvent(ev)
	if err != nil {
		return err
	}

	if err := p.nc.Publish(p.subject, b); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		drain(p.nc, p.subject)
	}
}

type drainer interface {
	Drain() error
}

func drain(c drainer, subject string) {
	if err := c.Drain(); err != nil {
		log.Printf("nats drain failed subject=%s err=%v", subject, err)
	}
}

func encodeEvent(ev ports.TripPlannedEvent) ([]byte, error) {
	if ev.Violations == nil {
		ev.Violations = []string{}
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal trip event: %w", err)
	}
	return b, nil
}

// NopPublisher drops every event. Used when NATS_URL is empty.
type NopPublisher struct{}

func (NopPublisher) PublishTripPlanned(context.Context, ports.TripPlannedEvent) error { return nil }

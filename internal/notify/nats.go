// Package notify carries match events to an external broker for consumers
// that live outside this process (settlement workers, analytics).
package notify

import (
	"encoding/json"

	"cardclash/internal/arena"
	"cardclash/internal/domain"
	"cardclash/internal/logger"

	"github.com/nats-io/nats.go"
)

// NatsNotifier publishes match snapshots on match.<event> subjects.
// Publishing is fire-and-forget; broker trouble never blocks resolution.
type NatsNotifier struct {
	nc *nats.Conn
}

// Connect dials the broker. Returns nil without error when url is empty so
// callers can treat the broker as optional.
func Connect(url string) (*NatsNotifier, error) {
	if url == "" {
		return nil, nil
	}
	nc, err := nats.Connect(url,
		nats.Name("cardclash"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("nats connected", "url", url)
	return &NatsNotifier{nc: nc}, nil
}

func (n *NatsNotifier) Publish(event arena.Event, m *domain.Match) {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Error("nats marshal failed", "match", m.ID, "error", err)
		return
	}
	if err := n.nc.Publish("match."+string(event), data); err != nil {
		logger.Warn("nats publish failed", "match", m.ID, "event", string(event), "error", err)
	}
}

// Close drains the connection.
func (n *NatsNotifier) Close() {
	if n != nil && n.nc != nil {
		n.nc.Close()
	}
}

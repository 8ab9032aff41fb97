// Package notify defines the achievement-notification delivery contract.
// The core hands finished notifications to a Notifier; actual platform
// scheduling, permissions, and display live behind that interface and are
// out of scope here.
package notify

import "sync"

// IdentifierPrefix namespaces achievement notification identifiers so a
// delivery layer can route or deduplicate them.
const IdentifierPrefix = "achievement."

// Identifier builds the delivery identifier for an achievement ID.
func Identifier(achievementID string) string {
	return IdentifierPrefix + achievementID
}

// Notifier delivers a single user-facing notification. A delivery that
// refers to state that has since been reset is simply dropped by the
// receiver; Deliver never blocks on user interaction.
type Notifier interface {
	Deliver(title, body, identifier string) error
}

// Nop is the default Notifier: it discards everything. Used when
// notifications are disabled or no delivery layer is wired.
type Nop struct{}

func (Nop) Deliver(title, body, identifier string) error { return nil }

// Delivery is one recorded notification.
type Delivery struct {
	Title      string
	Body       string
	Identifier string
}

// Recorder is a Notifier that remembers every delivery. Used by tests and
// by any surface that wants to replay recent notifications.
type Recorder struct {
	mu         sync.Mutex
	deliveries []Delivery
}

func (r *Recorder) Deliver(title, body, identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{Title: title, Body: body, Identifier: identifier})
	return nil
}

// Deliveries returns a copy of everything delivered so far.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

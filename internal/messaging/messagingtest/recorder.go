// Package messagingtest provides an in-memory Messenger for tests.
package messagingtest

import (
	"sync"

	"github.com/osse101/realmkeeper/internal/messaging"
)

// Delivery is one recorded message
type Delivery struct {
	To        string
	Broadcast bool
	Message   messaging.Message
}

// Recorder records every message it is asked to deliver
type Recorder struct {
	mu         sync.Mutex
	deliveries []Delivery
}

func (r *Recorder) ToPlayer(playerID string, msg messaging.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{To: playerID, Message: msg})
}

func (r *Recorder) Broadcast(sourceID string, msg messaging.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{To: sourceID, Broadcast: true, Message: msg})
}

// All returns every delivery in order
func (r *Recorder) All() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

// To returns the messages sent directly to playerID
func (r *Recorder) To(playerID string) []messaging.Message {
	var out []messaging.Message
	for _, d := range r.All() {
		if !d.Broadcast && d.To == playerID {
			out = append(out, d.Message)
		}
	}
	return out
}

// Broadcasts returns the messages broadcast around sourceID
func (r *Recorder) Broadcasts(sourceID string) []messaging.Message {
	var out []messaging.Message
	for _, d := range r.All() {
		if d.Broadcast && d.To == sourceID {
			out = append(out, d.Message)
		}
	}
	return out
}

// OfType filters msgs by opcode
func OfType(msgs []messaging.Message, t messaging.Type) []messaging.Message {
	var out []messaging.Message
	for _, m := range msgs {
		if m.Type() == t {
			out = append(out, m)
		}
	}
	return out
}

// Reset forgets all deliveries
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}

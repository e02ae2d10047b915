package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	hub := NewHub()
	a := hub.Register("client-a")
	b := hub.Register("client-b")
	defer hub.Unregister("client-a")
	defer hub.Unregister("client-b")

	hub.Broadcast(StoreEvent{Event: EventSessionSignedIn, UserID: "u1", Email: "a@b.fi"})

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.Events:
			var ev StoreEvent
			require.NoError(t, json.Unmarshal(data, &ev))
			assert.Equal(t, EventSessionSignedIn, ev.Event)
			assert.Equal(t, "u1", ev.UserID)
			assert.False(t, ev.Timestamp.IsZero())
		default:
			t.Fatalf("client %s received nothing", c.ID)
		}
	}
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	c := hub.Register("slow")
	defer hub.Unregister("slow")

	// Overfill the buffer; extra events are dropped, never blocking.
	for i := 0; i < 200; i++ {
		hub.Broadcast(StoreEvent{Event: EventOrderPlaced, OrderID: "o1"})
	}
	assert.Equal(t, 64, len(c.Events))
}

func TestUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	c := hub.Register("gone")
	hub.Unregister("gone")

	_, open := <-c.Events
	assert.False(t, open)

	// Unregistering twice is harmless.
	hub.Unregister("gone")
}

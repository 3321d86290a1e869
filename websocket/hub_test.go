package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Hub:    hub,
		Send:   make(chan Event, 8),
	}
	hub.register <- client

	require.Eventually(t, func() bool { return hub.GetClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	applicationID := uuid.New()
	hub.Notify(EventPaymentVerified, applicationID, map[string]string{"status": "PAYMENT_VERIFIED"})

	select {
	case event := <-client.Send:
		require.Equal(t, EventPaymentVerified, event.Type)
		require.Equal(t, applicationID, event.ApplicationID)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event was never delivered")
	}

	hub.unregister <- client
	require.Eventually(t, func() bool { return hub.GetClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestNotifyWithoutRunningHubDoesNotBlock(t *testing.T) {
	hub := NewHub()

	// Fill the buffered channel past capacity; Notify must drop, not hang.
	for i := 0; i < 200; i++ {
		hub.Notify(EventApplicationSubmitted, uuid.New(), nil)
	}
}

package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-renamer-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{hub: hub, userID: userID, send: make(chan []byte, buffer)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.Connected(userID) > 0 }, time.Second, 5*time.Millisecond)
	return c
}

func TestHub_SendReachesEveryDeviceOfUser(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	phone := connect(t, hub, alice, 4)
	laptop := connect(t, hub, alice, 4)
	other := connect(t, hub, bob, 4)
	require.Eventually(t, func() bool { return hub.Connected(alice) == 2 }, time.Second, 5*time.Millisecond)

	hub.Send(alice, TypeNotification, map[string]string{"message": "Filename updated"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.send:
			var msg struct {
				Type string            `json:"type"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, TypeNotification, msg.Type)
			assert.Equal(t, "Filename updated", msg.Data["message"])
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
	assert.Empty(t, other.send)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	c := connect(t, hub, userID, 1)

	hub.Send(userID, TypeEvent, 1)
	hub.Send(userID, TypeEvent, 2) // buffer full

	require.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
	<-c.send
	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_UnregisterUnknownClientIsHarmless(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	c := connect(t, hub, userID, 1)

	hub.unregister <- c
	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
}

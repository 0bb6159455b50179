package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

func TestHub_RegisterClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		ID:         "client-1",
		UserID:     uuid.New(),
		UserName:   "Test User",
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}

	hub.Register(client)

	// Wait for registration to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	_, exists := hub.clients[client.ID]
	hub.mu.RUnlock()

	assert.True(t, exists)
}

func TestHub_UnregisterClient_ClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		ID:         "client-1",
		UserID:     uuid.New(),
		UserName:   "Test User",
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}

	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	_, exists := hub.clients[client.ID]
	hub.mu.RUnlock()
	assert.False(t, exists)

	// Send channel should be closed
	_, ok := <-client.Send
	assert.False(t, ok)
}

func TestHub_SubscribeToWorkspace(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		ID:         "client-1",
		UserID:     uuid.New(),
		UserName:   "Test User",
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}
	workspaceID := uuid.New()

	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.SubscribeToWorkspace(client.ID, workspaceID)

	hub.mu.RLock()
	isSubscribed := client.Workspaces[workspaceID]
	hub.mu.RUnlock()

	assert.True(t, isSubscribed)

	// Drain presence update
	drainChannel(client.Send, 100*time.Millisecond)
}

func TestHub_UnsubscribeFromWorkspace(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	workspaceID := uuid.New()
	client := &Client{
		ID:         "client-1",
		UserID:     uuid.New(),
		UserName:   "Test User",
		Workspaces: map[uuid.UUID]bool{workspaceID: true},
		Send:       make(chan []byte, 256),
	}

	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.UnsubscribeFromWorkspace(client.ID, workspaceID)

	hub.mu.RLock()
	isSubscribed := client.Workspaces[workspaceID]
	hub.mu.RUnlock()

	assert.False(t, isSubscribed)
}

func TestHub_PresenceUpdate_OnSubscribe(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	workspaceID := uuid.New()
	userID := uuid.New()
	picture := "https://example.com/pic.jpg"

	client := &Client{
		ID:         "client-1",
		UserID:     userID,
		UserName:   "Test User",
		Picture:    &picture,
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}

	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.SubscribeToWorkspace(client.ID, workspaceID)

	select {
	case msg := <-client.Send:
		var event Event
		err := json.Unmarshal(msg, &event)
		require.NoError(t, err)

		assert.Equal(t, "presence_update", event.Type)
		assert.Equal(t, workspaceID, *event.WorkspaceID)

		dataBytes, _ := json.Marshal(event.Data)
		var presenceData PresenceUpdateData
		err = json.Unmarshal(dataBytes, &presenceData)
		require.NoError(t, err)

		assert.Len(t, presenceData.OnlineMembers, 1)
		assert.Equal(t, userID, presenceData.OnlineMembers[0].UserID)
		assert.Equal(t, "Test User", presenceData.OnlineMembers[0].UserName)
		assert.Equal(t, &picture, presenceData.OnlineMembers[0].Picture)

	case <-time.After(100 * time.Millisecond):
		t.Fatal("did not receive presence update")
	}
}

func TestHub_PresenceUpdate_DeduplicatesByUserID(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	workspaceID := uuid.New()
	userID := uuid.New()

	// Two clients with same UserID (e.g., multiple browser tabs)
	client1 := &Client{
		ID:         "client-1",
		UserID:     userID,
		UserName:   "Test User",
		Workspaces: map[uuid.UUID]bool{workspaceID: true},
		Send:       make(chan []byte, 256),
	}
	client2 := &Client{
		ID:         "client-2",
		UserID:     userID,
		UserName:   "Test User",
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}

	hub.Register(client1)
	hub.Register(client2)
	time.Sleep(10 * time.Millisecond)

	hub.SubscribeToWorkspace(client2.ID, workspaceID)

	// Client1 should get the presence update
	select {
	case msg := <-client1.Send:
		var event Event
		err := json.Unmarshal(msg, &event)
		require.NoError(t, err)

		assert.Equal(t, "presence_update", event.Type)

		dataBytes, _ := json.Marshal(event.Data)
		var presenceData PresenceUpdateData
		err = json.Unmarshal(dataBytes, &presenceData)
		require.NoError(t, err)

		// Should be deduplicated to 1 user
		assert.Len(t, presenceData.OnlineMembers, 1)
		assert.Equal(t, userID, presenceData.OnlineMembers[0].UserID)

	case <-time.After(100 * time.Millisecond):
		t.Fatal("did not receive presence update")
	}
}

func TestHub_PresenceUpdate_OnUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	workspaceID := uuid.New()

	client1 := &Client{
		ID:         "client-1",
		UserID:     uuid.New(),
		UserName:   "User 1",
		Workspaces: map[uuid.UUID]bool{workspaceID: true},
		Send:       make(chan []byte, 256),
	}
	client2 := &Client{
		ID:         "client-2",
		UserID:     uuid.New(),
		UserName:   "User 2",
		Workspaces: map[uuid.UUID]bool{workspaceID: true},
		Send:       make(chan []byte, 256),
	}

	hub.Register(client1)
	hub.Register(client2)
	time.Sleep(10 * time.Millisecond)

	// Unregister client2, client1 should get presence update
	hub.Unregister(client2)

	select {
	case msg := <-client1.Send:
		var event Event
		err := json.Unmarshal(msg, &event)
		require.NoError(t, err)

		assert.Equal(t, "presence_update", event.Type)

		dataBytes, _ := json.Marshal(event.Data)
		var presenceData PresenceUpdateData
		err = json.Unmarshal(dataBytes, &presenceData)
		require.NoError(t, err)

		// Only client1's user should remain
		assert.Len(t, presenceData.OnlineMembers, 1)
		assert.Equal(t, client1.UserID, presenceData.OnlineMembers[0].UserID)

	case <-time.After(100 * time.Millisecond):
		t.Fatal("did not receive presence update after unregister")
	}
}

func TestHub_OnlineMembers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	workspaceID := uuid.New()

	client1 := &Client{
		ID:         "client-1",
		UserID:     uuid.New(),
		UserName:   "User 1",
		Workspaces: map[uuid.UUID]bool{workspaceID: true},
		Send:       make(chan []byte, 256),
	}
	client2 := &Client{
		ID:         "client-2",
		UserID:     uuid.New(),
		UserName:   "User 2",
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}

	hub.Register(client1)
	hub.Register(client2)
	time.Sleep(10 * time.Millisecond)

	members := hub.OnlineMembers(workspaceID)

	require.Len(t, members, 1)
	assert.Equal(t, client1.UserID, members[0].UserID)
	assert.Equal(t, "User 1", members[0].UserName)
}

func TestHub_SubscribeToWorkspace_NonexistentClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	// Should not panic when client doesn't exist
	hub.SubscribeToWorkspace("nonexistent", uuid.New())
	hub.UnsubscribeFromWorkspace("nonexistent", uuid.New())
}

func TestHub_UnregisterNonexistentClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		ID:         "nonexistent",
		UserID:     uuid.New(),
		UserName:   "Test User",
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 256),
	}

	// Should not panic
	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)
}

// drainChannel drains all messages from a channel within a timeout.
func drainChannel(ch chan []byte, timeout time.Duration) {
	for {
		select {
		case <-ch:
		case <-time.After(timeout):
			return
		}
	}
}

// Package hub tracks which band members currently hold a live websocket
// connection, so rehearsal views can show who else is online.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type Event struct {
	Type        string      `json:"type"`
	WorkspaceID *uuid.UUID  `json:"workspace_id,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

type OnlineMember struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	Picture  *string   `json:"picture,omitempty"`
}

type PresenceUpdateData struct {
	OnlineMembers []OnlineMember `json:"online_members"`
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	UserName   string
	Picture    *string
	Workspaces map[uuid.UUID]bool
	Send       chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				workspaces := make([]uuid.UUID, 0, len(client.Workspaces))
				for wsID := range client.Workspaces {
					workspaces = append(workspaces, wsID)
				}
				delete(h.clients, client.ID)
				close(client.Send)
				h.mu.Unlock()

				for _, wsID := range workspaces {
					h.broadcastPresence(wsID)
				}
			} else {
				h.mu.Unlock()
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) SubscribeToWorkspace(clientID string, workspaceID uuid.UUID) {
	h.mu.Lock()
	if client, ok := h.clients[clientID]; ok {
		client.Workspaces[workspaceID] = true
	}
	h.mu.Unlock()

	h.broadcastPresence(workspaceID)
}

func (h *Hub) UnsubscribeFromWorkspace(clientID string, workspaceID uuid.UUID) {
	h.mu.Lock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Workspaces, workspaceID)
	}
	h.mu.Unlock()

	h.broadcastPresence(workspaceID)
}

// OnlineMembers returns the distinct users currently connected to a
// workspace.
func (h *Hub) OnlineMembers(workspaceID uuid.UUID) []OnlineMember {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.onlineMembersLocked(workspaceID)
}

func (h *Hub) onlineMembersLocked(workspaceID uuid.UUID) []OnlineMember {
	seen := make(map[uuid.UUID]bool)
	members := []OnlineMember{}
	for _, client := range h.clients {
		if client.Workspaces[workspaceID] && !seen[client.UserID] {
			seen[client.UserID] = true
			members = append(members, OnlineMember{
				UserID:   client.UserID,
				UserName: client.UserName,
				Picture:  client.Picture,
			})
		}
	}
	return members
}

// broadcastPresence pushes the current online roster to every connection
// subscribed to the workspace.
func (h *Hub) broadcastPresence(workspaceID uuid.UUID) {
	h.mu.RLock()
	members := h.onlineMembersLocked(workspaceID)

	event := Event{
		Type:        "presence_update",
		WorkspaceID: &workspaceID,
		Data: PresenceUpdateData{
			OnlineMembers: members,
		},
	}

	data, _ := json.Marshal(event)

	for _, client := range h.clients {
		if client.Workspaces[workspaceID] {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
	h.mu.RUnlock()
}

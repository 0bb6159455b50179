package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/models"
)

// Event types delivered to live-sync subscribers. Saved events carry the
// full entity so clients can refresh their local snapshot without a
// round-trip; deleted events carry only the id.
const (
	EventSongSaved        = "song_saved"
	EventSongDeleted      = "song_deleted"
	EventSetlistSaved     = "setlist_saved"
	EventSetlistDeleted   = "setlist_deleted"
	EventRehearsalSaved   = "rehearsal_saved"
	EventRehearsalDeleted = "rehearsal_deleted"
	EventMemberJoined     = "member_joined"
)

type Event struct {
	Type        string      `json:"type"`
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	Data        interface{} `json:"data,omitempty"`
}

type EntityDeletedData struct {
	ID        uuid.UUID `json:"id"`
	DeletedBy uuid.UUID `json:"deleted_by"`
}

type MemberJoinedData struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	Picture  *string   `json:"picture,omitempty"`
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	Workspaces map[uuid.UUID]bool
	Send       chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *WorkspaceMessage
	mu         sync.RWMutex
}

type WorkspaceMessage struct {
	WorkspaceID uuid.UUID
	Event       Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *WorkspaceMessage, 256),
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
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.Workspaces[msg.WorkspaceID] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SubscribeToWorkspace retargets a live connection when the client's active
// workspace changes; paired with UnsubscribeFromWorkspace so a stale
// subscription never delivers into the new workspace's state.
func (h *Hub) SubscribeToWorkspace(clientID string, workspaceID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		client.Workspaces[workspaceID] = true
	}
}

func (h *Hub) UnsubscribeFromWorkspace(clientID string, workspaceID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Workspaces, workspaceID)
	}
}

func (h *Hub) BroadcastSongSaved(workspaceID uuid.UUID, song *models.Song) {
	h.emit(workspaceID, EventSongSaved, song)
}

func (h *Hub) BroadcastSongDeleted(workspaceID, songID, deletedBy uuid.UUID) {
	h.emit(workspaceID, EventSongDeleted, EntityDeletedData{ID: songID, DeletedBy: deletedBy})
}

func (h *Hub) BroadcastSetlistSaved(workspaceID uuid.UUID, setlist *models.Setlist) {
	h.emit(workspaceID, EventSetlistSaved, setlist)
}

func (h *Hub) BroadcastSetlistDeleted(workspaceID, setlistID, deletedBy uuid.UUID) {
	h.emit(workspaceID, EventSetlistDeleted, EntityDeletedData{ID: setlistID, DeletedBy: deletedBy})
}

func (h *Hub) BroadcastRehearsalSaved(workspaceID uuid.UUID, rehearsal *models.Rehearsal) {
	h.emit(workspaceID, EventRehearsalSaved, rehearsal)
}

func (h *Hub) BroadcastRehearsalDeleted(workspaceID, rehearsalID, deletedBy uuid.UUID) {
	h.emit(workspaceID, EventRehearsalDeleted, EntityDeletedData{ID: rehearsalID, DeletedBy: deletedBy})
}

func (h *Hub) BroadcastMemberJoined(workspaceID, userID uuid.UUID, userName string, picture *string) {
	h.emit(workspaceID, EventMemberJoined, MemberJoinedData{UserID: userID, UserName: userName, Picture: picture})
}

func (h *Hub) emit(workspaceID uuid.UUID, eventType string, data interface{}) {
	h.broadcast <- &WorkspaceMessage{
		WorkspaceID: workspaceID,
		Event: Event{
			Type:        eventType,
			WorkspaceID: workspaceID,
			Data:        data,
		},
	}
}

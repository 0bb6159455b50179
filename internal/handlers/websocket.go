package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/websocket"
	"github.com/verso-app/verso-api/internal/hub"
	"github.com/verso-app/verso-api/internal/middleware"
)

// WebSocketHandler runs the presence channel: connected clients subscribe to
// workspaces and receive presence_update rosters as members come and go.
type WebSocketHandler struct {
	hub              *hub.Hub
	userService      UserServiceInterface
	workspaceService WorkspaceServiceInterface
}

func NewWebSocketHandler(presenceHub *hub.Hub, userService UserServiceInterface, workspaceService WorkspaceServiceInterface) *WebSocketHandler {
	return &WebSocketHandler{
		hub:              presenceHub,
		userService:      userService,
		workspaceService: workspaceService,
	}
}

type presenceCommand struct {
	Action      string    `json:"action"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

func (h *WebSocketHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	conn, err := websocket.Upgrade(c)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(websocket.CloseNormalClosure, ""); err != nil {
			log.Printf("WebSocket close error: %v", err)
		}
	}()

	clientID := uuid.New().String()
	client := &hub.Client{
		ID:         clientID,
		UserID:     user.ID,
		UserName:   user.Name,
		Picture:    user.Picture,
		Workspaces: make(map[uuid.UUID]bool),
		Send:       make(chan []byte, 64),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := conn.WriteJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.Send {
			if err := conn.WriteText(string(msg)); err != nil {
				return
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var cmd presenceCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}

		switch cmd.Action {
		case "subscribe":
			canAccess, err := h.workspaceService.CanAccess(context.Background(), cmd.WorkspaceID, userID)
			if err != nil || !canAccess {
				continue
			}
			h.hub.SubscribeToWorkspace(clientID, cmd.WorkspaceID)
		case "unsubscribe":
			h.hub.UnsubscribeFromWorkspace(clientID, cmd.WorkspaceID)
		}

		select {
		case <-done:
			return
		default:
		}
	}
}

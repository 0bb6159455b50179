package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/pkg/dto"
)

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	userService      UserServiceInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, userService UserServiceInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		userService:      userService,
	}
}

// List returns the caller's personal workspace first, then their bands.
func (h *WorkspaceHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	workspaces, err := h.workspaceService.List(ctx, user)
	if err != nil {
		c.InternalServerError("failed to get workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, len(workspaces))
	for i, ws := range workspaces {
		response[i] = dto.WorkspaceResponse{
			ID:       ws.ID,
			Name:     ws.Name,
			Personal: ws.Personal,
			Role:     ws.Role,
		}
	}

	_ = c.JSON(200, response)
}

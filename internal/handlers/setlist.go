package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/pkg/dto"
)

type SetlistHandler struct {
	setlistService   SetlistServiceInterface
	workspaceService WorkspaceServiceInterface
	hub              SyncHubInterface
}

func NewSetlistHandler(setlistService SetlistServiceInterface, workspaceService WorkspaceServiceInterface, hub SyncHubInterface) *SetlistHandler {
	return &SetlistHandler{
		setlistService:   setlistService,
		workspaceService: workspaceService,
		hub:              hub,
	}
}

func (h *SetlistHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	canAccess, err := h.workspaceService.CanAccess(ctx, workspaceID, userID)
	if err != nil || !canAccess {
		c.NotFound("workspace not found")
		return
	}

	setlists, err := h.setlistService.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get setlists")
		return
	}

	if setlists == nil {
		setlists = []models.Setlist{}
	}
	_ = c.JSON(200, setlists)
}

func (h *SetlistHandler) Save(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	setlistID, err := uuid.Parse(c.Param("setlistId"))
	if err != nil {
		c.BadRequest("invalid setlist id")
		return
	}

	ctx := context.Background()

	canAccess, err := h.workspaceService.CanAccess(ctx, workspaceID, userID)
	if err != nil || !canAccess {
		c.NotFound("workspace not found")
		return
	}

	canModify, err := h.workspaceService.CanModify(ctx, workspaceID, userID)
	if err != nil || !canModify {
		c.Forbidden("workspace is read-only")
		return
	}

	var req dto.SaveSetlistRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	setlist := &models.Setlist{
		ID:          setlistID,
		Title:       req.Title,
		Description: req.Description,
		Songs:       req.Songs,
		OwnerID:     userID,
		WorkspaceID: sharedWorkspaceID(workspaceID, userID),
	}

	saved, err := h.setlistService.Save(ctx, setlist)
	if err != nil {
		c.InternalServerError("failed to save setlist")
		return
	}

	h.hub.BroadcastSetlistSaved(workspaceID, saved)

	_ = c.JSON(200, saved)
}

func (h *SetlistHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	setlistID, err := uuid.Parse(c.Param("setlistId"))
	if err != nil {
		c.BadRequest("invalid setlist id")
		return
	}

	ctx := context.Background()

	canAccess, err := h.workspaceService.CanAccess(ctx, workspaceID, userID)
	if err != nil || !canAccess {
		c.NotFound("workspace not found")
		return
	}

	setlist, err := h.setlistService.GetByID(ctx, setlistID)
	if err != nil || !setlistInWorkspace(setlist, workspaceID) {
		c.NotFound("setlist not found")
		return
	}

	_ = c.JSON(200, setlist)
}

// Delete removes the setlist only; referenced songs survive.
func (h *SetlistHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	setlistID, err := uuid.Parse(c.Param("setlistId"))
	if err != nil {
		c.BadRequest("invalid setlist id")
		return
	}

	ctx := context.Background()

	canModify, err := h.workspaceService.CanModify(ctx, workspaceID, userID)
	if err != nil || !canModify {
		c.Forbidden("workspace is read-only")
		return
	}

	setlist, err := h.setlistService.GetByID(ctx, setlistID)
	if err != nil || !setlistInWorkspace(setlist, workspaceID) {
		c.NotFound("setlist not found")
		return
	}

	if err := h.setlistService.Delete(ctx, setlistID); err != nil {
		c.InternalServerError("failed to delete setlist")
		return
	}

	h.hub.BroadcastSetlistDeleted(workspaceID, setlistID, userID)

	_ = c.JSON(200, map[string]string{"message": "setlist deleted"})
}

func setlistInWorkspace(setlist *models.Setlist, workspaceID uuid.UUID) bool {
	if setlist == nil {
		return false
	}
	return setlist.OwnerID == workspaceID || (setlist.WorkspaceID != nil && *setlist.WorkspaceID == workspaceID)
}

package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/pkg/dto"
)

type SongHandler struct {
	songService      SongServiceInterface
	workspaceService WorkspaceServiceInterface
	hub              SyncHubInterface
}

func NewSongHandler(songService SongServiceInterface, workspaceService WorkspaceServiceInterface, hub SyncHubInterface) *SongHandler {
	return &SongHandler{
		songService:      songService,
		workspaceService: workspaceService,
		hub:              hub,
	}
}

func (h *SongHandler) List(c *drift.Context) {
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

	songs, err := h.songService.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get songs")
		return
	}

	if songs == nil {
		songs = []models.Song{}
	}
	_ = c.JSON(200, songs)
}

// Save is the upsert behind both creating and editing a song. The song id
// comes from the URL so clients can generate ids offline.
func (h *SongHandler) Save(c *drift.Context) {
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

	songID, err := uuid.Parse(c.Param("songId"))
	if err != nil {
		c.BadRequest("invalid song id")
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

	var req dto.SaveSongRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	song := &models.Song{
		ID:          songID,
		Title:       req.Title,
		Artist:      req.Artist,
		Content:     req.Content,
		Key:         req.Key,
		OwnerID:     userID,
		WorkspaceID: sharedWorkspaceID(workspaceID, userID),
	}

	saved, err := h.songService.Save(ctx, song)
	if err != nil {
		c.InternalServerError("failed to save song")
		return
	}

	h.hub.BroadcastSongSaved(workspaceID, saved)

	_ = c.JSON(200, saved)
}

func (h *SongHandler) Get(c *drift.Context) {
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

	songID, err := uuid.Parse(c.Param("songId"))
	if err != nil {
		c.BadRequest("invalid song id")
		return
	}

	ctx := context.Background()

	canAccess, err := h.workspaceService.CanAccess(ctx, workspaceID, userID)
	if err != nil || !canAccess {
		c.NotFound("workspace not found")
		return
	}

	song, err := h.songService.GetByID(ctx, songID)
	if err != nil || !songInWorkspace(song, workspaceID) {
		c.NotFound("song not found")
		return
	}

	_ = c.JSON(200, song)
}

// Delete removes the song only; setlists that reference it keep the id and
// resolution filters it out.
func (h *SongHandler) Delete(c *drift.Context) {
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

	songID, err := uuid.Parse(c.Param("songId"))
	if err != nil {
		c.BadRequest("invalid song id")
		return
	}

	ctx := context.Background()

	canModify, err := h.workspaceService.CanModify(ctx, workspaceID, userID)
	if err != nil || !canModify {
		c.Forbidden("workspace is read-only")
		return
	}

	song, err := h.songService.GetByID(ctx, songID)
	if err != nil || !songInWorkspace(song, workspaceID) {
		c.NotFound("song not found")
		return
	}

	if err := h.songService.Delete(ctx, songID); err != nil {
		c.InternalServerError("failed to delete song")
		return
	}

	h.hub.BroadcastSongDeleted(workspaceID, songID, userID)

	_ = c.JSON(200, map[string]string{"message": "song deleted"})
}

// sharedWorkspaceID tags the entity with a band workspace; personal entities
// are scoped by owner_id alone.
func sharedWorkspaceID(workspaceID, userID uuid.UUID) *uuid.UUID {
	if workspaceID == userID {
		return nil
	}
	return &workspaceID
}

func songInWorkspace(song *models.Song, workspaceID uuid.UUID) bool {
	if song == nil {
		return false
	}
	return song.OwnerID == workspaceID || (song.WorkspaceID != nil && *song.WorkspaceID == workspaceID)
}

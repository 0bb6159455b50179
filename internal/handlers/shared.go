package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/pkg/dto"
)

// SharedHandler serves deep-linked reads: any authenticated user can view a
// rehearsal or setlist by id without workspace membership. Read-only by
// construction; nothing here mutates.
type SharedHandler struct {
	rehearsalService RehearsalServiceInterface
	setlistService   SetlistServiceInterface
	songService      SongServiceInterface
}

func NewSharedHandler(
	rehearsalService RehearsalServiceInterface,
	setlistService SetlistServiceInterface,
	songService SongServiceInterface,
) *SharedHandler {
	return &SharedHandler{
		rehearsalService: rehearsalService,
		setlistService:   setlistService,
		songService:      songService,
	}
}

func (h *SharedHandler) GetRehearsal(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	rehearsalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid rehearsal id")
		return
	}

	rehearsal, err := h.rehearsalService.GetByID(context.Background(), rehearsalID)
	if err != nil {
		c.NotFound("rehearsal not found")
		return
	}

	_ = c.JSON(200, rehearsal)
}

func (h *SharedHandler) GetSetlist(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	setlistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid setlist id")
		return
	}

	setlist, err := h.setlistService.GetByID(context.Background(), setlistID)
	if err != nil {
		c.NotFound("setlist not found")
		return
	}

	_ = c.JSON(200, setlist)
}

// GetSongs batch-fetches songs by id for shared setlist/rehearsal views.
// Unknown ids are silently absent from the result.
func (h *SharedHandler) GetSongs(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SharedSongsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	songs, err := h.songService.GetByIDs(context.Background(), req.IDs)
	if err != nil {
		c.InternalServerError("failed to get songs")
		return
	}

	if songs == nil {
		songs = []models.Song{}
	}
	_ = c.JSON(200, songs)
}

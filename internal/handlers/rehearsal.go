package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/services"
	"github.com/verso-app/verso-api/pkg/dto"
)

type RehearsalHandler struct {
	rehearsalService RehearsalServiceInterface
	workspaceService WorkspaceServiceInterface
	resolver         SetlistResolverInterface
	hub              SyncHubInterface
}

func NewRehearsalHandler(
	rehearsalService RehearsalServiceInterface,
	workspaceService WorkspaceServiceInterface,
	resolver SetlistResolverInterface,
	hub SyncHubInterface,
) *RehearsalHandler {
	return &RehearsalHandler{
		rehearsalService: rehearsalService,
		workspaceService: workspaceService,
		resolver:         resolver,
		hub:              hub,
	}
}

func (h *RehearsalHandler) List(c *drift.Context) {
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

	rehearsals, err := h.rehearsalService.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get rehearsals")
		return
	}

	if rehearsals == nil {
		rehearsals = []models.Rehearsal{}
	}
	_ = c.JSON(200, rehearsals)
}

// Create proposes a rehearsal with its first scheduling option; the proposer
// is counted as having voted for it.
func (h *RehearsalHandler) Create(c *drift.Context) {
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

	canModify, err := h.workspaceService.CanModify(ctx, workspaceID, userID)
	if err != nil || !canModify {
		c.Forbidden("workspace is read-only")
		return
	}

	var req dto.CreateRehearsalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	if req.Option.Date == "" {
		c.BadRequest("an initial option with a date is required")
		return
	}

	rehearsal, err := h.rehearsalService.Create(ctx, req.ID, req.Title, services.OptionInput{
		Date:     req.Option.Date,
		Time:     req.Option.Time,
		Location: req.Option.Location,
	}, userID, sharedWorkspaceID(workspaceID, userID))
	if err != nil {
		c.InternalServerError("failed to create rehearsal")
		return
	}

	h.hub.BroadcastRehearsalSaved(workspaceID, rehearsal)

	_ = c.JSON(201, rehearsal)
}

// Save handles title/setlist edits and setlist linking. Scheduling state
// never moves through here.
func (h *RehearsalHandler) Save(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, rehearsal, ok := h.scopedRehearsal(c, userID, true)
	if !ok {
		return
	}

	var req dto.SaveRehearsalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	rehearsal.Title = req.Title
	rehearsal.LinkedSetlistID = req.LinkedSetlistID
	rehearsal.Setlist = req.Setlist

	saved, err := h.rehearsalService.Save(context.Background(), rehearsal)
	if err != nil {
		if errors.Is(err, services.ErrRehearsalNotFound) {
			c.NotFound("rehearsal not found")
			return
		}
		c.InternalServerError("failed to save rehearsal")
		return
	}

	h.hub.BroadcastRehearsalSaved(workspaceID, saved)

	_ = c.JSON(200, saved)
}

func (h *RehearsalHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	_, rehearsal, ok := h.scopedRehearsal(c, userID, false)
	if !ok {
		return
	}

	_ = c.JSON(200, rehearsal)
}

func (h *RehearsalHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, rehearsal, ok := h.scopedRehearsal(c, userID, true)
	if !ok {
		return
	}

	if err := h.rehearsalService.Delete(context.Background(), rehearsal.ID); err != nil {
		c.InternalServerError("failed to delete rehearsal")
		return
	}

	h.hub.BroadcastRehearsalDeleted(workspaceID, rehearsal.ID, userID)

	_ = c.JSON(200, map[string]string{"message": "rehearsal deleted"})
}

// ProposeOption appends a date/time/location alternative; the proposer's
// vote is cast automatically.
func (h *RehearsalHandler) ProposeOption(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, rehearsal, ok := h.scopedRehearsal(c, userID, true)
	if !ok {
		return
	}

	var req dto.RehearsalOptionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Date == "" {
		c.BadRequest("date is required")
		return
	}

	updated, err := h.rehearsalService.ProposeOption(context.Background(), rehearsal.ID, services.OptionInput{
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
	}, userID)
	if err != nil {
		if errors.Is(err, services.ErrRehearsalNotFound) {
			c.NotFound("rehearsal not found")
			return
		}
		c.InternalServerError("failed to propose option")
		return
	}

	h.hub.BroadcastRehearsalSaved(workspaceID, updated)

	_ = c.JSON(200, updated)
}

// ToggleVote casts or withdraws the caller's vote on one option.
func (h *RehearsalHandler) ToggleVote(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, rehearsal, ok := h.scopedRehearsal(c, userID, true)
	if !ok {
		return
	}

	optionID, err := uuid.Parse(c.Param("optionId"))
	if err != nil {
		c.BadRequest("invalid option id")
		return
	}

	updated, err := h.rehearsalService.ToggleVote(context.Background(), rehearsal.ID, optionID, userID)
	if err != nil {
		if errors.Is(err, services.ErrRehearsalNotFound) {
			c.NotFound("rehearsal not found")
			return
		}
		if errors.Is(err, services.ErrOptionNotFound) {
			_ = c.JSON(422, map[string]any{
				"code":    "OPTION_NOT_FOUND",
				"message": "option does not exist on this rehearsal",
			})
			return
		}
		c.InternalServerError("failed to toggle vote")
		return
	}

	h.hub.BroadcastRehearsalSaved(workspaceID, updated)

	_ = c.JSON(200, updated)
}

// Confirm locks in a winning option. The transition is one-way; a second
// confirm attempt is a conflict.
func (h *RehearsalHandler) Confirm(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, rehearsal, ok := h.scopedRehearsal(c, userID, true)
	if !ok {
		return
	}

	var req dto.ConfirmRehearsalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.OptionID == uuid.Nil {
		c.BadRequest("option_id is required")
		return
	}

	updated, err := h.rehearsalService.Confirm(context.Background(), rehearsal.ID, req.OptionID)
	if err != nil {
		if errors.Is(err, services.ErrRehearsalNotFound) {
			c.NotFound("rehearsal not found")
			return
		}
		if errors.Is(err, services.ErrOptionNotFound) {
			_ = c.JSON(422, map[string]any{
				"code":    "OPTION_NOT_FOUND",
				"message": "confirmed option does not exist on this rehearsal",
			})
			return
		}
		if errors.Is(err, services.ErrAlreadyConfirmed) {
			_ = c.JSON(409, map[string]any{
				"code":    "ALREADY_CONFIRMED",
				"message": "rehearsal is already confirmed",
			})
			return
		}
		c.InternalServerError("failed to confirm rehearsal")
		return
	}

	h.hub.BroadcastRehearsalSaved(workspaceID, updated)

	_ = c.JSON(200, updated)
}

// ResolveSongs returns the ordered songs a rehearsal should display. Lookup
// is by rehearsal id alone so shared-link viewers resolve cross-workspace
// content.
func (h *RehearsalHandler) ResolveSongs(c *drift.Context) {
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

	ctx := context.Background()

	rehearsal, err := h.rehearsalService.GetByID(ctx, rehearsalID)
	if err != nil {
		c.NotFound("rehearsal not found")
		return
	}

	songs, err := h.resolver.ResolveSongs(ctx, rehearsal)
	if err != nil {
		c.InternalServerError("failed to resolve songs")
		return
	}

	_ = c.JSON(200, songs)
}

// scopedRehearsal parses workspace and rehearsal ids, checks workspace
// access (and write access when modify is set) and verifies the rehearsal
// belongs to the workspace. On failure it writes the response and returns
// ok=false.
func (h *RehearsalHandler) scopedRehearsal(c *drift.Context, userID uuid.UUID, modify bool) (uuid.UUID, *models.Rehearsal, bool) {
	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return uuid.Nil, nil, false
	}

	rehearsalID, err := uuid.Parse(c.Param("rehearsalId"))
	if err != nil {
		c.BadRequest("invalid rehearsal id")
		return uuid.Nil, nil, false
	}

	ctx := context.Background()

	canAccess, err := h.workspaceService.CanAccess(ctx, workspaceID, userID)
	if err != nil || !canAccess {
		c.NotFound("workspace not found")
		return uuid.Nil, nil, false
	}

	if modify {
		canModify, err := h.workspaceService.CanModify(ctx, workspaceID, userID)
		if err != nil || !canModify {
			c.Forbidden("workspace is read-only")
			return uuid.Nil, nil, false
		}
	}

	rehearsal, err := h.rehearsalService.GetByID(ctx, rehearsalID)
	if err != nil || !rehearsalInWorkspace(rehearsal, workspaceID) {
		c.NotFound("rehearsal not found")
		return uuid.Nil, nil, false
	}

	return workspaceID, rehearsal, true
}

func rehearsalInWorkspace(rehearsal *models.Rehearsal, workspaceID uuid.UUID) bool {
	if rehearsal == nil {
		return false
	}
	return rehearsal.CreatedBy == workspaceID || (rehearsal.WorkspaceID != nil && *rehearsal.WorkspaceID == workspaceID)
}

package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/gemini"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/pkg/dto"
)

type AIHandler struct {
	ai LyricsAIInterface
}

func NewAIHandler(ai LyricsAIInterface) *AIHandler {
	return &AIHandler{ai: ai}
}

// FormatSong cleans up pasted lyrics/chords. Fail-open: with no provider
// configured, or on provider error, the input comes back unchanged.
func (h *AIHandler) FormatSong(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.FormatSongRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Content == "" {
		c.BadRequest("content is required")
		return
	}

	formatted := h.ai.FormatSongContent(context.Background(), req.Content)

	_ = c.JSON(200, dto.FormatSongResponse{Content: formatted})
}

func (h *AIHandler) ComposeSong(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ComposeSongRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	content, err := h.ai.ComposeSong(context.Background(), gemini.ComposeParams{
		Key:        req.Key,
		Scale:      req.Scale,
		Style:      req.Style,
		Mood:       req.Mood,
		Speed:      req.Speed,
		Complexity: req.Complexity,
		Topics:     req.Topics,
	})
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			c.BadRequest("composition is not available: no API key configured")
			return
		}
		c.InternalServerError("failed to compose song")
		return
	}

	_ = c.JSON(200, dto.ComposeSongResponse{Content: content})
}

func (h *AIHandler) SetlistIdeas(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SetlistIdeasRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Genre == "" {
		c.BadRequest("genre is required")
		return
	}

	titles := h.ai.SuggestSetlistIdeas(context.Background(), req.Genre)
	if titles == nil {
		titles = []string{}
	}

	_ = c.JSON(200, dto.SetlistIdeasResponse{Titles: titles})
}

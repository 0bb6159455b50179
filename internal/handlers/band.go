package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/services"
	"github.com/verso-app/verso-api/pkg/dto"
)

type BandHandler struct {
	bandService  BandServiceInterface
	userService  UserServiceInterface
	emailService EmailServiceInterface
	hub          SyncHubInterface
	frontendURL  string
}

func NewBandHandler(
	bandService BandServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
	hub SyncHubInterface,
	frontendURL string,
) *BandHandler {
	return &BandHandler{
		bandService:  bandService,
		userService:  userService,
		emailService: emailService,
		hub:          hub,
		frontendURL:  frontendURL,
	}
}

func (h *BandHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateBandRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	band, err := h.bandService.Create(context.Background(), req.Name, userID)
	if err != nil {
		c.InternalServerError("failed to create band")
		return
	}

	_ = c.JSON(201, dto.BandResponse{
		ID:        band.ID,
		Name:      band.Name,
		CreatedBy: band.CreatedBy,
		Picture:   band.Picture,
		Role:      models.RoleAdmin,
	})
}

func (h *BandHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bands, roles, err := h.bandService.GetUserBands(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get bands")
		return
	}

	response := make([]dto.BandResponse, len(bands))
	for i, band := range bands {
		response[i] = dto.BandResponse{
			ID:        band.ID,
			Name:      band.Name,
			CreatedBy: band.CreatedBy,
			Picture:   band.Picture,
			Role:      roles[i],
		}
	}

	_ = c.JSON(200, response)
}

func (h *BandHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	ctx := context.Background()

	isMember, err := h.bandService.IsMember(ctx, bandID, userID)
	if err != nil || !isMember {
		c.NotFound("band not found")
		return
	}

	band, err := h.bandService.GetByID(ctx, bandID)
	if err != nil {
		c.NotFound("band not found")
		return
	}

	role, err := h.bandService.MemberRole(ctx, bandID, userID)
	if err != nil {
		c.InternalServerError("failed to get role")
		return
	}

	_ = c.JSON(200, dto.BandResponse{
		ID:        band.ID,
		Name:      band.Name,
		CreatedBy: band.CreatedBy,
		Picture:   band.Picture,
		Role:      role,
	})
}

func (h *BandHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	isCreator, err := h.bandService.IsCreator(context.Background(), bandID, userID)
	if err != nil || !isCreator {
		c.Forbidden("only the creator can delete a band")
		return
	}

	if err := h.bandService.Delete(context.Background(), bandID); err != nil {
		c.InternalServerError("failed to delete band")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "band deleted"})
}

func (h *BandHandler) GetMembers(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	ctx := context.Background()

	isMember, err := h.bandService.IsMember(ctx, bandID, userID)
	if err != nil || !isMember {
		c.NotFound("band not found")
		return
	}

	members, err := h.bandService.GetMembers(ctx, bandID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.BandMemberResponse, len(members))
	for i, m := range members {
		response[i] = dto.BandMemberResponse{
			ID:     m.ID,
			UserID: m.UserID,
			Role:   m.Role,
			User: dto.UserResponse{
				ID:       m.User.ID,
				Email:    m.User.Email,
				Name:     m.User.Name,
				Picture:  m.User.Picture,
				Provider: m.User.Provider,
			},
		}
	}

	_ = c.JSON(200, response)
}

// Join adds the caller to a band as MEMBER. Backs the shareable join deep
// link, so re-joining must stay a no-op success.
func (h *BandHandler) Join(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	ctx := context.Background()

	band, err := h.bandService.GetByID(ctx, bandID)
	if err != nil {
		c.NotFound("band not found")
		return
	}

	alreadyMember, err := h.bandService.IsMember(ctx, bandID, userID)
	if err != nil {
		c.InternalServerError("failed to check membership")
		return
	}

	if err := h.bandService.Join(ctx, bandID, userID); err != nil {
		c.InternalServerError("failed to join band")
		return
	}

	if !alreadyMember {
		if user, err := h.userService.GetByID(ctx, userID); err == nil {
			h.hub.BroadcastMemberJoined(bandID, user.ID, user.Name, user.Picture)
		}
	}

	role := models.RoleMember
	if r, err := h.bandService.MemberRole(ctx, bandID, userID); err == nil {
		role = r
	}

	_ = c.JSON(200, dto.BandResponse{
		ID:        band.ID,
		Name:      band.Name,
		CreatedBy: band.CreatedBy,
		Picture:   band.Picture,
		Role:      role,
	})
}

func (h *BandHandler) Leave(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	if err := h.bandService.Leave(context.Background(), bandID, userID); err != nil {
		if errors.Is(err, services.ErrCannotRemoveCreator) {
			c.BadRequest("creator cannot leave the band, delete it instead")
			return
		}
		if errors.Is(err, services.ErrBandNotFound) || errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("band not found or not a member")
			return
		}
		c.InternalServerError("failed to leave band")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left band"})
}

func (h *BandHandler) RemoveMember(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	ctx := context.Background()

	role, err := h.bandService.MemberRole(ctx, bandID, userID)
	if err != nil || role != models.RoleAdmin {
		c.Forbidden("only admins can remove members")
		return
	}

	if err := h.bandService.RemoveMember(ctx, bandID, memberID); err != nil {
		if errors.Is(err, services.ErrCannotRemoveCreator) {
			c.BadRequest("cannot remove the band creator")
			return
		}
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("member not found")
			return
		}
		c.InternalServerError("failed to remove member")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}

// InviteMember emails a join link for the band to the given address.
func (h *BandHandler) InviteMember(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	bandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid band id")
		return
	}

	ctx := context.Background()

	role, err := h.bandService.MemberRole(ctx, bandID, userID)
	if err != nil || role != models.RoleAdmin {
		c.Forbidden("only admins can invite members")
		return
	}

	var req dto.InviteMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	band, err := h.bandService.GetByID(ctx, bandID)
	if err != nil {
		c.NotFound("band not found")
		return
	}

	if !h.emailService.IsConfigured() {
		c.InternalServerError("email is not configured")
		return
	}

	inviter, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to load inviter")
		return
	}

	joinURL := fmt.Sprintf("%s?joinBand=%s", h.frontendURL, bandID)
	if err := h.emailService.SendBandInvite(req.Email, band.Name, inviter.Name, joinURL); err != nil {
		c.InternalServerError("failed to send invite")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "invite sent"})
}

package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/models"
)

// Workspace is a scoping key, not a stored entity: either a user's own id
// (personal scope) or a band id (shared scope).
type Workspace struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Personal bool      `json:"personal"`
	Role     string    `json:"role"`
}

// WorkspaceService resolves which workspaces a user may read and write.
type WorkspaceService struct {
	bands BandMembershipChecker
}

// BandMembershipChecker is the slice of BandService the resolver needs.
type BandMembershipChecker interface {
	IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error)
	MemberRole(ctx context.Context, bandID, userID uuid.UUID) (string, error)
	GetUserBands(ctx context.Context, userID uuid.UUID) ([]models.Band, []string, error)
}

func NewWorkspaceService(bands BandMembershipChecker) *WorkspaceService {
	return &WorkspaceService{bands: bands}
}

// List returns the personal workspace first, then every band the user
// belongs to.
func (s *WorkspaceService) List(ctx context.Context, user *models.User) ([]Workspace, error) {
	workspaces := []Workspace{{
		ID:       user.ID,
		Name:     user.Name,
		Personal: true,
		Role:     models.RoleAdmin,
	}}

	bands, roles, err := s.bands.GetUserBands(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i, band := range bands {
		workspaces = append(workspaces, Workspace{
			ID:       band.ID,
			Name:     band.Name,
			Personal: false,
			Role:     roles[i],
		})
	}
	return workspaces, nil
}

// CanAccess reports whether the user may read workspace-scoped collections:
// their own personal scope, or any band they are a member of.
func (s *WorkspaceService) CanAccess(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	if workspaceID == userID {
		return true, nil
	}
	return s.bands.IsMember(ctx, workspaceID, userID)
}

// CanModify requires the personal scope or an ADMIN/MEMBER band role; GUESTs
// are read-only.
func (s *WorkspaceService) CanModify(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	if workspaceID == userID {
		return true, nil
	}
	role, err := s.bands.MemberRole(ctx, workspaceID, userID)
	if err != nil {
		return false, nil
	}
	return role == models.RoleAdmin || role == models.RoleMember, nil
}

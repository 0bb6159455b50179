package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/gemini"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/oauth"
	"github.com/verso-app/verso-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// BandServiceInterface defines the methods used by handlers from BandService
type BandServiceInterface interface {
	Create(ctx context.Context, name string, createdBy uuid.UUID) (*models.Band, error)
	GetByID(ctx context.Context, bandID uuid.UUID) (*models.Band, error)
	GetUserBands(ctx context.Context, userID uuid.UUID) ([]models.Band, []string, error)
	Delete(ctx context.Context, bandID uuid.UUID) error
	Join(ctx context.Context, bandID, userID uuid.UUID) error
	Leave(ctx context.Context, bandID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, bandID, userID uuid.UUID) error
	IsCreator(ctx context.Context, bandID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error)
	MemberRole(ctx context.Context, bandID, userID uuid.UUID) (string, error)
	GetMembers(ctx context.Context, bandID uuid.UUID) ([]models.BandMember, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	List(ctx context.Context, user *models.User) ([]services.Workspace, error)
	CanAccess(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	CanModify(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// SongServiceInterface defines the methods used by handlers from SongService
type SongServiceInterface interface {
	Save(ctx context.Context, song *models.Song) (*models.Song, error)
	GetByID(ctx context.Context, songID uuid.UUID) (*models.Song, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Song, error)
	GetByIDs(ctx context.Context, songIDs []uuid.UUID) ([]models.Song, error)
	Delete(ctx context.Context, songID uuid.UUID) error
}

// SetlistServiceInterface defines the methods used by handlers from SetlistService
type SetlistServiceInterface interface {
	Save(ctx context.Context, setlist *models.Setlist) (*models.Setlist, error)
	GetByID(ctx context.Context, setlistID uuid.UUID) (*models.Setlist, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Setlist, error)
	Delete(ctx context.Context, setlistID uuid.UUID) error
}

// RehearsalServiceInterface defines the methods used by handlers from RehearsalService
type RehearsalServiceInterface interface {
	Create(ctx context.Context, id uuid.UUID, title string, first services.OptionInput, createdBy uuid.UUID, workspaceID *uuid.UUID) (*models.Rehearsal, error)
	Save(ctx context.Context, rehearsal *models.Rehearsal) (*models.Rehearsal, error)
	GetByID(ctx context.Context, rehearsalID uuid.UUID) (*models.Rehearsal, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Rehearsal, error)
	Delete(ctx context.Context, rehearsalID uuid.UUID) error
	ProposeOption(ctx context.Context, rehearsalID uuid.UUID, input services.OptionInput, proposerID uuid.UUID) (*models.Rehearsal, error)
	ToggleVote(ctx context.Context, rehearsalID, optionID, userID uuid.UUID) (*models.Rehearsal, error)
	Confirm(ctx context.Context, rehearsalID, optionID uuid.UUID) (*models.Rehearsal, error)
}

// SetlistResolverInterface defines the methods used by handlers from SetlistResolver
type SetlistResolverInterface interface {
	ResolveSongs(ctx context.Context, rehearsal *models.Rehearsal) ([]models.Song, error)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendBandInvite(to, bandName, inviterName, joinURL string) error
}

// LyricsAIInterface defines the methods used by handlers from the Gemini client
type LyricsAIInterface interface {
	IsConfigured() bool
	FormatSongContent(ctx context.Context, rawText string) string
	SuggestSetlistIdeas(ctx context.Context, genre string) []string
	ComposeSong(ctx context.Context, params gemini.ComposeParams) (string, error)
}

// SyncHubInterface defines the broadcast methods used by mutation handlers
type SyncHubInterface interface {
	BroadcastSongSaved(workspaceID uuid.UUID, song *models.Song)
	BroadcastSongDeleted(workspaceID, songID, deletedBy uuid.UUID)
	BroadcastSetlistSaved(workspaceID uuid.UUID, setlist *models.Setlist)
	BroadcastSetlistDeleted(workspaceID, setlistID, deletedBy uuid.UUID)
	BroadcastRehearsalSaved(workspaceID uuid.UUID, rehearsal *models.Rehearsal)
	BroadcastRehearsalDeleted(workspaceID, rehearsalID, deletedBy uuid.UUID)
	BroadcastMemberJoined(workspaceID, userID uuid.UUID, userName string, picture *string)
}

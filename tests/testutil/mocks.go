package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/verso-app/verso-api/internal/gemini"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/oauth"
	"github.com/verso-app/verso-api/internal/services"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockBandService mocks the BandService
type MockBandService struct {
	mock.Mock
}

func (m *MockBandService) Create(ctx context.Context, name string, createdBy uuid.UUID) (*models.Band, error) {
	args := m.Called(ctx, name, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Band), args.Error(1)
}

func (m *MockBandService) GetByID(ctx context.Context, bandID uuid.UUID) (*models.Band, error) {
	args := m.Called(ctx, bandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Band), args.Error(1)
}

func (m *MockBandService) GetUserBands(ctx context.Context, userID uuid.UUID) ([]models.Band, []string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Band), args.Get(1).([]string), args.Error(2)
}

func (m *MockBandService) Delete(ctx context.Context, bandID uuid.UUID) error {
	args := m.Called(ctx, bandID)
	return args.Error(0)
}

func (m *MockBandService) Join(ctx context.Context, bandID, userID uuid.UUID) error {
	args := m.Called(ctx, bandID, userID)
	return args.Error(0)
}

func (m *MockBandService) Leave(ctx context.Context, bandID, userID uuid.UUID) error {
	args := m.Called(ctx, bandID, userID)
	return args.Error(0)
}

func (m *MockBandService) RemoveMember(ctx context.Context, bandID, userID uuid.UUID) error {
	args := m.Called(ctx, bandID, userID)
	return args.Error(0)
}

func (m *MockBandService) IsCreator(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bandID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBandService) IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bandID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBandService) MemberRole(ctx context.Context, bandID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, bandID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBandService) GetMembers(ctx context.Context, bandID uuid.UUID) ([]models.BandMember, error) {
	args := m.Called(ctx, bandID)
	return args.Get(0).([]models.BandMember), args.Error(1)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) List(ctx context.Context, user *models.User) ([]services.Workspace, error) {
	args := m.Called(ctx, user)
	return args.Get(0).([]services.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) CanAccess(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) CanModify(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

// MockSongService mocks the SongService
type MockSongService struct {
	mock.Mock
}

func (m *MockSongService) Save(ctx context.Context, song *models.Song) (*models.Song, error) {
	args := m.Called(ctx, song)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongService) GetByID(ctx context.Context, songID uuid.UUID) (*models.Song, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Song, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockSongService) GetByIDs(ctx context.Context, songIDs []uuid.UUID) ([]models.Song, error) {
	args := m.Called(ctx, songIDs)
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockSongService) Delete(ctx context.Context, songID uuid.UUID) error {
	args := m.Called(ctx, songID)
	return args.Error(0)
}

// MockSetlistService mocks the SetlistService
type MockSetlistService struct {
	mock.Mock
}

func (m *MockSetlistService) Save(ctx context.Context, setlist *models.Setlist) (*models.Setlist, error) {
	args := m.Called(ctx, setlist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setlist), args.Error(1)
}

func (m *MockSetlistService) GetByID(ctx context.Context, setlistID uuid.UUID) (*models.Setlist, error) {
	args := m.Called(ctx, setlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setlist), args.Error(1)
}

func (m *MockSetlistService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Setlist, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]models.Setlist), args.Error(1)
}

func (m *MockSetlistService) Delete(ctx context.Context, setlistID uuid.UUID) error {
	args := m.Called(ctx, setlistID)
	return args.Error(0)
}

// MockRehearsalService mocks the RehearsalService
type MockRehearsalService struct {
	mock.Mock
}

func (m *MockRehearsalService) Create(ctx context.Context, id uuid.UUID, title string, first services.OptionInput, createdBy uuid.UUID, workspaceID *uuid.UUID) (*models.Rehearsal, error) {
	args := m.Called(ctx, id, title, first, createdBy, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) Save(ctx context.Context, rehearsal *models.Rehearsal) (*models.Rehearsal, error) {
	args := m.Called(ctx, rehearsal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) GetByID(ctx context.Context, rehearsalID uuid.UUID) (*models.Rehearsal, error) {
	args := m.Called(ctx, rehearsalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Rehearsal, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]models.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) Delete(ctx context.Context, rehearsalID uuid.UUID) error {
	args := m.Called(ctx, rehearsalID)
	return args.Error(0)
}

func (m *MockRehearsalService) ProposeOption(ctx context.Context, rehearsalID uuid.UUID, input services.OptionInput, proposerID uuid.UUID) (*models.Rehearsal, error) {
	args := m.Called(ctx, rehearsalID, input, proposerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) ToggleVote(ctx context.Context, rehearsalID, optionID, userID uuid.UUID) (*models.Rehearsal, error) {
	args := m.Called(ctx, rehearsalID, optionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rehearsal), args.Error(1)
}

func (m *MockRehearsalService) Confirm(ctx context.Context, rehearsalID, optionID uuid.UUID) (*models.Rehearsal, error) {
	args := m.Called(ctx, rehearsalID, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rehearsal), args.Error(1)
}

// MockSetlistResolver mocks the SetlistResolver
type MockSetlistResolver struct {
	mock.Mock
}

func (m *MockSetlistResolver) ResolveSongs(ctx context.Context, rehearsal *models.Rehearsal) ([]models.Song, error) {
	args := m.Called(ctx, rehearsal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Song), args.Error(1)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendBandInvite(to, bandName, inviterName, joinURL string) error {
	args := m.Called(to, bandName, inviterName, joinURL)
	return args.Error(0)
}

// MockLyricsAI mocks the Gemini client
type MockLyricsAI struct {
	mock.Mock
}

func (m *MockLyricsAI) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockLyricsAI) FormatSongContent(ctx context.Context, rawText string) string {
	args := m.Called(ctx, rawText)
	return args.String(0)
}

func (m *MockLyricsAI) SuggestSetlistIdeas(ctx context.Context, genre string) []string {
	args := m.Called(ctx, genre)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockLyricsAI) ComposeSong(ctx context.Context, params gemini.ComposeParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

// MockSyncHub mocks the live-sync hub broadcasts
type MockSyncHub struct {
	mock.Mock
}

func (m *MockSyncHub) BroadcastSongSaved(workspaceID uuid.UUID, song *models.Song) {
	m.Called(workspaceID, song)
}

func (m *MockSyncHub) BroadcastSongDeleted(workspaceID, songID, deletedBy uuid.UUID) {
	m.Called(workspaceID, songID, deletedBy)
}

func (m *MockSyncHub) BroadcastSetlistSaved(workspaceID uuid.UUID, setlist *models.Setlist) {
	m.Called(workspaceID, setlist)
}

func (m *MockSyncHub) BroadcastSetlistDeleted(workspaceID, setlistID, deletedBy uuid.UUID) {
	m.Called(workspaceID, setlistID, deletedBy)
}

func (m *MockSyncHub) BroadcastRehearsalSaved(workspaceID uuid.UUID, rehearsal *models.Rehearsal) {
	m.Called(workspaceID, rehearsal)
}

func (m *MockSyncHub) BroadcastRehearsalDeleted(workspaceID, rehearsalID, deletedBy uuid.UUID) {
	m.Called(workspaceID, rehearsalID, deletedBy)
}

func (m *MockSyncHub) BroadcastMemberJoined(workspaceID, userID uuid.UUID, userName string, picture *string) {
	m.Called(workspaceID, userID, userName, picture)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenService) CleanupExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

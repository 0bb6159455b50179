package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/database"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/oauth"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Name:       fmt.Sprintf("Test User %d", f.counter),
		Provider:   "google",
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, picture, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, name, picture, provider, provider_id, created_at, updated_at
	`, user.Email, user.Name, user.Picture, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Email, &user.Name, &user.Picture,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// WithPicture sets the user's profile picture URL
func WithPicture(url string) UserOption {
	return func(u *models.User) {
		u.Picture = &url
	}
}

// CreateBand creates a test band with the given creator seeded as ADMIN
func (f *Fixtures) CreateBand(t *testing.T, creator *models.User, opts ...BandOption) *models.Band {
	t.Helper()
	f.counter++

	band := &models.Band{
		Name:      fmt.Sprintf("Test Band %d", f.counter),
		CreatedBy: creator.ID,
	}

	for _, opt := range opts {
		opt(band)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO bands (name, created_by)
		VALUES ($1, $2)
		RETURNING id, name, created_by, picture, created_at, updated_at
	`, band.Name, band.CreatedBy).Scan(&band.ID, &band.Name, &band.CreatedBy, &band.Picture, &band.CreatedAt, &band.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create band: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO band_members (band_id, user_id, role)
		VALUES ($1, $2, $3)
	`, band.ID, creator.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to add creator as member: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return band
}

// BandOption configures a test band
type BandOption func(*models.Band)

// WithBandName sets the band's name
func WithBandName(name string) BandOption {
	return func(b *models.Band) {
		b.Name = name
	}
}

// AddBandMember adds a member to a band with the given role
func (f *Fixtures) AddBandMember(t *testing.T, band *models.Band, user *models.User, role string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO band_members (band_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (band_id, user_id) DO NOTHING
	`, band.ID, user.ID, role)
	if err != nil {
		t.Fatalf("failed to add band member: %v", err)
	}
}

// CreateSong creates a test song owned by the given user
func (f *Fixtures) CreateSong(t *testing.T, owner *models.User, opts ...SongOption) *models.Song {
	t.Helper()
	f.counter++

	song := &models.Song{
		ID:      uuid.New(),
		Title:   fmt.Sprintf("Test Song %d", f.counter),
		Artist:  fmt.Sprintf("Test Artist %d", f.counter),
		Content: "[Verse 1]\nC G Am F",
		OwnerID: owner.ID,
	}

	for _, opt := range opts {
		opt(song)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO songs (id, title, artist, content, key, owner_id, workspace_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, artist, content, key, owner_id, workspace_id, created_at, updated_at
	`, song.ID, song.Title, song.Artist, song.Content, song.Key, song.OwnerID, song.WorkspaceID).Scan(
		&song.ID, &song.Title, &song.Artist, &song.Content, &song.Key,
		&song.OwnerID, &song.WorkspaceID, &song.CreatedAt, &song.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create song: %v", err)
	}

	return song
}

// SongOption configures a test song
type SongOption func(*models.Song)

// WithSongTitle sets the song title
func WithSongTitle(title string) SongOption {
	return func(s *models.Song) {
		s.Title = title
	}
}

// InBandWorkspace tags the song with a band workspace
func InBandWorkspace(band *models.Band) SongOption {
	return func(s *models.Song) {
		s.WorkspaceID = &band.ID
	}
}

// CreateSetlist creates a test setlist owned by the given user
func (f *Fixtures) CreateSetlist(t *testing.T, owner *models.User, songIDs []uuid.UUID, opts ...SetlistOption) *models.Setlist {
	t.Helper()
	f.counter++

	setlist := &models.Setlist{
		ID:      uuid.New(),
		Title:   fmt.Sprintf("Test Setlist %d", f.counter),
		Songs:   songIDs,
		OwnerID: owner.ID,
	}

	for _, opt := range opts {
		opt(setlist)
	}

	if setlist.Songs == nil {
		setlist.Songs = []uuid.UUID{}
	}
	songsJSON, err := json.Marshal(setlist.Songs)
	if err != nil {
		t.Fatalf("failed to marshal setlist songs: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO setlists (id, title, description, songs, owner_id, workspace_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, owner_id, workspace_id, created_at, updated_at
	`, setlist.ID, setlist.Title, setlist.Description, songsJSON, setlist.OwnerID, setlist.WorkspaceID).Scan(
		&setlist.ID, &setlist.Title, &setlist.Description,
		&setlist.OwnerID, &setlist.WorkspaceID, &setlist.CreatedAt, &setlist.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create setlist: %v", err)
	}

	return setlist
}

// SetlistOption configures a test setlist
type SetlistOption func(*models.Setlist)

// SetlistInBandWorkspace tags the setlist with a band workspace
func SetlistInBandWorkspace(band *models.Band) SetlistOption {
	return func(s *models.Setlist) {
		s.WorkspaceID = &band.ID
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:    email,
		Name:     name,
		Picture:  "https://example.com/picture.png",
		ID:       id,
		Provider: provider,
	}
}

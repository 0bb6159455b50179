package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/database"
	"github.com/verso-app/verso-api/internal/models"
)

type SetlistService struct {
	db *database.DB
}

func NewSetlistService(db *database.DB) *SetlistService {
	return &SetlistService{db: db}
}

// Save upserts a setlist keyed by its stable id. Song ids are stored as-is:
// duplicates and references to deleted songs are allowed.
func (s *SetlistService) Save(ctx context.Context, setlist *models.Setlist) (*models.Setlist, error) {
	if setlist.ID == uuid.Nil {
		setlist.ID = uuid.New()
	}
	if setlist.Songs == nil {
		setlist.Songs = []uuid.UUID{}
	}

	songsJSON, err := json.Marshal(setlist.Songs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode song ids: %w", err)
	}

	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO setlists (id, title, description, songs, owner_id, workspace_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			songs = EXCLUDED.songs,
			workspace_id = EXCLUDED.workspace_id,
			updated_at = NOW()
		RETURNING id, title, description, songs, owner_id, workspace_id, created_at, updated_at
	`, setlist.ID, setlist.Title, setlist.Description, songsJSON, setlist.OwnerID, setlist.WorkspaceID)

	return scanSetlist(row)
}

func (s *SetlistService) GetByID(ctx context.Context, setlistID uuid.UUID) (*models.Setlist, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT id, title, description, songs, owner_id, workspace_id, created_at, updated_at
		FROM setlists WHERE id = $1
	`, setlistID)
	return scanSetlist(row)
}

// GetByWorkspace lists setlists visible in a workspace, newest first, using
// the same legacy-bridging OR predicate as songs.
func (s *SetlistService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Setlist, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, description, songs, owner_id, workspace_id, created_at, updated_at
		FROM setlists
		WHERE owner_id = $1 OR workspace_id = $1
		ORDER BY created_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var setlists []models.Setlist
	for rows.Next() {
		setlist, err := scanSetlist(rows)
		if err != nil {
			return nil, err
		}
		setlists = append(setlists, *setlist)
	}
	return setlists, nil
}

// Delete removes the setlist only; referenced songs stay untouched.
func (s *SetlistService) Delete(ctx context.Context, setlistID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM setlists WHERE id = $1`, setlistID)
	return err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSetlist(row scannable) (*models.Setlist, error) {
	var setlist models.Setlist
	var songsJSON []byte
	if err := row.Scan(
		&setlist.ID, &setlist.Title, &setlist.Description, &songsJSON,
		&setlist.OwnerID, &setlist.WorkspaceID, &setlist.CreatedAt, &setlist.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(songsJSON, &setlist.Songs); err != nil {
		return nil, fmt.Errorf("failed to decode song ids: %w", err)
	}
	if setlist.Songs == nil {
		setlist.Songs = []uuid.UUID{}
	}
	return &setlist, nil
}

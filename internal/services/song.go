package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/database"
	"github.com/verso-app/verso-api/internal/models"
)

type SongService struct {
	db *database.DB
}

func NewSongService(db *database.DB) *SongService {
	return &SongService{db: db}
}

// Save upserts a song keyed by its stable id. The owner is set on first
// insert and never reassigned by later edits.
func (s *SongService) Save(ctx context.Context, song *models.Song) (*models.Song, error) {
	if song.ID == uuid.Nil {
		song.ID = uuid.New()
	}

	var saved models.Song
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO songs (id, title, artist, content, key, owner_id, workspace_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			content = EXCLUDED.content,
			key = EXCLUDED.key,
			workspace_id = EXCLUDED.workspace_id,
			updated_at = NOW()
		RETURNING id, title, artist, content, key, owner_id, workspace_id, created_at, updated_at
	`, song.ID, song.Title, song.Artist, song.Content, song.Key, song.OwnerID, song.WorkspaceID).Scan(
		&saved.ID, &saved.Title, &saved.Artist, &saved.Content, &saved.Key,
		&saved.OwnerID, &saved.WorkspaceID, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *SongService) GetByID(ctx context.Context, songID uuid.UUID) (*models.Song, error) {
	var song models.Song
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, title, artist, content, key, owner_id, workspace_id, created_at, updated_at
		FROM songs WHERE id = $1
	`, songID).Scan(
		&song.ID, &song.Title, &song.Artist, &song.Content, &song.Key,
		&song.OwnerID, &song.WorkspaceID, &song.CreatedAt, &song.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// GetByWorkspace lists songs visible in a workspace, title ascending. The OR
// predicate bridges entities created before workspace tagging existed
// (owner_id only) and after (workspace_id set).
func (s *SongService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Song, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, artist, content, key, owner_id, workspace_id, created_at, updated_at
		FROM songs
		WHERE owner_id = $1 OR workspace_id = $1
		ORDER BY title ASC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(
			&song.ID, &song.Title, &song.Artist, &song.Content, &song.Key,
			&song.OwnerID, &song.WorkspaceID, &song.CreatedAt, &song.UpdatedAt,
		); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// GetByIDs batch-fetches songs by id without workspace filtering. Used by
// setlist resolution and shared-link viewing; ids that match nothing are
// simply absent from the result.
func (s *SongService) GetByIDs(ctx context.Context, songIDs []uuid.UUID) ([]models.Song, error) {
	if len(songIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, artist, content, key, owner_id, workspace_id, created_at, updated_at
		FROM songs WHERE id = ANY($1)
	`, songIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(
			&song.ID, &song.Title, &song.Artist, &song.Content, &song.Key,
			&song.OwnerID, &song.WorkspaceID, &song.CreatedAt, &song.UpdatedAt,
		); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// Delete removes the song only. Setlists and rehearsals keep any reference
// to the id; resolution filters it out at read time.
func (s *SongService) Delete(ctx context.Context, songID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM songs WHERE id = $1`, songID)
	return err
}

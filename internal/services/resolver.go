package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/models"
)

// SongFetcher and SetlistFetcher are the unscoped lookups setlist resolution
// needs; both deliberately bypass workspace filtering so shared-link guests
// can resolve another workspace's content.
type SongFetcher interface {
	GetByIDs(ctx context.Context, songIDs []uuid.UUID) ([]models.Song, error)
}

type SetlistFetcher interface {
	GetByID(ctx context.Context, setlistID uuid.UUID) (*models.Setlist, error)
}

// SetlistResolver computes the ordered songs a rehearsal should display.
type SetlistResolver struct {
	songs    SongFetcher
	setlists SetlistFetcher
}

func NewSetlistResolver(songs SongFetcher, setlists SetlistFetcher) *SetlistResolver {
	return &SetlistResolver{songs: songs, setlists: setlists}
}

// ResolveSongs returns the rehearsal's songs in display order. A linked
// setlist takes precedence over the ad-hoc id list; dangling song ids are
// filtered out; duplicates survive resolution.
func (r *SetlistResolver) ResolveSongs(ctx context.Context, rehearsal *models.Rehearsal) ([]models.Song, error) {
	songIDs := rehearsal.Setlist
	if rehearsal.LinkedSetlistID != nil {
		setlist, err := r.setlists.GetByID(ctx, *rehearsal.LinkedSetlistID)
		if err != nil {
			// Dangling link: resolve to nothing rather than fail the view.
			return []models.Song{}, nil
		}
		songIDs = setlist.Songs
	}

	if len(songIDs) == 0 {
		return []models.Song{}, nil
	}

	fetched, err := r.songs.GetByIDs(ctx, dedupe(songIDs))
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Song, len(fetched))
	for _, song := range fetched {
		byID[song.ID] = song
	}

	resolved := make([]models.Song, 0, len(songIDs))
	for _, id := range songIDs {
		if song, ok := byID[id]; ok {
			resolved = append(resolved, song)
		}
	}
	return resolved, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

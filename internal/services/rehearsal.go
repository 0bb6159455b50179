package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/verso-app/verso-api/internal/database"
	"github.com/verso-app/verso-api/internal/models"
)

var (
	ErrRehearsalNotFound = errors.New("rehearsal not found")
	ErrOptionNotFound    = errors.New("option not found")
	ErrAlreadyConfirmed  = errors.New("rehearsal is already confirmed")
)

type RehearsalService struct {
	db *database.DB
}

func NewRehearsalService(db *database.DB) *RehearsalService {
	return &RehearsalService{db: db}
}

// OptionInput is a proposed date/time/location for a rehearsal.
type OptionInput struct {
	Date     string
	Time     string
	Location string
}

// Create inserts a rehearsal in PROPOSED status with exactly one option,
// seeded with the proposer's vote.
func (s *RehearsalService) Create(ctx context.Context, id uuid.UUID, title string, first OptionInput, createdBy uuid.UUID, workspaceID *uuid.UUID) (*models.Rehearsal, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}

	options := []models.RehearsalOption{{
		ID:       uuid.New(),
		Date:     first.Date,
		Time:     first.Time,
		Location: first.Location,
		VoterIDs: []uuid.UUID{createdBy},
	}}

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO rehearsals (id, title, status, options, setlist, created_by, workspace_id)
		VALUES ($1, $2, $3, $4, '[]', $5, $6)
		RETURNING id, title, status, options, confirmed_option_id, linked_setlist_id, setlist,
		          created_by, workspace_id, created_at, updated_at
	`, id, title, models.StatusProposed, optionsJSON, createdBy, workspaceID)

	return scanRehearsal(row)
}

// Save upserts the whole rehearsal keyed by its stable id: the merge-write
// path behind the generic PUT endpoint (setlist edits, linking a setlist).
// Status, options and confirmation go through the dedicated mutations.
func (s *RehearsalService) Save(ctx context.Context, rehearsal *models.Rehearsal) (*models.Rehearsal, error) {
	if rehearsal.ID == uuid.Nil {
		rehearsal.ID = uuid.New()
	}
	if rehearsal.Setlist == nil {
		rehearsal.Setlist = []uuid.UUID{}
	}

	setlistJSON, err := json.Marshal(rehearsal.Setlist)
	if err != nil {
		return nil, fmt.Errorf("failed to encode setlist: %w", err)
	}

	row := s.db.Pool.QueryRow(ctx, `
		UPDATE rehearsals
		SET title = $2, linked_setlist_id = $3, setlist = $4, workspace_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, status, options, confirmed_option_id, linked_setlist_id, setlist,
		          created_by, workspace_id, created_at, updated_at
	`, rehearsal.ID, rehearsal.Title, rehearsal.LinkedSetlistID, setlistJSON, rehearsal.WorkspaceID)

	saved, err := scanRehearsal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRehearsalNotFound
	}
	return saved, err
}

func (s *RehearsalService) GetByID(ctx context.Context, rehearsalID uuid.UUID) (*models.Rehearsal, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT id, title, status, options, confirmed_option_id, linked_setlist_id, setlist,
		       created_by, workspace_id, created_at, updated_at
		FROM rehearsals WHERE id = $1
	`, rehearsalID)
	return scanRehearsal(row)
}

// GetByWorkspace lists rehearsals visible in a workspace, newest first,
// matching on creator or workspace tag.
func (s *RehearsalService) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Rehearsal, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, status, options, confirmed_option_id, linked_setlist_id, setlist,
		       created_by, workspace_id, created_at, updated_at
		FROM rehearsals
		WHERE created_by = $1 OR workspace_id = $1
		ORDER BY created_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rehearsals []models.Rehearsal
	for rows.Next() {
		rehearsal, err := scanRehearsal(rows)
		if err != nil {
			return nil, err
		}
		rehearsals = append(rehearsals, *rehearsal)
	}
	return rehearsals, nil
}

func (s *RehearsalService) Delete(ctx context.Context, rehearsalID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM rehearsals WHERE id = $1`, rehearsalID)
	return err
}

// ProposeOption appends a new option with the proposer's vote already cast.
// There is no cap on options and no de-duplication of identical slots.
func (s *RehearsalService) ProposeOption(ctx context.Context, rehearsalID uuid.UUID, input OptionInput, proposerID uuid.UUID) (*models.Rehearsal, error) {
	return s.mutateOptions(ctx, rehearsalID, func(r *models.Rehearsal) error {
		r.Options = append(r.Options, models.RehearsalOption{
			ID:       uuid.New(),
			Date:     input.Date,
			Time:     input.Time,
			Location: input.Location,
			VoterIDs: []uuid.UUID{proposerID},
		})
		return nil
	})
}

// ToggleVote casts or withdraws the user's vote on one option. Votes across
// different options are independent; no exclusivity is enforced.
func (s *RehearsalService) ToggleVote(ctx context.Context, rehearsalID, optionID, userID uuid.UUID) (*models.Rehearsal, error) {
	return s.mutateOptions(ctx, rehearsalID, func(r *models.Rehearsal) error {
		option := r.Option(optionID)
		if option == nil {
			return ErrOptionNotFound
		}
		option.ToggleVote(userID)
		return nil
	})
}

// Confirm is the one-way PROPOSED to CONFIRMED transition. The winning
// option must exist, but may have zero votes: picking a winner is a manual
// decision, not a tally.
func (s *RehearsalService) Confirm(ctx context.Context, rehearsalID, optionID uuid.UUID) (*models.Rehearsal, error) {
	return s.mutateOptions(ctx, rehearsalID, func(r *models.Rehearsal) error {
		if r.Status == models.StatusConfirmed {
			return ErrAlreadyConfirmed
		}
		if r.Option(optionID) == nil {
			return ErrOptionNotFound
		}
		r.Status = models.StatusConfirmed
		r.ConfirmedOptionID = &optionID
		return nil
	})
}

// mutateOptions runs a read-modify-write of the scheduling state under a row
// lock, so concurrent votes on different options cannot drop each other the
// way whole-array merge writes would.
func (s *RehearsalService) mutateOptions(ctx context.Context, rehearsalID uuid.UUID, mutate func(*models.Rehearsal) error) (*models.Rehearsal, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		SELECT id, title, status, options, confirmed_option_id, linked_setlist_id, setlist,
		       created_by, workspace_id, created_at, updated_at
		FROM rehearsals WHERE id = $1
		FOR UPDATE
	`, rehearsalID)

	rehearsal, err := scanRehearsal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRehearsalNotFound
		}
		return nil, err
	}

	if err := mutate(rehearsal); err != nil {
		return nil, err
	}

	optionsJSON, err := json.Marshal(rehearsal.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	row = tx.QueryRow(ctx, `
		UPDATE rehearsals
		SET status = $2, options = $3, confirmed_option_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, status, options, confirmed_option_id, linked_setlist_id, setlist,
		          created_by, workspace_id, created_at, updated_at
	`, rehearsalID, rehearsal.Status, optionsJSON, rehearsal.ConfirmedOptionID)

	updated, err := scanRehearsal(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

func scanRehearsal(row scannable) (*models.Rehearsal, error) {
	var rehearsal models.Rehearsal
	var optionsJSON, setlistJSON []byte
	if err := row.Scan(
		&rehearsal.ID, &rehearsal.Title, &rehearsal.Status, &optionsJSON,
		&rehearsal.ConfirmedOptionID, &rehearsal.LinkedSetlistID, &setlistJSON,
		&rehearsal.CreatedBy, &rehearsal.WorkspaceID, &rehearsal.CreatedAt, &rehearsal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(optionsJSON, &rehearsal.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	if err := json.Unmarshal(setlistJSON, &rehearsal.Setlist); err != nil {
		return nil, fmt.Errorf("failed to decode setlist: %w", err)
	}
	if rehearsal.Options == nil {
		rehearsal.Options = []models.RehearsalOption{}
	}
	if rehearsal.Setlist == nil {
		rehearsal.Setlist = []uuid.UUID{}
	}
	return &rehearsal, nil
}

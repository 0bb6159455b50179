package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/verso-app/verso-api/internal/database"
	"github.com/verso-app/verso-api/internal/models"
)

var (
	ErrBandNotFound        = errors.New("band not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrCannotRemoveCreator = errors.New("cannot remove band creator")
)

type BandService struct {
	db *database.DB
}

func NewBandService(db *database.DB) *BandService {
	return &BandService{db: db}
}

// Create inserts the band and seeds its creator as an ADMIN member in the
// same transaction.
func (s *BandService) Create(ctx context.Context, name string, createdBy uuid.UUID) (*models.Band, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var band models.Band
	err = tx.QueryRow(ctx, `
		INSERT INTO bands (name, created_by)
		VALUES ($1, $2)
		RETURNING id, name, created_by, picture, created_at, updated_at
	`, name, createdBy).Scan(&band.ID, &band.Name, &band.CreatedBy, &band.Picture, &band.CreatedAt, &band.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create band: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO band_members (band_id, user_id, role)
		VALUES ($1, $2, $3)
	`, band.ID, createdBy, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as admin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &band, nil
}

func (s *BandService) GetByID(ctx context.Context, bandID uuid.UUID) (*models.Band, error) {
	var band models.Band
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, created_by, picture, created_at, updated_at
		FROM bands WHERE id = $1
	`, bandID).Scan(&band.ID, &band.Name, &band.CreatedBy, &band.Picture, &band.CreatedAt, &band.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &band, nil
}

func (s *BandService) GetUserBands(ctx context.Context, userID uuid.UUID) ([]models.Band, []string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT b.id, b.name, b.created_by, b.picture, b.created_at, b.updated_at, bm.role
		FROM bands b
		JOIN band_members bm ON b.id = bm.band_id
		WHERE bm.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var bands []models.Band
	var roles []string
	for rows.Next() {
		var band models.Band
		var role string
		if err := rows.Scan(&band.ID, &band.Name, &band.CreatedBy, &band.Picture, &band.CreatedAt, &band.UpdatedAt, &role); err != nil {
			return nil, nil, err
		}
		bands = append(bands, band)
		roles = append(roles, role)
	}
	return bands, roles, nil
}

// Delete removes the band entity. Member user records are untouched; only
// the membership rows cascade.
func (s *BandService) Delete(ctx context.Context, bandID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM bands WHERE id = $1`, bandID)
	return err
}

// Join adds the user as a MEMBER. Re-joining an existing member is a no-op
// success, which is what invitation links rely on.
func (s *BandService) Join(ctx context.Context, bandID, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO band_members (band_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (band_id, user_id) DO NOTHING
	`, bandID, userID, models.RoleMember)
	return err
}

func (s *BandService) Leave(ctx context.Context, bandID, userID uuid.UUID) error {
	var createdBy uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT created_by FROM bands WHERE id = $1`, bandID).Scan(&createdBy)
	if err != nil {
		return ErrBandNotFound
	}
	if createdBy == userID {
		return ErrCannotRemoveCreator
	}

	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM band_members WHERE band_id = $1 AND user_id = $2
	`, bandID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (s *BandService) RemoveMember(ctx context.Context, bandID, userID uuid.UUID) error {
	return s.Leave(ctx, bandID, userID)
}

func (s *BandService) IsCreator(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	var createdBy uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT created_by FROM bands WHERE id = $1`, bandID).Scan(&createdBy)
	if err != nil {
		return false, err
	}
	return createdBy == userID, nil
}

func (s *BandService) IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM band_members WHERE band_id = $1 AND user_id = $2)
	`, bandID, userID).Scan(&exists)
	return exists, err
}

func (s *BandService) MemberRole(ctx context.Context, bandID, userID uuid.UUID) (string, error) {
	var role string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT role FROM band_members WHERE band_id = $1 AND user_id = $2
	`, bandID, userID).Scan(&role)
	if err != nil {
		return "", ErrMemberNotFound
	}
	return role, nil
}

func (s *BandService) GetMembers(ctx context.Context, bandID uuid.UUID) ([]models.BandMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT bm.id, bm.band_id, bm.user_id, bm.role, bm.joined_at,
		       u.id, u.email, u.name, u.picture, u.provider, u.created_at, u.updated_at
		FROM band_members bm
		JOIN users u ON bm.user_id = u.id
		WHERE bm.band_id = $1
		ORDER BY bm.joined_at
	`, bandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.BandMember
	for rows.Next() {
		var member models.BandMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.BandID, &member.UserID, &member.Role, &member.JoinedAt,
			&user.ID, &user.Email, &user.Name, &user.Picture, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, nil
}

package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		picture VARCHAR(500),
		provider VARCHAR(50) NOT NULL,
		provider_id VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(provider, provider_id)
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS bands (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		picture VARCHAR(500),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS band_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		band_id UUID NOT NULL REFERENCES bands(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL DEFAULT 'MEMBER',
		joined_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(band_id, user_id)
	)`,

	// Songs, setlists and rehearsals carry both owner_id (the creating user)
	// and a nullable workspace_id (a band id). Entities created before band
	// scoping existed have only owner_id set; workspace list queries match
	// on either column.
	`CREATE TABLE IF NOT EXISTS songs (
		id UUID PRIMARY KEY,
		title VARCHAR(500) NOT NULL,
		artist VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		key VARCHAR(20),
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workspace_id UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS setlists (
		id UUID PRIMARY KEY,
		title VARCHAR(500) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		songs JSONB NOT NULL DEFAULT '[]',
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workspace_id UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS rehearsals (
		id UUID PRIMARY KEY,
		title VARCHAR(500) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PROPOSED',
		options JSONB NOT NULL DEFAULT '[]',
		confirmed_option_id UUID,
		linked_setlist_id UUID,
		setlist JSONB NOT NULL DEFAULT '[]',
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workspace_id UUID,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_band_members_band_id ON band_members(band_id)`,
	`CREATE INDEX IF NOT EXISTS idx_band_members_user_id ON band_members(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_songs_owner_id ON songs(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_songs_workspace_id ON songs(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_setlists_owner_id ON setlists(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_setlists_workspace_id ON setlists(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rehearsals_created_by ON rehearsals(created_by)`,
	`CREATE INDEX IF NOT EXISTS idx_rehearsals_workspace_id ON rehearsals(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/services"
	"github.com/verso-app/verso-api/tests/testutil"
)

func TestSetlistService_Integration_SavePreservesSongOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewSetlistService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	song1 := fixtures.CreateSong(t, owner)
	song2 := fixtures.CreateSong(t, owner)
	song3 := fixtures.CreateSong(t, owner)

	order := []uuid.UUID{song3.ID, song1.ID, song2.ID}
	saved, err := svc.Save(ctx, &models.Setlist{
		ID:      uuid.New(),
		Title:   "Friday Gig",
		Songs:   order,
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	loaded, err := svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, order, loaded.Songs)
}

func TestSetlistService_Integration_SongDeletionLeavesReference(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	setlistSvc := services.NewSetlistService(tdb.DB)
	songSvc := services.NewSongService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	song := fixtures.CreateSong(t, owner)
	setlist := fixtures.CreateSetlist(t, owner, []uuid.UUID{song.ID})

	require.NoError(t, songSvc.Delete(ctx, song.ID))

	// The stored id list keeps the dangling reference; resolution drops it
	loaded, err := setlistSvc.GetByID(ctx, setlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{song.ID}, loaded.Songs)

	resolver := services.NewSetlistResolver(songSvc, setlistSvc)
	songs, err := resolver.ResolveSongs(ctx, &models.Rehearsal{
		LinkedSetlistID: &setlist.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, songs)
	assert.NotNil(t, songs)
}

func TestSetlistService_Integration_WorkspaceScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewSetlistService(tdb.DB)
	bandSvc := services.NewBandService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	bandmate := fixtures.CreateUser(t)
	band, err := bandSvc.Create(ctx, "The Offbeats", owner.ID)
	require.NoError(t, err)
	require.NoError(t, bandSvc.Join(ctx, band.ID, bandmate.ID))

	personal := fixtures.CreateSetlist(t, owner, nil)
	shared := fixtures.CreateSetlist(t, bandmate, nil, testutil.SetlistInBandWorkspace(band))

	personalLists, err := svc.GetByWorkspace(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, personalLists, 1)
	assert.Equal(t, personal.ID, personalLists[0].ID)

	bandLists, err := svc.GetByWorkspace(ctx, band.ID)
	require.NoError(t, err)
	require.Len(t, bandLists, 1)
	assert.Equal(t, shared.ID, bandLists[0].ID)
}

func TestSetlistService_Integration_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewSetlistService(tdb.DB)
	songSvc := services.NewSongService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	song := fixtures.CreateSong(t, owner)
	setlist := fixtures.CreateSetlist(t, owner, []uuid.UUID{song.ID})

	require.NoError(t, svc.Delete(ctx, setlist.ID))

	_, err := svc.GetByID(ctx, setlist.ID)
	assert.Error(t, err)

	// Referenced songs survive setlist deletion
	_, err = songSvc.GetByID(ctx, song.ID)
	assert.NoError(t, err)
}

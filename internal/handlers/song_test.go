package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/services"
	"github.com/verso-app/verso-api/pkg/dto"
	"github.com/verso-app/verso-api/tests/testutil"
)

func setupSongTest(t *testing.T) (*testutil.MockSongService, *testutil.MockWorkspaceService, *testutil.MockSyncHub, http.Handler, *services.JWTService) {
	t.Helper()
	mockSongService := new(testutil.MockSongService)
	mockWorkspaceService := new(testutil.MockWorkspaceService)
	mockHub := new(testutil.MockSyncHub)
	handler := NewSongHandler(mockSongService, mockWorkspaceService, mockHub)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces/:workspaceId/songs", handler.List)
	app.Get("/workspaces/:workspaceId/songs/:songId", handler.Get)
	app.Put("/workspaces/:workspaceId/songs/:songId", handler.Save)
	app.Delete("/workspaces/:workspaceId/songs/:songId", handler.Delete)

	return mockSongService, mockWorkspaceService, mockHub, app, jwtSvc
}

func TestSongHandler_List_Success(t *testing.T) {
	mockSongService, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	songs := []models.Song{
		{ID: uuid.New(), Title: "Wonderwall", Artist: "Oasis", OwnerID: userID},
		{ID: uuid.New(), Title: "Creep", Artist: "Radiohead", OwnerID: userID},
	}

	mockWorkspaceService.On("CanAccess", mock.Anything, workspaceID, userID).Return(true, nil)
	mockSongService.On("GetByWorkspace", mock.Anything, workspaceID).Return(songs, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String()+"/songs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []models.Song
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "Wonderwall", response[0].Title)

	mockSongService.AssertExpectations(t)
	mockWorkspaceService.AssertExpectations(t)
}

func TestSongHandler_List_EmptyWorkspaceReturnsArray(t *testing.T) {
	mockSongService, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()

	mockWorkspaceService.On("CanAccess", mock.Anything, workspaceID, userID).Return(true, nil)
	mockSongService.On("GetByWorkspace", mock.Anything, workspaceID).Return([]models.Song(nil), nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String()+"/songs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSongHandler_List_NoAccess(t *testing.T) {
	_, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()

	mockWorkspaceService.On("CanAccess", mock.Anything, workspaceID, userID).Return(false, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String()+"/songs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSongHandler_Save_PersonalWorkspace(t *testing.T) {
	mockSongService, mockWorkspaceService, mockHub, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	songID := uuid.New()

	mockWorkspaceService.On("CanAccess", mock.Anything, userID, userID).Return(true, nil)
	mockWorkspaceService.On("CanModify", mock.Anything, userID, userID).Return(true, nil)

	// A personal workspace id equals the user id, so the song carries no
	// workspace tag and is scoped by owner alone.
	mockSongService.On("Save", mock.Anything, mock.MatchedBy(func(s *models.Song) bool {
		return s.ID == songID && s.Title == "Wonderwall" && s.OwnerID == userID && s.WorkspaceID == nil
	})).Return(&models.Song{ID: songID, Title: "Wonderwall", OwnerID: userID}, nil)
	mockHub.On("BroadcastSongSaved", userID, mock.Anything).Return()

	body := dto.SaveSongRequest{Title: "Wonderwall", Artist: "Oasis", Content: "[Verse]\nEm G D A"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPut, "/workspaces/"+userID.String()+"/songs/"+songID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Song
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, songID, response.ID)

	mockSongService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestSongHandler_Save_BandWorkspace(t *testing.T) {
	mockSongService, mockWorkspaceService, mockHub, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	bandID := uuid.New()
	songID := uuid.New()

	mockWorkspaceService.On("CanAccess", mock.Anything, bandID, userID).Return(true, nil)
	mockWorkspaceService.On("CanModify", mock.Anything, bandID, userID).Return(true, nil)
	mockSongService.On("Save", mock.Anything, mock.MatchedBy(func(s *models.Song) bool {
		return s.WorkspaceID != nil && *s.WorkspaceID == bandID && s.OwnerID == userID
	})).Return(&models.Song{ID: songID, Title: "Creep", OwnerID: userID, WorkspaceID: &bandID}, nil)
	mockHub.On("BroadcastSongSaved", bandID, mock.Anything).Return()

	body := dto.SaveSongRequest{Title: "Creep", Artist: "Radiohead"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPut, "/workspaces/"+bandID.String()+"/songs/"+songID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	mockSongService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestSongHandler_Save_EmptyTitle(t *testing.T) {
	_, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	songID := uuid.New()

	mockWorkspaceService.On("CanAccess", mock.Anything, workspaceID, userID).Return(true, nil)
	mockWorkspaceService.On("CanModify", mock.Anything, workspaceID, userID).Return(true, nil)

	body := dto.SaveSongRequest{Title: ""}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPut, "/workspaces/"+workspaceID.String()+"/songs/"+songID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")
}

func TestSongHandler_Save_ReadOnlyWorkspace(t *testing.T) {
	_, mockWorkspaceService, mockHub, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	songID := uuid.New()

	mockWorkspaceService.On("CanAccess", mock.Anything, workspaceID, userID).Return(true, nil)
	mockWorkspaceService.On("CanModify", mock.Anything, workspaceID, userID).Return(false, nil)

	body := dto.SaveSongRequest{Title: "Wonderwall"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPut, "/workspaces/"+workspaceID.String()+"/songs/"+songID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "read-only")

	mockHub.AssertNotCalled(t, "BroadcastSongSaved", mock.Anything, mock.Anything)
}

func TestSongHandler_Get_Success(t *testing.T) {
	mockSongService, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	bandID := uuid.New()
	songID := uuid.New()
	song := &models.Song{ID: songID, Title: "Wonderwall", OwnerID: userID, WorkspaceID: &bandID}

	mockWorkspaceService.On("CanAccess", mock.Anything, bandID, userID).Return(true, nil)
	mockSongService.On("GetByID", mock.Anything, songID).Return(song, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+bandID.String()+"/songs/"+songID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Song
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "Wonderwall", response.Title)

	mockSongService.AssertExpectations(t)
}

func TestSongHandler_Get_WrongWorkspace(t *testing.T) {
	mockSongService, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	songID := uuid.New()
	otherWorkspace := uuid.New()
	song := &models.Song{ID: songID, Title: "Wonderwall", OwnerID: uuid.New(), WorkspaceID: &otherWorkspace}

	mockWorkspaceService.On("CanAccess", mock.Anything, workspaceID, userID).Return(true, nil)
	mockSongService.On("GetByID", mock.Anything, songID).Return(song, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+workspaceID.String()+"/songs/"+songID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	// Songs from other workspaces are invisible even with a valid id
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSongHandler_Delete_Success(t *testing.T) {
	mockSongService, mockWorkspaceService, mockHub, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	bandID := uuid.New()
	songID := uuid.New()
	song := &models.Song{ID: songID, Title: "Wonderwall", OwnerID: userID, WorkspaceID: &bandID}

	mockWorkspaceService.On("CanModify", mock.Anything, bandID, userID).Return(true, nil)
	mockSongService.On("GetByID", mock.Anything, songID).Return(song, nil)
	mockSongService.On("Delete", mock.Anything, songID).Return(nil)
	mockHub.On("BroadcastSongDeleted", bandID, songID, userID).Return()

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodDelete, "/workspaces/"+bandID.String()+"/songs/"+songID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "song deleted")

	mockSongService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestSongHandler_Delete_ReadOnlyWorkspace(t *testing.T) {
	mockSongService, mockWorkspaceService, _, app, jwtSvc := setupSongTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	songID := uuid.New()

	mockWorkspaceService.On("CanModify", mock.Anything, workspaceID, userID).Return(false, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodDelete, "/workspaces/"+workspaceID.String()+"/songs/"+songID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockSongService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

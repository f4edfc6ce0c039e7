package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starpower/starpower-server-go/internal/catalog"
	"github.com/starpower/starpower-server-go/internal/game"
	"github.com/starpower/starpower-server-go/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := service.NewGameService(service.Options{
		Rules: game.DefaultConfig(),
		Decks: catalog.DefaultComposition(),
		Seed:  42,
	})
	return New(zap.NewNop(), svc, NewHub(zap.NewNop()))
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func createGame(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/games", service.CreateGameParams{
		PlayerName:   "Toph",
		OpponentName: "Riley",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		GameID   string        `json:"game_id"`
		Snapshot game.Snapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.GameID)
	return resp.GameID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCreateAndGetGame(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s)

	w := doJSON(t, s, http.MethodGet, "/api/games/"+id, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, "Toph", snap.Players[0].Name)
	assert.Len(t, snap.Players[0].Hand, game.DefaultConfig().StartingHandSize)
}

func TestCreateGameValidation(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/games", service.CreateGameParams{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownGame(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/games/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndTurnAdvances(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/games/"+id+"/end-turn", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var res game.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Accepted)
	assert.Equal(t, 1, res.Snapshot.CurrentPlayer)
}

func TestRejectionIsDataNotHTTPError(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/games/"+id+"/play-card", playCardRequest{
		Player:    1,
		HandIndex: 0,
	})

	require.Equal(t, http.StatusOK, w.Code, "rule rejections are not HTTP errors")
	var res game.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Accepted)
	assert.Equal(t, game.RejectNotYourTurn, res.Reason)
}

func TestCommandOnUnknownGame(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/games/nope/end-turn", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListGames(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s)

	w := doJSON(t, s, http.MethodGet, "/api/games", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Games []service.GameSummary `json:"games"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Games, 1)
	assert.Equal(t, id, resp.Games[0].ID)
}

func TestDeleteGame(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s)

	w := doJSON(t, s, http.MethodDelete, "/api/games/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/games/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebsocketUnknownGame(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/ws/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub-app/gamehub/internal/api"
	"github.com/gamehub-app/gamehub/internal/api/response"
	"github.com/gamehub-app/gamehub/internal/factory"
	"github.com/gamehub-app/gamehub/internal/session"
)

// testServer creates a test server with all dependencies
type testServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := factory.New(context.Background(), factory.Config{
		Logger:        logger,
		SessionConfig: session.Config{Secret: "api-test-secret"},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Sessions:       app.Sessions,
	})

	return &testServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin registers an account over the API and returns its token
func (ts *testServer) registerAndLogin(username, password string) string {
	ts.t.Helper()

	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(ts.t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/login", body, "")
	require.Equal(ts.t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(ts.t, resp.Token)
	return resp.Token
}

// createGame creates a game over the API and returns its id
func (ts *testServer) createGame(token, name string) int64 {
	ts.t.Helper()

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"name": name}, token)
	require.Equal(ts.t, http.StatusCreated, rr.Code)

	var game response.Game
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), &game))
	return game.ID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)
	// The raw password never appears in the response
	assert.NotContains(t, rr.Body.String(), "secret123")
}

func TestRegisterShortPassword(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "short"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "PASSWORD_TOO_SHORT")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.Token)

	// The token verifies against the session manager
	identity, err := ts.app.Sessions.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	body["password"] = "wrongpassword"
	rr = ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")

	// Unknown usernames produce the same code
	body["username"] = "nobody"
	rr = ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestListGamesRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
}

func TestListGamesRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAndListGames(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"name": "Chess"}, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Chess", created.Name)
	assert.NotZero(t, created.ID)

	rr = ts.request(http.MethodGet, "/api/games", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.GameList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Games, 1)
	assert.Equal(t, created.ID, list.Games[0].ID)
}

func TestCreateGameDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice", "secret123")
	ts.createGame(token, "Chess")

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"name": "Chess"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NAME_EXISTS")
}

func TestCreateGameEmptyName(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"name": "  "}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestCreatorIsMember(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice", "secret123")
	gameID := ts.createGame(token, "Chess")

	rr := ts.request(http.MethodGet, "/api/games/1/members", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Members []response.Membership `json:"members"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Members, 1)
	assert.Equal(t, gameID, resp.Members[0].GameID)
}

func TestJoinGame(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerAndLogin("alice", "secret123")
	bobToken := ts.registerAndLogin("bob", "secret456")
	ts.createGame(aliceToken, "Chess")

	rr := ts.request(http.MethodPost, "/api/games/1/join", nil, bobToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/games/1/members", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Members []response.Membership `json:"members"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Members, 2)
}

func TestJoinGameTwice(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerAndLogin("alice", "secret123")
	bobToken := ts.registerAndLogin("bob", "secret456")
	ts.createGame(aliceToken, "Chess")

	rr := ts.request(http.MethodPost, "/api/games/1/join", nil, bobToken)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/games/1/join", nil, bobToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_JOINED")
}

func TestJoinMissingGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/games/999/join", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestMembersOfMissingGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/games/999/members", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

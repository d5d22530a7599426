package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/services"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fixedLanguage string

func (v fixedLanguage) Detect(string) string { return string(v) }

type testServer struct {
	app    *fiber.App
	svc    *services.Service
	memory *store.MemoryStore
}

func newTestServer(t *testing.T, adminToken string) *testServer {
	t.Helper()
	memory := store.NewMemoryStore()
	svc := services.New(memory, services.Options{Detector: fixedLanguage("en")})
	server := NewServer(actions.New(svc), Config{
		SessionSecret: testSecret,
		CookieName:    "arcade_session",
		AdminToken:    adminToken,
	})
	return &testServer{app: server.Fiber(), svc: svc, memory: memory}
}

func signSession(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, exts.SessionClaims{
		Name:     "Player " + subject,
		Username: "player" + subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func (v *testServer) do(t *testing.T, method, path, token, body string, headers ...string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if len(body) > 0 {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for idx := 0; idx+1 < len(headers); idx += 2 {
		req.Header.Set(headers[idx], headers[idx+1])
	}

	resp, err := v.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, jsoniter.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (v *testServer) seed(t *testing.T, doc store.Document) {
	t.Helper()
	_, err := v.memory.Create(context.Background(), doc)
	require.NoError(t, err)
}

func TestToggleLike_Anonymous(t *testing.T) {
	srv := newTestServer(t, "")
	srv.seed(t, store.Document{store.FieldID: "p1", store.FieldType: models.KindPost})

	code, body := srv.do(t, fiber.MethodPost, "/api/posts/p1/like", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "ERROR", body["status"])
	assert.Equal(t, "Not signed in", body["error"])
}

func TestToggleLike_SignedIn(t *testing.T) {
	srv := newTestServer(t, "")
	srv.seed(t, store.Document{store.FieldID: "p1", store.FieldType: models.KindPost})
	token := signSession(t, testSecret, "gh-1")

	code, body := srv.do(t, fiber.MethodPost, "/api/posts/p1/like", token, "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "SUCCESS", body["status"])
	assert.Equal(t, true, body["liked"])

	code, body = srv.do(t, fiber.MethodPost, "/api/posts/p1/like", token, "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, false, body["liked"])
}

func TestSession_WrongSecretIsAnonymous(t *testing.T) {
	srv := newTestServer(t, "")
	token := signSession(t, "another-secret", "gh-1")

	code, _ := srv.do(t, fiber.MethodGet, "/api/users/me", token, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, body := srv.do(t, fiber.MethodGet, "/api/users/me", signSession(t, testSecret, "gh-1"), "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "gh-1", body["account_id"])
}

func TestFollow_Self(t *testing.T) {
	srv := newTestServer(t, "")
	author, err := srv.svc.EnsureAuthor(context.Background(), models.Identity{AccountID: "gh-7"})
	require.NoError(t, err)

	code, body := srv.do(t, fiber.MethodPost, "/api/authors/"+author.ID+"/follow", signSession(t, testSecret, "gh-7"), "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "You cannot follow yourself", body["error"])
}

func TestComments_AddAndList(t *testing.T) {
	srv := newTestServer(t, "")
	srv.seed(t, store.Document{store.FieldID: "p1", store.FieldType: models.KindPost})
	token := signSession(t, testSecret, "gh-2")

	code, body := srv.do(t, fiber.MethodPost, "/api/posts/p1/comments", token, `{"comment":"   "}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Comment cannot be empty", body["error"])

	code, body = srv.do(t, fiber.MethodPost, "/api/posts/p1/comments", token, `{"comment":"Nice level design"}`)
	require.Equal(t, fiber.StatusOK, code, body)
	comment := body["comment"].(map[string]any)
	assert.Equal(t, "Nice level design", comment["comment"])

	code, body = srv.do(t, fiber.MethodGet, "/api/posts/p1/comments", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["comments"], 1)

	code, _ = srv.do(t, fiber.MethodDelete, "/api/posts/p1/comments/"+comment["_id"].(string), token, "")
	assert.Equal(t, fiber.StatusOK, code)
}

func TestViews_Increment(t *testing.T) {
	srv := newTestServer(t, "")
	srv.seed(t, store.Document{store.FieldID: "g1", store.FieldType: models.KindGame})

	for i := 1; i <= 2; i++ {
		code, body := srv.do(t, fiber.MethodPost, "/api/games/g1/views", "", "")
		assert.Equal(t, fiber.StatusOK, code)
		assert.EqualValues(t, i, body["views"])
	}

	code, _ := srv.do(t, fiber.MethodPost, "/api/games/missing/views", "", "")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAdmin_Token(t *testing.T) {
	disabled := newTestServer(t, "")
	code, _ := disabled.do(t, fiber.MethodPost, "/admin/fix-keys", "", "")
	assert.Equal(t, fiber.StatusForbidden, code)

	srv := newTestServer(t, "s3cret")
	code, _ = srv.do(t, fiber.MethodPost, "/admin/fix-keys", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, body := srv.do(t, fiber.MethodPost, "/admin/fix-keys", "", "", exts.AdminTokenHeader, "s3cret")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "SUCCESS", body["status"])
	assert.EqualValues(t, 0, body["updatedCount"])
}

func TestAdmin_BackfillViews(t *testing.T) {
	srv := newTestServer(t, "s3cret")
	for _, id := range []string{"g1", "g2", "g3"} {
		srv.seed(t, store.Document{store.FieldID: id, store.FieldType: models.KindGame})
	}

	code, body := srv.do(t, fiber.MethodPost, "/admin/views/init?kind=game", "", "", exts.AdminTokenHeader, "s3cret")
	assert.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 3, body["updatedCount"])

	code, body = srv.do(t, fiber.MethodPost, "/admin/views/init?kind=game", "", "", exts.AdminTokenHeader, "s3cret")
	assert.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 0, body["updatedCount"])

	code, body = srv.do(t, fiber.MethodPost, "/admin/views/init?kind=author", "", "", exts.AdminTokenHeader, "s3cret")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "ERROR", body["status"])
}

func TestAdmin_StoreCheck(t *testing.T) {
	srv := newTestServer(t, "s3cret")
	code, body := srv.do(t, fiber.MethodGet, "/admin/store-check", "", "", exts.AdminTokenHeader, "s3cret")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "SUCCESS", body["status"])
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/feedback-board/config"
	"github.com/oksasatya/feedback-board/internal/container"
	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine wires every module against a lazy Mongo client and no Postgres
// pool. Only routes that stop before touching a store are exercised.
func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		MongoSuggestionsCollection: "suggestions",
		DebugMetricsEnabled:        debug,
	}
	c := &container.Container{
		Config:  cfg,
		Logger:  logger,
		Mongo:   client.Database("feedback_test"),
		JWT:     helpers.NewJWTManager("a", "r", time.Hour, time.Hour),
		Cookies: helpers.NewCookie("", false),
	}

	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg, c)
	reg.RegisterAll()
	return e
}

func routeSet(e *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, r := range e.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestInitModules_Routes(t *testing.T) {
	routes := routeSet(newEngine(t, false))

	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/logout",
		"GET /api/auth",
		"PATCH /api/auth/update-user",
		"DELETE /api/auth/delete-user/:id",
		"POST /api/auth/avatar",
		"GET /api/suggestions",
		"GET /api/suggestions/search",
		"GET /api/suggestions/:id",
		"POST /api/suggestions",
		"PATCH /api/suggestions/:id",
		"DELETE /api/suggestions/:id",
		"DELETE /api/suggestions",
		"PATCH /api/suggestions/upvote/:id",
		"PATCH /api/suggestions/comment/:id",
		"DELETE /api/suggestions/comment/:id",
		"PATCH /api/suggestions/reply/:id",
		"GET /api/roadmap",
		"GET /api/roadmap/full",
		"GET /api/healthz",
	} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["GET /api/debug/vars"])
}

func TestInitModules_DebugVarsWhenEnabled(t *testing.T) {
	e := newEngine(t, true)
	assert.True(t, routeSet(e)["GET /api/debug/vars"])

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "suggestions")
}

func TestInitModules_MutationsNeedCookies(t *testing.T) {
	e := newEngine(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/suggestions"},
		{http.MethodPatch, "/api/suggestions/upvote/abc"},
		{http.MethodDelete, "/api/suggestions/comment/abc"},
		{http.MethodDelete, "/api/suggestions"},
		{http.MethodGet, "/api/auth"},
		{http.MethodPost, "/api/auth/avatar"},
	} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

func TestInitModules_AdminRoutesNeedRole(t *testing.T) {
	e := newEngine(t, false)
	jwt := helpers.NewJWTManager("a", "r", time.Hour, time.Hour)
	access, _, err := jwt.GenerateAccessToken(entity.TokenUser{UserID: "u1", Username: "jd", Role: entity.RoleUser})
	require.NoError(t, err)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth"},
		{http.MethodDelete, "/api/auth/delete-user/u2"},
		{http.MethodDelete, "/api/suggestions"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: access})
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, tc.method+" "+tc.path)
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/feedback-board/internal/application"
	"github.com/oksasatya/feedback-board/internal/domain/entity"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
	"github.com/oksasatya/feedback-board/internal/mocks"
	"github.com/oksasatya/feedback-board/pkg/helpers"
	"github.com/oksasatya/feedback-board/pkg/validation"
)

var member = entity.TokenUser{UserID: "u1", Username: "jd", Role: entity.RoleUser}

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func asUser(u entity.TokenUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserKey, u)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func suggestionRouter(r *mocks.MockSuggestionRepository, actor entity.TokenUser) *gin.Engine {
	logger, _ := test.NewNullLogger()
	h := NewSuggestionHandler(application.NewSuggestionService(r, nil, logger), logger)
	e := gin.New()
	g := e.Group("/api/suggestions")
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	authed := g.Group("", asUser(actor))
	authed.POST("", h.Create)
	authed.PATCH("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
	authed.PATCH("/upvote/:id", h.Upvote)
	authed.PATCH("/comment/:id", h.CreateComment)
	authed.DELETE("/comment/:id", h.DeleteComment)
	authed.PATCH("/reply/:id", h.CreateReply)
	return e
}

func TestSuggestionHandler_List(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("Count", mock.Anything, []string{"ui", "ux"}).Return(int64(1), nil)
	r.On("Find", mock.Anything, mock.Anything).Return([]entity.Suggestion{{ID: "s1", Title: "Dark mode"}}, nil)
	r.On("Breakdown", mock.Anything).Return(&entity.Breakdown{
		Statuses:   []entity.StatusCount{{Status: entity.StatusSuggestion, Count: 1}},
		Categories: []entity.Category{entity.CategoryUI},
	}, nil)

	w := doJSON(suggestionRouter(r, member), http.MethodGet, "/api/suggestions?c=ui,ux&s=-upvotes&p=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 1, body["numOfPages"])
	assert.EqualValues(t, 1, body["currentPage"])
	assert.Len(t, body["suggestions"], 1)
	assert.Equal(t, []any{map[string]any{"_id": "suggestion", "count": float64(1)}}, body["roadmap"])
	assert.Equal(t, []any{"ui"}, body["categories"])
}

func TestSuggestionHandler_GetNotFound(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("GetByID", mock.Anything, "nope").Return(nil, repo.ErrNotFound)

	w := doJSON(suggestionRouter(r, member), http.MethodGet, "/api/suggestions/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No suggestion with id nope", body["msg"])
}

func TestSuggestionHandler_SearchRouteIsNotAnID(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)

	w := doJSON(suggestionRouter(r, member), http.MethodGet, "/api/suggestions/search?q=dark", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["suggestions"])
	r.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSuggestionHandler_Create(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("Create", mock.Anything, mock.AnythingOfType("*entity.Suggestion")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Suggestion).ID = "s1"
	}).Return(nil)

	w := doJSON(suggestionRouter(r, member), http.MethodPost, "/api/suggestions",
		map[string]string{"title": "Dark mode", "description": "Please", "category": "ui"})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	s := body["suggestion"].(map[string]any)
	assert.Equal(t, "s1", s["id"])
	assert.Equal(t, "ui", s["category"])
	assert.Equal(t, "suggestion", s["status"])
	assert.Equal(t, "u1", s["createdBy"])
}

func TestSuggestionHandler_CreateValidation(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)

	w := doJSON(suggestionRouter(r, member), http.MethodPost, "/api/suggestions",
		map[string]string{"title": "Dark mode", "description": "x", "category": "misc"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	details := decode(t, w)["error"].(map[string]any)
	assert.Contains(t, details, "category")
	r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSuggestionHandler_UpdateForbidden(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("Update", mock.Anything, "s1", "u1", mock.Anything).Return(nil, repo.ErrNotFound)
	r.On("GetByID", mock.Anything, "s1").Return(&entity.Suggestion{ID: "s1", CreatedBy: "u9"}, nil)

	w := doJSON(suggestionRouter(r, member), http.MethodPatch, "/api/suggestions/s1", map[string]string{"title": "x"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized to update suggestion", decode(t, w)["msg"])
}

func TestSuggestionHandler_Upvote(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("ToggleUpvote", mock.Anything, "s1", "u1").Return(&entity.Suggestion{ID: "s1", Upvotes: 1, UpvotedBy: []string{"u1"}}, nil)

	w := doJSON(suggestionRouter(r, member), http.MethodPatch, "/api/suggestions/upvote/s1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	s := decode(t, w)["suggestion"].(map[string]any)
	assert.EqualValues(t, 1, s["upvotes"])
}

func TestSuggestionHandler_DeleteCommentMissingIsNull(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("RemoveComment", mock.Anything, "c9", "u1").Return(nil, nil)
	r.On("CommentExists", mock.Anything, "c9").Return(false, nil)

	w := doJSON(suggestionRouter(r, member), http.MethodDelete, "/api/suggestions/comment/c9", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "suggestion")
	assert.Nil(t, body["suggestion"])
}

func TestSuggestionHandler_ReplyRequiresContent(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)

	w := doJSON(suggestionRouter(r, member), http.MethodPatch, "/api/suggestions/reply/c1", map[string]string{"replyingTo": "jd"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionHandler_InternalErrorHidden(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("GetByID", mock.Anything, "s1").Return(nil, errors.New("mongo: no reachable servers"))

	w := doJSON(suggestionRouter(r, member), http.MethodGet, "/api/suggestions/s1", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong, try again later", decode(t, w)["msg"])
}

func TestRoadmapHandler(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("CountByStatus", mock.Anything, entity.RoadmapStatuses).Return(map[entity.Status]int{entity.StatusLive: 3}, nil)
	h := NewRoadmapHandler(application.NewRoadmapService(r), nil)
	e := gin.New()
	e.GET("/api/roadmap", h.Counts)

	w := doJSON(e, http.MethodGet, "/api/roadmap", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"planned": float64(0), "inProgress": float64(0), "live": float64(3)}, decode(t, w)["roadmap"])
}

func authRouter(r *mocks.MockUserRepository, avatars application.AvatarStore, actor entity.TokenUser) *gin.Engine {
	logger, _ := test.NewNullLogger()
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)
	svc := application.NewUserService(r, jwt, avatars, logger)
	cookies := helpers.NewCookie("", false)
	auth := NewAuthHandler(svc, cookies, logger)
	users := NewUserHandler(svc, cookies, logger)

	e := gin.New()
	g := e.Group("/api/auth")
	g.POST("/register", auth.Register)
	g.POST("/login", auth.Login)
	g.GET("/logout", auth.Logout)
	g.GET("", users.List)
	g.PATCH("/update-user", users.Update)
	g.DELETE("/delete-user/:id", users.Delete)
	g.POST("/avatar", asUser(actor), users.UploadAvatar)
	return e
}

func TestAuthHandler_Register(t *testing.T) {
	r := new(mocks.MockUserRepository)
	r.On("GetByEmail", mock.Anything, "jd@example.com").Return(nil, repo.ErrNotFound)
	r.On("GetByUsername", mock.Anything, "jd").Return(nil, repo.ErrNotFound)
	r.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = "u1"
	}).Return(nil)

	w := doJSON(authRouter(r, nil, member), http.MethodPost, "/api/auth/register", map[string]string{
		"username": "jd", "email": "jd@example.com", "password": "secret1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "u1", user["userId"])
	assert.NotContains(t, user, "password")
	assert.Len(t, w.Header().Values("Set-Cookie"), 2)
}

func TestAuthHandler_RegisterTakenUsername(t *testing.T) {
	r := new(mocks.MockUserRepository)
	r.On("GetByEmail", mock.Anything, "other@example.com").Return(nil, repo.ErrNotFound)
	r.On("GetByUsername", mock.Anything, "jd").Return(&entity.User{ID: "u1", Username: "jd"}, nil)

	w := doJSON(authRouter(r, nil, member), http.MethodPost, "/api/auth/register", map[string]string{
		"username": "jd", "email": "other@example.com", "password": "secret1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decode(t, w)["msg"])
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestAuthHandler_RegisterInvalidEmail(t *testing.T) {
	r := new(mocks.MockUserRepository)

	w := doJSON(authRouter(r, nil, member), http.MethodPost, "/api/auth/register", map[string]string{
		"username": "jd", "email": "nope", "password": "secret1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email must be a valid email", decode(t, w)["msg"])
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	r := new(mocks.MockUserRepository)
	r.On("GetByUsername", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)
	e := authRouter(r, nil, member)

	w := doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{"username": "jd"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(e, http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["msg"])
}

func TestAuthHandler_Logout(t *testing.T) {
	w := doJSON(authRouter(new(mocks.MockUserRepository), nil, member), http.MethodGet, "/api/auth/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 2)
	assert.Contains(t, cookies[0], "Max-Age=0")
}

func TestUserHandler_UpdateUnknownUser(t *testing.T) {
	r := new(mocks.MockUserRepository)
	r.On("GetByID", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)

	w := doJSON(authRouter(r, nil, member), http.MethodPatch, "/api/auth/update-user", map[string]string{"id": "ghost"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User does not exist", decode(t, w)["msg"])
}

func TestUserHandler_Delete(t *testing.T) {
	r := new(mocks.MockUserRepository)
	r.On("Delete", mock.Anything, "u1").Return(nil)

	w := doJSON(authRouter(r, nil, member), http.MethodDelete, "/api/auth/delete-user/u1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user deleted", decode(t, w)["msg"])
}

func TestUserHandler_UploadAvatar(t *testing.T) {
	r := new(mocks.MockUserRepository)
	store := new(mocks.MockAvatarStore)
	r.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", Username: "jd"}, nil)
	r.On("Update", mock.Anything, mock.Anything).Return(nil)
	store.On("Put", mock.Anything, mock.Anything, "image/png", mock.Anything).Return("https://cdn/x.png", nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="avatar"; filename="me.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	authRouter(r, store, member).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://cdn/x.png", decode(t, w)["user"].(map[string]any)["image"])
	assert.Len(t, w.Header().Values("Set-Cookie"), 2)
}

func TestHealthHandler(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("refused") })

	e := gin.New()
	e.GET("/up", NewHealthHandler(map[string]Pinger{"postgres": ok}).Health)
	e.GET("/down", NewHealthHandler(map[string]Pinger{"postgres": ok, "mongo": down}).Health)

	assert.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/up", nil).Code)
	w := doJSON(e, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "refused", decode(t, w)["checks"].(map[string]any)["mongo"])
}

package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onboarding_backend/internal/config"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/testutil"
	"onboarding_backend/internal/util"
	"onboarding_backend/pkg/messaging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret-with-enough-length"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)

	videos := make([]config.VideoConfig, 0, 4)
	for n := 1; n <= 4; n++ {
		videos = append(videos, config.VideoConfig{Number: n, Title: fmt.Sprintf("Video %d", n), URL: "/v.mp4", Duration: 100})
	}
	cfg := &config.Config{
		JWT:        config.JWTConfig{Secret: testSecret},
		Storage:    config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		Onboarding: config.OnboardingConfig{WaitingPath: "/waiting", Videos: videos},
	}

	a := &App{Config: cfg, DB: db, Redis: rdb, Events: messaging.NopPublisher{}}
	repos := a.initRepositories(db, rdb, cfg)
	ctrls := a.initControllers(a.initServices(repos, cfg))

	router := gin.New()
	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, ctrls, repos, cfg)
	return &testServer{router: router, db: db}
}

func tokenFor(t *testing.T, user *model.User) string {
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOnboardingRoutes_Auth(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/onboarding/state", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/api/onboarding/state", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	recruiter := &model.User{Name: "R", Email: "r@example.com", Role: model.RoleRecruiter}
	require.NoError(t, s.db.Create(recruiter).Error)
	code, _ = s.do(t, http.MethodGet, "/api/onboarding/state", tokenFor(t, recruiter), nil)
	assert.Equal(t, http.StatusForbidden, code)

	orphan := &model.User{Name: "O", Email: "o@example.com", Role: model.RoleApplicant}
	require.NoError(t, s.db.Create(orphan).Error)
	code, env := s.do(t, http.MethodGet, "/api/onboarding/state", tokenFor(t, orphan), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, util.ErrApplicantNotFound.Error(), env.Message)
}

func TestOnboardingRoutes_BadRequests(t *testing.T) {
	s := newTestServer(t)
	user, _ := testutil.SeedApplicant(t, s.db)
	token := tokenFor(t, user)

	code, _ := s.do(t, http.MethodPost, "/api/onboarding/session", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/videos/1/progress", token, map[string]interface{}{"total": 100})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/videos/abc/progress", token, map[string]interface{}{"watched": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(t, http.MethodPost, "/api/onboarding/videos/3/progress", token, map[string]interface{}{"watched": 1})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, util.ErrVideoLocked.Error(), env.Message)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/steps/9", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, "/api/onboarding/proceed-to-quiz", token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, util.ErrVideosIncomplete.Error(), env.Message)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/videos/1/playback-error", token, map[string]interface{}{"reason": "decode error"})
	assert.Equal(t, http.StatusOK, code)
}

func TestOnboardingRoutes_FullFlow(t *testing.T) {
	s := newTestServer(t)
	user, applicant := testutil.SeedApplicant(t, s.db)
	token := tokenFor(t, user)

	code, env := s.do(t, http.MethodPost, "/api/onboarding/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	var state struct {
		Phase       string `json:"phase"`
		ActiveVideo int    `json:"activeVideo"`
		Completed   bool   `json:"completed"`
		Redirect    string `json:"redirect"`
		Status      string `json:"applicationStatus"`
		Quiz        *struct {
			Result *struct {
				Score  int  `json:"score"`
				Passed bool `json:"passed"`
			} `json:"result"`
		} `json:"quiz"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, "videos", state.Phase)
	assert.Equal(t, 1, state.ActiveVideo)

	for n := 1; n <= 4; n++ {
		code, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/onboarding/videos/%d/progress", n), token, map[string]interface{}{"watched": 99, "total": 100})
		require.Equal(t, http.StatusOK, code, env.Message)
	}

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/proceed-to-quiz", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/api/onboarding/quiz/next", token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, util.ErrAnswerRequired.Error(), env.Message)

	for i, option := range []int{2, 0, 1, 0, 1, 1} {
		code, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/onboarding/quiz/answers/%d", i), token, map[string]interface{}{"option": option})
		require.Equal(t, http.StatusOK, code, env.Message)
		code, env = s.do(t, http.MethodPost, "/api/onboarding/quiz/next", token, nil)
		require.Equal(t, http.StatusOK, code, env.Message)
	}
	require.NoError(t, json.Unmarshal(env.Data, &state))
	require.NotNil(t, state.Quiz)
	require.NotNil(t, state.Quiz.Result)
	assert.True(t, state.Quiz.Result.Passed)
	assert.Equal(t, 6, state.Quiz.Result.Score)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/quiz/continue", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/api/onboarding/commitment/complete", token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, util.ErrCommitmentIncomplete.Error(), env.Message)

	code, _ = s.do(t, http.MethodPut, "/api/onboarding/commitment", token, map[string]interface{}{
		"acknowledged": true, "ready": true, "canDoMobile": false,
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/commitment/strokes", token, map[string]interface{}{"points": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/onboarding/commitment/strokes", token, map[string]interface{}{
		"points": []map[string]float64{{"x": 10, "y": 20}, {"x": 200, "y": 120}},
	})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/api/onboarding/commitment/complete", token, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.True(t, state.Completed)
	assert.Equal(t, "/waiting", state.Redirect)
	assert.Equal(t, string(model.StatusWaitlist), state.Status)

	saved := testutil.ReloadApplicant(t, s.db, applicant.ID)
	assert.True(t, saved.HasSigned())
	require.NotNil(t, saved.CanDoMobile)
	assert.False(t, *saved.CanDoMobile)

	var reloaded model.User
	require.NoError(t, s.db.First(&reloaded, user.ID).Error)
	assert.Equal(t, model.StatusWaitlist, reloaded.ApplicationStatus)

	code, env = s.do(t, http.MethodGet, "/api/onboarding/state", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.True(t, state.Completed)

	code, env = s.do(t, http.MethodPost, "/api/onboarding/commitment/complete", token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, util.ErrAlreadySigned.Error(), env.Message)
}

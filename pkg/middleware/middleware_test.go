package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/mocks"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// echoActor records what the protected handler saw.
type echoActor struct {
	called bool
	actor  *access.Actor
	token  string
}

func (e *echoActor) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.called = true
		e.actor = utils.GetActorFromContext(r.Context())
		e.token, _ = utils.GetTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Code
}

func TestAuthSession(t *testing.T) {
	token := uuid.NewString()
	user := &access.Actor{ID: uuid.New(), Role: entity.RoleUser}

	tests := []struct {
		name       string
		header     string
		setupMocks func(m *mocks.MockAuthService)
		wantStatus int
		wantCode   string
		wantActor  *access.Actor
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "wrong scheme",
			header:     "Token " + token,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:   "expired session",
			header: "Bearer " + token,
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, token).Return(nil, apperr.Unauthorized("invalid or expired session"))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:   "valid session",
			header: "bearer " + token,
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, token).Return(user, nil)
			},
			wantStatus: http.StatusOK,
			wantActor:  user,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mocks.MockAuthService)
			defer auth.AssertExpectations(t)
			if tt.setupMocks != nil {
				tt.setupMocks(auth)
			}

			echo := &echoActor{}
			h := AuthSession(auth, zaptest.NewLogger(t))(echo.handler())

			req := httptest.NewRequest(http.MethodGet, "/api/reservations/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.False(t, echo.called)
				assert.Equal(t, tt.wantCode, decodeCode(t, rec))
				return
			}
			assert.Equal(t, tt.wantActor, echo.actor)
			assert.Equal(t, token, echo.token)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous passes through", func(t *testing.T) {
		auth := new(mocks.MockAuthService)
		echo := &echoActor{}
		h := OptionalAuth(auth, zaptest.NewLogger(t))(echo.handler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, echo.called)
		assert.Nil(t, echo.actor)
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("invalid token is still rejected", func(t *testing.T) {
		auth := new(mocks.MockAuthService)
		auth.On("Authenticate", mock.Anything, "stale").Return(nil, apperr.Unauthorized("invalid or expired session"))
		echo := &echoActor{}
		h := OptionalAuth(auth, zaptest.NewLogger(t))(echo.handler())

		req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, echo.called)
	})
}

func TestGate(t *testing.T) {
	gate := access.ReadOnlyExceptAdmin{AllowAnonymousReads: true}

	tests := []struct {
		name       string
		method     string
		actor      *access.Actor
		wantStatus int
	}{
		{name: "anonymous read", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "anonymous head", method: http.MethodHead, wantStatus: http.StatusOK},
		{name: "anonymous write", method: http.MethodPost, wantStatus: http.StatusUnauthorized},
		{name: "user write", method: http.MethodPost, actor: &access.Actor{ID: uuid.New(), Role: entity.RoleUser}, wantStatus: http.StatusForbidden},
		{name: "manager write", method: http.MethodPut, actor: &access.Actor{ID: uuid.New(), Role: entity.RoleManager}, wantStatus: http.StatusForbidden},
		{name: "admin write", method: http.MethodPost, actor: &access.Actor{ID: uuid.New(), Role: entity.RoleAdmin}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			echo := &echoActor{}
			h := Gate(gate, zaptest.NewLogger(t))(echo.handler())

			req := httptest.NewRequest(tt.method, "/api/movies", nil)
			req = req.WithContext(utils.SetActorContext(req.Context(), tt.actor))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, echo.called)
		})
	}
}

func TestCORS(t *testing.T) {
	echo := &echoActor{}
	h := CORS([]string{"https://tickets.example.com"})(echo.handler())

	t.Run("allowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
		req.Header.Set("Origin", "https://tickets.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://tickets.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("disallowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(echo.handler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecover(t *testing.T) {
	h := Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeCode(t, rec))
}

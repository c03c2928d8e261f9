package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/snowcodeer/perplexitree/auth"
	"github.com/snowcodeer/perplexitree/logger"
	"github.com/snowcodeer/perplexitree/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSubject(w http.ResponseWriter, r *http.Request) {
	subject, _ := utils.GetSubject(r)
	_, _ = w.Write([]byte(subject))
}

func TestRequireTokenWithoutSecretPassesThrough(t *testing.T) {
	h := RequireToken("", logger.Nop())(echoSubject)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireToken(t *testing.T) {
	h := RequireToken("s3cret", logger.Nop())(echoSubject)
	token, err := auth.CreateToken("s3cret", "gardener", time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gardener", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := RequestLogger(logger.Nop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

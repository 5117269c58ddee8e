package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/store/memory"
	"ENW_BACK-END/internal/utils"
)

type downStore struct{ store.Store }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestReadinessCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(memory.New(), "test").ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(downStore{memory.New()}, "test").ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]any{"db": "connection refused"}, body["details"])
}

func TestAdapterRendersReturnedErrors(t *testing.T) {
	a := Adapter{Errors: utils.ErrorWriter{}}
	h := a.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return apperr.NotFound("Post")
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found")
}

func TestSlugParam(t *testing.T) {
	tests := map[string]bool{
		"why-community-support-matters": true,
		"post-2":                        true,
		"Upper-Case":                    false,
		"under_score":                   true,
		"_x":                            false,
		"x_":                            false,
		"-x":                            false,
		"":                              false,
	}
	for value, valid := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetPathValue("slug", value)
		_, err := slugParam(req)
		assert.Equal(t, valid, err == nil, value)
	}
}

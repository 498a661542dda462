package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/health/live", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status string `json:"status"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, "ok", body.Status)
	})

	t.Run("readiness with a reachable store", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/health/ready", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status string `json:"status"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, "ready", body.Status)
	})
}

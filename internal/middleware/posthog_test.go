package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEventNameForRoute(t *testing.T) {
	assert.Equal(t, "post_conciliations_id_complete", EventNameForRoute(http.MethodPost, "/api/v1/conciliations/:id/complete"))
	assert.Equal(t, "get_accounting_entries_concar_export", EventNameForRoute(http.MethodGet, "/api/v1/accounting-entries/concar-export"))
	assert.Equal(t, "", EventNameForRoute(http.MethodGet, ""))
	assert.Equal(t, "", EventNameForRoute(http.MethodGet, "/api/v1/"))
}

func TestAddEventProperty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	AddEventProperty(c, "matched", 2)
	AddEventProperty(c, "unmatched", 1)

	props, ok := c.Get(eventPropsKey)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"matched": 2, "unmatched": 1}, props)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/accounting_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
)

// eventPropsKey holds extra analytics properties attached by handlers during the request.
const eventPropsKey = "posthog_event_props"

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks one event per successful authenticated API call.
// The event name is derived from the route, e.g. POST /api/v1/conciliations/:id/complete
// becomes "post_conciliations_id_complete".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventNameForRoute(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}
		if extra, ok := c.Get(eventPropsKey); ok {
			for k, v := range extra.(map[string]any) {
				props[k] = v
			}
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// AddEventProperty attaches a property to the analytics event emitted for this request.
func AddEventProperty(c *gin.Context, key string, value any) {
	props, ok := c.Get(eventPropsKey)
	if !ok {
		props = make(map[string]any)
		c.Set(eventPropsKey, props)
	}
	props.(map[string]any)[key] = value
}

// EventNameForRoute turns a route template into a flat event name.
func EventNameForRoute(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	path := strings.TrimPrefix(fullPath, "/api/v1")
	path = strings.Trim(path, "/")
	path = strings.ReplaceAll(path, ":", "")
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "-", "_")
	if path == "" {
		return ""
	}
	return strings.ToLower(method) + "_" + path
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/cron"
	"github.com/egspgoi/projectverse/internal/session"
	"github.com/egspgoi/projectverse/internal/workflow"
)

// Handlers bundles the dependencies every portal handler needs. The
// client and the workflow controller are process-wide; the session is
// read per request by the middleware.
type Handlers struct {
	client   *client.Client
	sessions *session.Manager
	flow     *workflow.Controller
	monitor  *cron.Monitor
}

// renderError converts a client failure into the portal's JSON answer.
// A session-invalidated code tears the cookie down and tells the front
// end to force a fresh login; everything else surfaces the service's
// message (or the HTTP status fallback) as a dismissable failure.
func (h *Handlers) renderError(c *gin.Context, err error) {
	if errors.Is(err, client.ErrNoSession) || errors.Is(err, session.ErrNoSession) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in", "redirect": "/"})
		return
	}

	if errors.Is(err, workflow.ErrSelectionInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if client.IsSessionInvalidated(err) {
			h.sessions.Clear(c)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":          apiErr.Message,
				"code":           apiErr.Code,
				"sessionExpired": true,
				"redirect":       "/",
			})
			return
		}
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message, "code": apiErr.Code})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": "Allocation service unavailable. Please try again."})
}

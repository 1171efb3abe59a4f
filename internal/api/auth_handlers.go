package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/models"
	"github.com/egspgoi/projectverse/internal/session"
)

// LoginRequest is the portal's sign-in payload. Batch accounts log in by
// username, admin and faculty by email; the identifier covers both.
type LoginRequest struct {
	Role       models.Role `json:"role" binding:"required,oneof=admin faculty batch"`
	Identifier string      `json:"identifier" binding:"required"`
	Password   string      `json:"password" binding:"required"`
}

func (r LoginRequest) credentials() client.Credentials {
	creds := client.Credentials{Password: r.Password}
	if r.Role == models.RoleBatch {
		creds.Username = r.Identifier
	} else {
		creds.Email = r.Identifier
	}
	return creds
}

func (h *Handlers) finishLogin(c *gin.Context, role models.Role, res *client.LoginResult) {
	if res.Role.Valid() {
		role = res.Role
	}
	sess := session.Session{
		Token:    res.Token,
		UserID:   res.UserID,
		Role:     role,
		UserName: res.UserName,
	}
	if err := h.sessions.Issue(c, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":     gin.H{"id": sess.UserID, "role": sess.Role, "name": sess.UserName},
		"redirect": "/u/portal/" + string(sess.Role),
	})
}

// Login godoc
// @Summary      Sign in
// @Description  Authenticates against the allocation service and starts a portal session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "Credentials"
// @Success      200   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Failure      401   {object} map[string]string
// @Failure      409   {object} map[string]string "Account active on another device"
// @Router       /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.client.Login(c.Request.Context(), req.credentials(), req.Role)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// Not an error: the user decides between cancelling and forcing.
	if res.AlreadyLoggedIn {
		c.JSON(http.StatusConflict, gin.H{
			"code":    client.CodeAlreadyLoggedIn,
			"message": "You are already logged in on another device.",
		})
		return
	}

	h.finishLogin(c, req.Role, res)
}

// ForceLogin godoc
// @Summary      Force sign in
// @Description  Terminates the session on the other device and signs in here
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "Credentials"
// @Success      200   {object} map[string]interface{}
// @Failure      401   {object} map[string]string
// @Router       /auth/force-login [post]
func (h *Handlers) ForceLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.client.ForceLogin(c.Request.Context(), req.credentials(), req.Role)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.finishLogin(c, req.Role, res)
}

// Logout godoc
// @Summary      Sign out
// @Description  Notifies the allocation service best-effort and clears the session
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if s, err := h.sessions.Read(c); err == nil {
		h.client.Logout(c.Request.Context(), s.Token)
	}
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out", "redirect": "/"})
}

// Me godoc
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     SessionCookie
// @Router       /me [get]
func (h *Handlers) Me(c *gin.Context) {
	s := session.FromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{"id": s.UserID, "role": s.Role, "name": s.UserName},
	})
}

// InvalidateFileToken burns a one-shot document-viewer token when the
// viewer closes.
func (h *Handlers) InvalidateFileToken(c *gin.Context) {
	s := session.FromContext(c)
	if err := h.client.InvalidateFileToken(c.Request.Context(), s.Token, c.Param("token")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token invalidated"})
}

// Health godoc
// @Summary      Portal health
// @Description  Reports the latest scheduled probe of the allocation service
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /health [get]
func (h *Handlers) Health(c *gin.Context) {
	status := h.monitor.Status()
	if !status.Reachable {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "upstream": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "upstream": status})
}

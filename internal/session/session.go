// Package session owns the portal-side session bundle: the remote bearer
// token plus user identity, carried in one signed cookie with an explicit
// create/read/clear lifecycle. Nothing else in the repository touches the
// cookie directly.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/egspgoi/projectverse/internal/models"
)

const CookieName = "pv_session"

// contextKey is where middleware stores the parsed session in gin.
const contextKey = "session"

var ErrNoSession = errors.New("no portal session")

// Session is the credential bundle for one signed-in browser: the remote
// service's bearer token plus who the user is. It lives only in the
// cookie; invalidation clears it wholesale.
type Session struct {
	Token    string
	UserID   string
	Role     models.Role
	UserName string
}

// Manager signs and verifies session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue writes a fresh session cookie. Called only after a successful
// login or force-login.
func (m *Manager) Issue(c *gin.Context, s Session) error {
	claims := jwt.MapClaims{
		"tok":  s.Token,
		"sub":  s.UserID,
		"role": string(s.Role),
		"name": s.UserName,
		"exp":  time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, int(m.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Read parses and verifies the session cookie.
func (m *Manager) Read(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}

	s := &Session{}
	s.Token, _ = claims["tok"].(string)
	s.UserID, _ = claims["sub"].(string)
	s.UserName, _ = claims["name"].(string)
	if role, ok := claims["role"].(string); ok {
		s.Role = models.Role(role)
	}
	if s.Token == "" || s.UserID == "" || !s.Role.Valid() {
		return nil, ErrNoSession
	}
	return s, nil
}

// Clear removes the cookie. Used by logout and by the forced teardown
// after a SESSION_TERMINATED / TOKEN_EXPIRED answer from the service.
func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// FromContext returns the session the middleware attached to the request.
func FromContext(c *gin.Context) *Session {
	s, _ := c.Get(contextKey)
	sess, _ := s.(*Session)
	return sess
}

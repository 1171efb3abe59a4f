package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/egspgoi/projectverse/internal/api"
	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/config"
	"github.com/egspgoi/projectverse/internal/cron"
	"github.com/egspgoi/projectverse/internal/session"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type portal struct {
	router  *gin.Engine
	client  *client.Client
	monitor *cron.Monitor
}

// newPortal wires the full router against a fake allocation service.
func newPortal(t *testing.T, upstream http.HandlerFunc) *portal {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Port:            "0",
		APIBaseURL:      srv.URL,
		SessionSecret:   testSecret,
		SessionTTL:      time.Hour,
		UpstreamTimeout: 5 * time.Second,
	}
	cli := client.New(cfg.APIBaseURL, cfg.UpstreamTimeout)
	mon := cron.NewMonitor()
	return &portal{router: api.SetupRouter(cfg, cli, mon), client: cli, monitor: mon}
}

// forgeCookie signs a session cookie with the portal's test secret.
func forgeCookie(t *testing.T, s session.Session) *http.Cookie {
	t.Helper()

	m := session.NewManager(testSecret, time.Hour)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, m.Issue(c, s))

	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func (p *portal) do(t *testing.T, method, path string, body any, ck *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(data)
	} else {
		payload = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ck != nil {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// sessionCookie picks the pv_session cookie out of a response, nil when
// none was set.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	return nil
}

func jsonUpstream(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tapr/configs"
	"tapr/entity"
	"tapr/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	*App
	db  *gorm.DB
	cfg *configs.Config
}

func newTestApp(t *testing.T, opts ...func(*configs.Config)) *testApp {
	t.Helper()
	cfg := testutil.Config()
	for _, o := range opts {
		o(cfg)
	}
	db := testutil.NewDB(t)
	testutil.SeedDemo(t, db)
	return &testApp{App: New(cfg, db, testutil.Logger()), db: db, cfg: cfg}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Fields  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func (a *testApp) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "tapr_token" {
			return c
		}
	}
	t.Fatalf("no session cookie in response: %v", rec.Header())
	return nil
}

// login creates a user with role and returns its session cookie.
func (a *testApp) login(t *testing.T, email, role string) *http.Cookie {
	t.Helper()
	testutil.CreateUser(t, a.db, email, "password123", role)
	rec := a.do(t, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func (a *testApp) customer(t *testing.T) *http.Cookie {
	return a.login(t, "customer@tapr.app", entity.RoleCustomer)
}

func (a *testApp) admin(t *testing.T) *http.Cookie {
	return a.login(t, "admin@tapr.app", entity.RoleAdmin)
}

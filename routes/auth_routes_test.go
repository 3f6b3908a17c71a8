package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tapr/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SetsCookieAndReturnsPublicUser(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Nessa","email":"Newcomer@Tapr.app","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.False(t, cookie.Secure)

	var id struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
	assert.JSONEq(t,
		`{"success":true,"data":{"id":"`+id.Data.ID+`","name":"Nessa","email":"newcomer@tapr.app"}}`,
		rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	// the cookie alone authenticates
	me := app.do(t, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.JSONEq(t, rec.Body.String(), me.Body.String())
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t)

	first := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"First","email":"dup@tapr.app","password":"password123"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Somebody Else","email":"dup@tapr.app","password":"different-password"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	env := decode(t, second)
	assert.False(t, env.Success)
	assert.Equal(t, "Email already registered", env.Error)
	assert.Empty(t, second.Result().Cookies())
}

func TestRegister_Validation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFields []string
		wantError  string
	}{
		{
			name:       "every field invalid",
			body:       `{"name":"N","email":"not-an-email","password":"short"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"name", "email", "password"},
			wantError:  "Validation failed",
		},
		{
			name:       "missing fields",
			body:       `{}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"name", "email", "password"},
			wantError:  "Validation failed",
		},
		{
			name:       "unknown field",
			body:       `{"name":"Nessa","email":"a@tapr.app","password":"password123","role":"admin"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"role"},
			wantError:  "Validation failed",
		},
		{
			name:       "wrong type",
			body:       `{"name":42,"email":"a@tapr.app","password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"name"},
			wantError:  "Validation failed",
		},
		{
			name:       "blank name",
			body:       `{"name":"   ","email":"blank@tapr.app","password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"name"},
			wantError:  "Validation failed",
		},
		{
			name:       "name too short once trimmed",
			body:       `{"name":" a ","email":"short@tapr.app","password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"name"},
			wantError:  "Validation failed",
		},
		{
			name:       "password over 72 bytes",
			body:       `{"name":"Sara","email":"sara@tapr.app","password":"` + strings.Repeat("س", 40) + `"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"password"},
			wantError:  "Validation failed",
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Malformed JSON body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
			var fields []string
			for _, f := range env.Fields {
				fields = append(fields, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)

	wrongPassword := app.do(t, http.MethodPost, "/api/auth/login", `{"email":"nessa@tapr.app","password":"wrong-password"}`)
	unknownEmail := app.do(t, http.MethodPost, "/api/auth/login", `{"email":"ghost@tapr.app","password":"password123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Invalid email or password", decode(t, wrongPassword).Error)
}

func TestLogin_DemoUser(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/login", `{"email":"nessa@tapr.app","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(t, rec)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"email":"nessa@tapr.app"`)

	logout := app.do(t, http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, logout.Code)
	cleared := sessionCookie(t, logout)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestMe_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, rec.Body.String())

	bogus := &http.Cookie{Name: "tapr_token", Value: "not-a-jwt"}
	rec = app.do(t, http.MethodGet, "/api/auth/me", "", bogus)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RateLimited(t *testing.T) {
	app := newTestApp(t, func(c *configs.Config) {
		c.AuthRateLimit = 0.001
		c.AuthRateBurst = 2
	})

	body := `{"email":"ghost@tapr.app","password":"password123"}`
	for i := 0; i < 2; i++ {
		rec := app.do(t, http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := app.do(t, http.MethodPost, "/api/auth/login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests", decode(t, rec).Error)
}

func TestRegister_MultibytePassword(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"سارا","email":"sara@tapr.app","password":"`+strings.Repeat("س", 40)+`"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env := decode(t, rec)
	require.Len(t, env.Fields, 1)
	assert.Equal(t, "password", env.Fields[0].Field)
	assert.Equal(t, "must be at most 72 bytes", env.Fields[0].Message)

	// 36 runes of two bytes each still fits
	password := strings.Repeat("س", 36)
	rec = app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"سارا","email":"sara@tapr.app","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/api/auth/login", `{"email":"sara@tapr.app","password":"`+password+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRegister_StoresTrimmedName(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"  Nessa  ","email":"  padded@tapr.app ","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(decode(t, rec).Data), `"name":"Nessa"`)
	assert.Contains(t, string(decode(t, rec).Data), `"email":"padded@tapr.app"`)
}

func loginFrom(app *testApp, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ghost@tapr.app","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	app.Engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuth_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	app := newTestApp(t, func(c *configs.Config) {
		c.AuthRateLimit = 0.001
		c.AuthRateBurst = 1
	})

	var codes []int
	for i := 0; i < 4; i++ {
		codes = append(codes, loginFrom(app, fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, []int{401, 429, 429, 429}, codes)
}

func TestAuth_RateLimitTrustsConfiguredProxy(t *testing.T) {
	// httptest requests come from 192.0.2.1
	app := newTestApp(t, func(c *configs.Config) {
		c.AuthRateLimit = 0.001
		c.AuthRateBurst = 1
		c.TrustedProxies = []string{"192.0.2.1"}
	})

	assert.Equal(t, http.StatusUnauthorized, loginFrom(app, "10.0.0.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(app, "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(app, "10.0.0.1"))
}

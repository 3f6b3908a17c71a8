package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookie_Attach(t *testing.T) {
	for _, secure := range []bool{false, true} {
		sc := SessionCookie{Name: "tapr_token", TTL: 7 * 24 * time.Hour, Secure: secure}
		w := httptest.NewRecorder()
		sc.Attach(w, "tok")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "tapr_token", c.Name)
		assert.Equal(t, "tok", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, 7*24*60*60, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, secure, c.Secure)
	}
}

func TestSessionCookie_ReadAndClear(t *testing.T) {
	sc := SessionCookie{Name: "tapr_token", TTL: time.Hour}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := sc.Read(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: "tapr_token", Value: "abc"})
	v, ok := sc.Read(r)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	w := httptest.NewRecorder()
	sc.Clear(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

package mux

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"chaingang-server/internal/jwt"
)

var cbg = context.Background()

func Test_authRouter(t *testing.T) {
	m, _ := newTestMux(t)

	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, profileFromContext(r.Context()).DisplayName)
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	assertGet(t, ts, "/test", &errObj, 401, "not-a-token")

	token := signToken(t, "u-1")

	// test using auth header
	var str string
	resp := assertGetWithResp(t, ts, "/test", &str, 200, token)
	assert.Equal(t, "Player u-1", str)
	assert.Equal(t, "u-1", resp.Header.Get("ChainGang-UserID"))

	// test using query parameter
	resp = assertGetWithResp(t, ts, "/test?access_token="+url.QueryEscape(token), &str, 200)
	assert.Equal(t, "Player u-1", str)
	assert.Equal(t, "u-1", resp.Header.Get("ChainGang-UserID"))
}

func TestClaimsProfiles(t *testing.T) {
	a := assert.New(t)

	p, err := ClaimsProfiles{}.Profile(cbg, &jwt.Identity{ID: "u-1"})
	a.NoError(err)
	a.Equal("u-1", p.DisplayName)
	a.Equal(defaultAvatar, p.Avatar)
	a.False(p.IsBot)

	p, _ = ClaimsProfiles{}.Profile(cbg, &jwt.Identity{ID: "u-2", DisplayName: "Bea", Avatar: "🐝"})
	a.Equal("Bea", p.DisplayName)
	a.Equal("🐝", p.Avatar)
}

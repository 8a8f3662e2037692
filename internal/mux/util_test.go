package mux

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaingang-server/internal/jwt"
	"chaingang-server/pkg/game"
	"chaingang-server/pkg/ledger"
	"chaingang-server/pkg/room"
)

var testKey *rsa.PrivateKey

func setupJWT(t *testing.T) {
	t.Helper()

	if testKey == nil {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		testKey = key
	}

	jwt.SetKeys(testKey, &testKey.PublicKey)
}

func signToken(t *testing.T, id string) string {
	t.Helper()

	token, err := jwt.Sign(jwt.Identity{ID: id, DisplayName: "Player " + id}, time.Hour)
	require.NoError(t, err)
	return token
}

func newTestMux(t *testing.T) (*Mux, *ledger.Memory) {
	t.Helper()
	setupJWT(t)

	opts := game.DefaultOptions()
	opts.BotFillDelay = 0

	l := ledger.NewMemory(1000)
	pitBoss := room.NewPitBoss(opts, l, nil)
	pitBoss.StartShift()
	t.Cleanup(pitBoss.EndShift)

	return NewMux("test", Dependencies{
		PitBoss: pitBoss,
		Ledger:  l,
	}), l
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGetWithResp(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	assertGetWithResp(t, ts, path, respObj, statusCode, signedJWT...)
}

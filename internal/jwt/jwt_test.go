package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKeys(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	SetKeys(key, &key.PublicKey)

	return key
}

func signClaims(t *testing.T, key *rsa.PrivateKey, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	signed, err := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, Claims{RegisteredClaims: claims}).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestSignAndValidate(t *testing.T) {
	a := assert.New(t)
	setupKeys(t)

	sign, err := Sign(Identity{ID: "user-18", DisplayName: "Alice", Avatar: "🦊"}, time.Hour)
	a.NoError(err)

	id, err := Validate(sign)
	a.NoError(err)
	a.Equal(&Identity{ID: "user-18", DisplayName: "Alice", Avatar: "🦊"}, id)
}

func TestValidate_InvalidAudience(t *testing.T) {
	key := setupKeys(t)

	signed := signClaims(t, key, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		Issuer:   Issuer,
		Subject:  "15",
	})

	id, err := Validate(signed)
	assert.ErrorIs(t, err, jwtgo.ErrTokenInvalidAudience)
	assert.Nil(t, id)
}

func TestValidate_InvalidIssuer(t *testing.T) {
	key := setupKeys(t)

	signed := signClaims(t, key, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	id, err := Validate(signed)
	assert.ErrorIs(t, err, jwtgo.ErrTokenInvalidIssuer)
	assert.Nil(t, id)
}

func TestValidate_Expired(t *testing.T) {
	key := setupKeys(t)

	signed := signClaims(t, key, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		Issuer:    Issuer,
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(-time.Hour)),
		Subject:   "15",
	})

	id, err := Validate(signed)
	assert.ErrorIs(t, err, jwtgo.ErrTokenExpired)
	assert.Nil(t, id)
}

func TestValidate_MissingSubject(t *testing.T) {
	key := setupKeys(t)

	signed := signClaims(t, key, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
	})

	_, err := Validate(signed)
	assert.Equal(t, ErrMissingSubject, err)
}

func TestValidate_WrongKey(t *testing.T) {
	setupKeys(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signed := signClaims(t, other, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
		Subject:  "15",
	})

	_, err = Validate(signed)
	assert.ErrorIs(t, err, jwtgo.ErrTokenSignatureInvalid)
}

func TestSign_NoPrivateKey(t *testing.T) {
	key := setupKeys(t)
	SetKeys(nil, &key.PublicKey)

	_, err := Sign(Identity{ID: "x"}, 0)
	assert.Error(t, err)
}

func TestLoadKeyFiles(t *testing.T) {
	a := assert.New(t)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.key")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0644))

	a.True(key.Equal(loadPrivateKey(privPath)))
	a.True(key.PublicKey.Equal(loadPublicKey(pubPath)))
}

package jwt

import (
	"crypto/rsa"
	"errors"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chaingang-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "chaingang.poker"

// Audience is the intended JWT audience
const Audience = "chaingang-server"

// ErrMissingSubject is returned when a valid token does not name a user
var ErrMissingSubject = errors.New("token has no subject")

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// Claims are the claims of an identity token
// Name and Avatar are the display profile the identity provider attached to the user.
type Claims struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	jwtgo.RegisteredClaims
}

// Identity is the user a token was issued for
type Identity struct {
	ID          string
	DisplayName string
	Avatar      string
}

// LoadKeys will load the public and private keys
// The private key is optional, without it Sign fails.
func LoadKeys() {
	cfg := config.Instance().JWT
	publicKey = loadPublicKey(cfg.PublicKey)

	if _, err := os.Stat(cfg.PrivateKey); err == nil {
		privateKey = loadPrivateKey(cfg.PrivateKey)
	}
}

// SetKeys replaces the loaded keys
func SetKeys(private *rsa.PrivateKey, public *rsa.PublicKey) {
	privateKey = private
	publicKey = public
}

// Sign will sign a JWT for the user
// A zero ttl issues a token that does not expire
func Sign(id Identity, ttl time.Duration) (string, error) {
	if privateKey == nil {
		return "", errors.New("no private key loaded")
	}

	now := time.Now()
	claims := Claims{
		Name:   id.DisplayName,
		Avatar: id.Avatar,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(now),
			Issuer:   Issuer,
			Subject:  id.ID,
		},
	}

	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(privateKey)
}

// Validate will validate a signed JWT and return the identity it carries
func Validate(signedString string) (*Identity, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	keyFunc := func(token *jwtgo.Token) (interface{}, error) {
		return publicKey, nil
	}

	var claims Claims
	_, err := jwtgo.ParseWithClaims(signedString, &claims, keyFunc,
		jwtgo.WithValidMethods([]string{jwtgo.SigningMethodRS256.Alg()}),
		jwtgo.WithAudience(Audience),
		jwtgo.WithIssuer(Issuer),
	)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Identity{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Avatar:      claims.Avatar,
	}, nil
}

func loadPublicKey(path string) *rsa.PublicKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA public key")
	}

	return pem
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA private key")
	}

	return pem
}

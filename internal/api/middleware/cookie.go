package middleware

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/hkdf"
)

// hkdfInfo pins the derived key to this cookie version; bumping it rotates
// every cookie at once.
const hkdfInfo = "bourgeon-session-cookie-v1"

// CookieCodec issues and reads the signed session-ID cookie. The cookie
// carries only the session ID (as an HS256 JWT subject); tokens never leave
// the server.
type CookieCodec struct {
	name string
	key  []byte
	ttl  time.Duration
}

// NewCookieCodec derives the signing key from the configured secret.
func NewCookieCodec(name, secret string, ttl time.Duration) (*CookieCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("cookie codec: empty session secret")
	}
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cookie codec: derive key: %w", err)
	}
	return &CookieCodec{name: name, key: key, ttl: ttl}, nil
}

// Issue sets the session cookie for the given session ID.
func (cc *CookieCodec) Issue(c echo.Context, sessionID string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cc.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.key)
	if err != nil {
		return fmt.Errorf("cookie codec: sign: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     cc.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cc.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the session ID from a valid cookie, or false.
func (cc *CookieCodec) Read(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(cc.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.key, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// Clear expires the session cookie.
func (cc *CookieCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

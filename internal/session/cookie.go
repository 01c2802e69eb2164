package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims wraps the serialized user in a signed token so clients cannot
// edit the stored record. It proves nothing about identity.
type Claims struct {
	User string `json:"usr"`
	jwt.RegisteredClaims
}

// CookieBackend stores the payload in a cookie as an HS256 JWT.
type CookieBackend struct {
	name   string
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

func NewCookieBackend(name string, secret []byte, maxAge time.Duration, secure bool) *CookieBackend {
	return &CookieBackend{
		name:   name,
		secret: secret,
		maxAge: maxAge,
		secure: secure,
		now:    time.Now,
	}
}

func (b *CookieBackend) Name() string { return "cookie" }

func (b *CookieBackend) Read(r *http.Request) ([]byte, error) {
	c, err := r.Cookie(b.name)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && c.Value == "") {
		return nil, ErrNoEntry
	}
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return b.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(b.now),
	)
	if err != nil {
		return nil, fmt.Errorf("session cookie rejected: %w", err)
	}
	return []byte(claims.User), nil
}

func (b *CookieBackend) Write(w http.ResponseWriter, r *http.Request, payload []byte) error {
	now := b.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: string(payload),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.maxAge)),
		},
	})
	signed, err := token.SignedString(b.secret)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}

	http.SetCookie(w, b.cookie(signed, int(b.maxAge/time.Second), now.Add(b.maxAge)))
	return nil
}

func (b *CookieBackend) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, b.cookie("", -1, time.Unix(0, 0)))
	return nil
}

func (b *CookieBackend) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     b.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		Secure:   b.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

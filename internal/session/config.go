package session

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	DefaultCookieName  = "user"
	DefaultMaxAge      = 7 * 24 * time.Hour
	keyedSessionCookie = "board_session"
)

// NewFromConfig builds the standard store: the filesystem backend first,
// the signed user cookie second. Missing keys are generated, which means
// sessions do not survive a restart.
func NewFromConfig(cfg internal.SessionConfig, logger *slog.Logger) (*Store, error) {
	maxAge := DefaultMaxAge
	if cfg.MaxAge > 0 {
		maxAge = time.Duration(cfg.MaxAge) * time.Second
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	authKey, err := keyOrGenerate(cfg.AuthKey, 64, "auth_key", logger)
	if err != nil {
		return nil, err
	}
	var keyPairs [][]byte
	if cfg.EncryptionKey != "" {
		encKey, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
		keyPairs = [][]byte{authKey, encKey}
	} else {
		keyPairs = [][]byte{authKey}
	}

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		logger.Warn("session jwt_secret not configured, generating an ephemeral one")
		jwtSecret = securecookie.GenerateRandomKey(32)
	}

	dir := cfg.StoreDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "employee-board-sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	fs := NewFilesystemBackend(dir, keyedSessionCookie, sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, keyPairs...)
	cookie := NewCookieBackend(cookieName, jwtSecret, maxAge, cfg.Secure)

	return NewStore(logger, fs, cookie), nil
}

func keyOrGenerate(encoded string, size int, field string, logger *slog.Logger) ([]byte, error) {
	if encoded != "" {
		return base64.StdEncoding.DecodeString(encoded)
	}
	logger.Warn("session key not configured, generating an ephemeral one", "field", field)
	return securecookie.GenerateRandomKey(size), nil
}

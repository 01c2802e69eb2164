package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const userValueKey = "user"

// FilesystemBackend keeps the payload in a server-side file named by a
// signed session id cookie.
type FilesystemBackend struct {
	store       *sessions.FilesystemStore
	sessionName string
}

func NewFilesystemBackend(dir, sessionName string, opts sessions.Options, keyPairs ...[]byte) *FilesystemBackend {
	store := sessions.NewFilesystemStore(dir, keyPairs...)
	store.Options = &opts
	// the payload is a short JSON user record; keep the file size bounded
	store.MaxLength(8192)
	return &FilesystemBackend{store: store, sessionName: sessionName}
}

func (b *FilesystemBackend) Name() string { return "filesystem" }

func (b *FilesystemBackend) Read(r *http.Request) ([]byte, error) {
	sess, err := b.store.Get(r, b.sessionName)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			return nil, fmt.Errorf("session id cookie rejected: %w", err)
		}
		// a cookie whose file is gone reads as empty
		return nil, ErrNoEntry
	}
	if sess.IsNew {
		return nil, ErrNoEntry
	}
	raw, ok := sess.Values[userValueKey].(string)
	if !ok || raw == "" {
		return nil, ErrNoEntry
	}
	return []byte(raw), nil
}

func (b *FilesystemBackend) Write(w http.ResponseWriter, r *http.Request, payload []byte) error {
	// Get can fail for a stale cookie but still returns a usable new session.
	sess, _ := b.store.Get(r, b.sessionName)
	if sess == nil {
		return errors.New("filesystem session unavailable")
	}
	sess.Options.MaxAge = b.store.Options.MaxAge
	sess.Values[userValueKey] = string(payload)
	return sess.Save(r, w)
}

func (b *FilesystemBackend) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := b.store.Get(r, b.sessionName)
	if sess == nil || sess.IsNew {
		return nil
	}
	delete(sess.Values, userValueKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

package controllers

import (
	"net/http"

	"github.com/angelmondragon/cafe-companion/api/middleware"
	"github.com/angelmondragon/cafe-companion/internal/sessions"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
)

// SessionStore resolves the storefront session behind a request.
type SessionStore interface {
	GetOrCreate(id string) *sessions.Session
	Peek(id string) *sessions.Session
}

func sessionFromRequest(r *http.Request, store SessionStore) (*sessions.Session, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session store unavailable")
	}
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id missing")
	}
	return store.GetOrCreate(id), nil
}

// sessionForRead resolves the session without opening one, so read-only
// requests from unknown ids see the empty defaults and allocate nothing.
func sessionForRead(r *http.Request, store SessionStore) (*sessions.Session, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session store unavailable")
	}
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id missing")
	}
	return store.Peek(id), nil
}

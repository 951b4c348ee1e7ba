// Package sessions persists the token-to-identity bindings behind cookies
// and bearer tokens. Session documents are created by login only; anonymous
// browsing never writes here.
package sessions

import (
	"context"

	"github.com/signalregistry/api/internal/server/models"
)

type Repository interface {
	// Find returns the session for the given token, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.Session, error)

	Create(ctx context.Context, session *models.Session) error

	// DeleteByToken and DeleteByUsername remove all matching sessions.
	// Deleting nothing is not an error.
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUsername(ctx context.Context, username string) error
}

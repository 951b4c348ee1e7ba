// Package users stores credential records. The server only reads them;
// writes happen through the registryctl admin tool.
package users

import (
	"context"

	"github.com/signalregistry/api/internal/server/models"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// Package mongox maps MongoDB driver errors onto the service's sentinel
// errors so that callers can rely on errors.Is regardless of the underlying
// cause. Connectivity failures of any flavor collapse into a single
// store-unavailable kind and never leak driver detail upward.
package mongox

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signalregistry/api/internal/common"
)

// WrapError translates a driver error into a sentinel from internal/common.
// Unrecognized errors are wrapped for logging but still carry no sentinel.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrorNotFound
	}
	if unavailable(err) {
		return common.ErrorStoreUnavailable
	}
	return fmt.Errorf("store error: %w", err)
}

func unavailable(err error) bool {
	return mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded)
}

package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/models"
)

func TestInMemory_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	now := time.Now()
	require.NoError(t, r.Create(ctx, &models.Session{
		Token: "tok1", Username: "alice", Role: models.RoleGuest,
		CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	}))

	s, err := r.Find(ctx, "tok1")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)

	require.NoError(t, r.DeleteByToken(ctx, "tok1"))
	_, err = r.Find(ctx, "tok1")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestInMemory_DeleteByUsername(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	require.NoError(t, r.Create(ctx, &models.Session{Token: "a", Username: "alice"}))
	require.NoError(t, r.Create(ctx, &models.Session{Token: "b", Username: "alice"}))
	require.NoError(t, r.Create(ctx, &models.Session{Token: "c", Username: "bob"}))

	require.NoError(t, r.DeleteByUsername(ctx, "alice"))

	assert.Zero(t, r.Count("alice"))
	assert.Equal(t, 1, r.Count("bob"))
}

func TestInMemory_DeleteMissingIsNoError(t *testing.T) {
	r := NewInMemoryRepository()
	assert.NoError(t, r.DeleteByToken(context.Background(), "absent"))
	assert.NoError(t, r.DeleteByUsername(context.Background(), "absent"))
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	live := models.Session{ExpiresAt: now.Add(time.Minute)}
	gone := models.Session{ExpiresAt: now.Add(-time.Minute)}
	legacy := models.Session{}

	assert.False(t, live.Expired(now))
	assert.True(t, gone.Expired(now))
	assert.False(t, legacy.Expired(now))
}

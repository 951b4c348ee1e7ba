// Package auth resolves request credentials into a Principal and manages
// the session records behind login and logout.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/models"
	"github.com/signalregistry/api/internal/server/repositories/sessions"
	"github.com/signalregistry/api/internal/server/repositories/users"
)

// Credentials carries the opaque token candidates extracted from a request:
// a bearer Authorization value, the session cookie, and the legacy sessionId
// query parameter. All three are opaque strings to this package.
type Credentials struct {
	Bearer string
	Cookie string
	Query  string
}

// SetCookie is a pending cookie write the transport layer must apply to the
// response. The domain and security flags come from configuration, not from
// the resolver.
type SetCookie struct {
	Name  string
	Value string
	TTL   time.Duration
}

type Service struct {
	users    users.Repository
	sessions sessions.Repository
	cfg      *config.Config
}

func NewService(users users.Repository, sessions sessions.Repository, cfg *config.Config) *Service {
	return &Service{users: users, sessions: sessions, cfg: cfg}
}

// Resolve produces the Principal for one request.
//
// A bearer token is pass-through: it is checked against the session
// collection but never minted and never echoed as a cookie. A cookie or
// legacy query token is looked up the same way; unknown tokens are accepted
// as-is without creating any record. Only a request with no credential at
// all mints a fresh token, returned together with the set-cookie
// instruction. Session documents are written by login, never here.
func (s *Service) Resolve(ctx context.Context, creds Credentials) (models.Principal, []SetCookie, error) {
	if creds.Bearer != "" {
		p, err := s.principalForToken(ctx, creds.Bearer)
		return p, nil, err
	}

	token := creds.Cookie
	if token == "" {
		token = creds.Query
	}
	if token != "" {
		p, err := s.principalForToken(ctx, token)
		return p, nil, err
	}

	minted, err := common.MakeRandHexString(common.SessionTokenBytes)
	if err != nil {
		return models.Principal{}, nil, common.ErrorInternal
	}
	p := models.Principal{Kind: models.Anonymous, SessionToken: minted}
	cookies := []SetCookie{{Name: s.cfg.CookieName, Value: minted, TTL: s.cfg.CookieTTL}}
	return p, cookies, nil
}

func (s *Service) principalForToken(ctx context.Context, token string) (models.Principal, error) {
	session, err := s.sessions.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Principal{Kind: models.Anonymous, SessionToken: token}, nil
		}
		return models.Principal{}, err
	}
	if session.Username == "" || session.Expired(time.Now()) {
		return models.Principal{Kind: models.Anonymous, SessionToken: token}, nil
	}
	return models.Principal{
		Kind:         models.Authenticated,
		Username:     session.Username,
		Role:         session.Role,
		SessionToken: token,
	}, nil
}

// Login authenticates (email, password) and, on success, replaces any
// session for that user with a fresh one bound to the presenting token,
// keeping at most one live session per username.
//
// Sessions for the presenting token and the current username are dropped
// before credentials are checked; this happens on failed attempts too and
// clients rely on it.
func (s *Service) Login(ctx context.Context, token, currentUsername, email, password string) (models.Principal, error) {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return models.Principal{}, err
	}
	if currentUsername != "" {
		if err := s.sessions.DeleteByUsername(ctx, currentUsername); err != nil {
			return models.Principal{}, err
		}
	}

	if email == "" || password == "" {
		return models.Principal{}, common.ErrorUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Principal{}, common.ErrorUnauthorized
		}
		return models.Principal{}, err
	}
	if !VerifyPassword(user.Password, password) {
		return models.Principal{}, common.ErrorUnauthorized
	}

	if err := s.sessions.DeleteByUsername(ctx, user.Username); err != nil {
		return models.Principal{}, err
	}

	now := time.Now()
	session := &models.Session{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.CookieTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return models.Principal{}, fmt.Errorf("error creating session: %w", err)
	}

	return models.Principal{
		Kind:         models.Authenticated,
		Username:     user.Username,
		Role:         user.Role,
		SessionToken: token,
	}, nil
}

// Logout drops sessions for the current token and username. Absence of a
// session is not an error.
func (s *Service) Logout(ctx context.Context, token, username string) error {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return err
	}
	if username != "" {
		if err := s.sessions.DeleteByUsername(ctx, username); err != nil {
			return err
		}
	}
	return nil
}

// VerifyPassword checks a candidate against the stored secret. Values with
// a bcrypt prefix are verified as hashes; anything else is compared for
// equality in constant time, which is the historical storage format.
func VerifyPassword(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

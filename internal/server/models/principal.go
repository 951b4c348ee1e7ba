// Package models holds the persisted and request-scoped types shared by the
// repositories, services, and the HTTP layer.
package models

// Role names carried on user and session records.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// AnonymousUsername is the display name reported for unauthenticated
// principals on the user endpoint.
const AnonymousUsername = "anonymous"

type PrincipalKind int

const (
	Anonymous PrincipalKind = iota
	Authenticated
)

// Principal is the identity resolved for a single request: either an
// authenticated user or an anonymous session. It is never persisted; only
// the session record backing it is.
type Principal struct {
	Kind         PrincipalKind
	Username     string // set iff Kind == Authenticated
	Role         string // set iff Kind == Authenticated
	SessionToken string // always set, minted when the request carried none
}

// Owner is the value written into the owner field of documents created by
// this principal: the username when authenticated, the session token
// otherwise.
func (p Principal) Owner() string {
	if p.Kind == Authenticated {
		return p.Username
	}
	return p.SessionToken
}

// Scope restricts store queries to documents the principal may see.
// All == true means unconstrained; otherwise only documents whose owner
// equals Owner match.
type Scope struct {
	All   bool
	Owner string
}

// Scope derives the ownership filter for this principal. Admins see every
// owner; other authenticated users see their own documents; anonymous
// sessions see documents owned by their session token. Pure function,
// recomputed per request.
func (p Principal) Scope() Scope {
	if p.Kind == Authenticated {
		if p.Role == RoleAdmin {
			return Scope{All: true}
		}
		return Scope{Owner: p.Username}
	}
	return Scope{Owner: p.SessionToken}
}

// Matches reports whether a document with the given owner is inside the scope.
func (s Scope) Matches(owner string) bool {
	return s.All || owner == s.Owner
}

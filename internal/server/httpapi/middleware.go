package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/logging"
	"github.com/signalregistry/api/internal/server/auth"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/models"
	"github.com/signalregistry/api/internal/server/repositories/repomanager"
)

const (
	principalKey = "principal"
	requestIDKey = "request_id"

	// QueryParamSession is the legacy query-string session credential still
	// honored for old clients.
	QueryParamSession = "sessionId"
)

// PrincipalFrom returns the identity resolved for the request. Handlers
// registered behind the session middleware can rely on it being set; the
// zero value is an anonymous principal with no token.
func PrincipalFrom(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}

// RequestLogger emits one structured line per request after the handler
// chain completes, tagged with a fresh request id.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(requestIDKey, uuid.NewString())
		c.Next()

		p := PrincipalFrom(c)
		username := models.AnonymousUsername
		if p.Kind == models.Authenticated {
			username = p.Username
		}
		log.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"remote_addr", c.ClientIP(),
			"method", c.Request.Method,
			"url", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_length", c.Request.ContentLength,
			"response_length", c.Writer.Size(),
			"session", p.SessionToken,
			"username", username,
		)
	}
}

// CORS grants credentialed access to the configured origins and plain
// wildcard access to everyone else, and short-circuits preflight requests.
func CORS(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		} else {
			c.Header("Access-Control-Allow-Origin", "*")
		}
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// StoreGate rejects requests with 503 while the document store is
// unreachable. Health and metrics stay reachable so the outage itself can
// be observed.
func StoreGate(repos repomanager.RepositoryManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/health", "/metrics":
			c.Next()
			return
		}
		if err := repos.Ping(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
			return
		}
		c.Next()
	}
}

// SessionMiddleware extracts the request credentials, resolves them to a
// Principal, applies any pending cookie writes, and stores the principal
// for the handlers. Health and metrics skip resolution so they stay
// reachable during a store outage.
func SessionMiddleware(svc *auth.Service, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/health", "/metrics":
			c.Next()
			return
		}

		creds := auth.Credentials{Query: c.Query(QueryParamSession)}
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			creds.Bearer = strings.TrimPrefix(h, "Bearer ")
		}
		if v, err := c.Cookie(cfg.CookieName); err == nil {
			creds.Cookie = v
		}

		p, cookies, err := svc.Resolve(c.Request.Context(), creds)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, common.ErrorStoreUnavailable) {
				status = http.StatusServiceUnavailable
			}
			c.AbortWithStatusJSON(status, gin.H{"error": "session resolution failed"})
			return
		}
		for _, ck := range cookies {
			c.SetSameSite(http.SameSiteNoneMode)
			c.SetCookie(ck.Name, ck.Value, int(ck.TTL.Seconds()), "/", cfg.CookieDomain, cfg.CookieSecure, true)
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/auth"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/models"
	"github.com/signalregistry/api/internal/server/registry"
	"github.com/signalregistry/api/internal/server/repositories/repomanager"
)

const (
	msgSignalNotFound   = "[ERROR] Signal not found."
	msgUnsupportedType  = "[ERROR] Unidentified signal type."
	codeNoData          = "NO_DATA"
	codeDataLength      = "DATA_LENGTH_EXCEED"
	codeInconsistent = "INCONSISTENT_DATA"
)

// Handlers holds the services the HTTP endpoints dispatch to.
type Handlers struct {
	cfg      *config.Config
	auth     *auth.Service
	registry *registry.Service
	repos    repomanager.RepositoryManager
}

func NewHandlers(cfg *config.Config, authSvc *auth.Service, regSvc *registry.Service, repos repomanager.RepositoryManager) *Handlers {
	return &Handlers{cfg: cfg, auth: authSvc, registry: regSvc, repos: repos}
}

type dataBody struct {
	Data []any `json:"data"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createItemBody struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Desc string `json:"desc"`
}

// writeError translates service sentinels into the wire contract. Messages
// and codes are fixed strings existing clients match on.
func (h *Handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	case errors.Is(err, common.ErrorNotFound):
		c.String(http.StatusNotFound, msgSignalNotFound)
	case errors.Is(err, common.ErrorUnsupportedType):
		c.String(http.StatusNotAcceptable, msgUnsupportedType)
	case errors.Is(err, common.ErrorNoData):
		h.writeValidationError(c, codeNoData)
	case errors.Is(err, common.ErrorDataLengthExceeded):
		h.writeValidationError(c, codeDataLength)
	case errors.Is(err, common.ErrorInconsistentData):
		h.writeValidationError(c, codeInconsistent)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handlers) writeValidationError(c *gin.Context, code string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
		"endpoint": c.FullPath(),
		"method":   c.Request.Method,
		"message":  code,
	}})
}

// status reports the request headers, the resolved session token, and the
// process memory usage.
func (h *Handlers) status(c *gin.Context) {
	p := PrincipalFrom(c)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	resp := gin.H{}
	for name, values := range c.Request.Header {
		resp[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	resp["session"] = p.SessionToken
	resp["used_memory"] = gin.H{
		"alloc":       megabytes(ms.Alloc),
		"total_alloc": megabytes(ms.TotalAlloc),
		"sys":         megabytes(ms.Sys),
		"heap_alloc":  megabytes(ms.HeapAlloc),
		"heap_sys":    megabytes(ms.HeapSys),
	}
	c.JSON(http.StatusOK, resp)
}

func megabytes(n uint64) string {
	return fmt.Sprintf("%.2fMB", float64(n)/1024/1024)
}

func (h *Handlers) health(c *gin.Context) {
	if err := h.repos.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// login checks the submitted credentials against the users collection. A
// failed attempt answers 200 with an empty object, not 401; clients key on
// the missing username.
func (h *Handlers) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	p := PrincipalFrom(c)
	logged, err := h.auth.Login(c.Request.Context(), p.SessionToken, p.Username, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": logged.Username, "role": logged.Role})
}

func (h *Handlers) logout(c *gin.Context) {
	p := PrincipalFrom(c)
	if err := h.auth.Logout(c.Request.Context(), p.SessionToken, p.Username); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handlers) user(c *gin.Context) {
	p := PrincipalFrom(c)
	if p.Kind == models.Authenticated {
		c.JSON(http.StatusOK, gin.H{"username": p.Username, "role": p.Role})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": models.AnonymousUsername, "role": models.RoleGuest})
}

func (h *Handlers) collections(c *gin.Context) {
	templates, err := h.registry.Templates(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	c.JSON(http.StatusOK, templates)
}

func (h *Handlers) registryItems(c *gin.Context) {
	items, err := h.registry.Items(c.Request.Context(), PrincipalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	c.JSON(http.StatusOK, items)
}

// createItem upserts a registry item's metadata and echoes the stored
// document.
func (h *Handlers) createItem(c *gin.Context) {
	var body createItemBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		h.writeValidationError(c, codeInconsistent)
		return
	}

	p := PrincipalFrom(c)
	if err := h.registry.CreateItem(c.Request.Context(), p, body.Name, body.Type, body.Desc); err != nil {
		h.writeError(c, err)
		return
	}
	item, err := h.registry.Get(c.Request.Context(), registry.CollectionRegistry, body.Name, p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) registryItem(c *gin.Context) {
	item, err := h.registry.GetByID(c.Request.Context(), c.Param("item"), PrincipalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// appendTrigger applies the trigger write policy: the payload must be
// exactly [1].
func (h *Handlers) appendTrigger(c *gin.Context) {
	var body dataBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		h.writeValidationError(c, codeInconsistent)
		return
	}
	if err := h.registry.AppendTriggerValue(c.Request.Context(), c.Param("item"), PrincipalFrom(c), body.Data); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handlers) summaries(c *gin.Context) {
	summaries, err := h.registry.List(c.Request.Context(), c.Param("coll"), PrincipalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if summaries == nil {
		summaries = []models.Summary{}
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *Handlers) getItem(c *gin.Context) {
	item, err := h.registry.Get(c.Request.Context(), c.Param("coll"), c.Param("name"), PrincipalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// upsertList creates a list item or appends to an existing one. An empty
// body creates an empty list.
func (h *Handlers) upsertList(c *gin.Context) {
	var body dataBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		h.writeValidationError(c, codeInconsistent)
		return
	}
	err := h.registry.UpsertList(c.Request.Context(), c.Param("coll"), c.Param("name"), PrincipalFrom(c), body.Data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handlers) deleteItem(c *gin.Context) {
	err := h.registry.Delete(c.Request.Context(), c.Param("coll"), c.Param("name"), PrincipalFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}

// Package http serves the canteen API over HTTP. The adapter owns the
// route table and composes the per-route credential scheme and
// permission gate at registration time; handlers only ever run behind
// a completed verification.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/auth"
	"github.com/crymall/canteen-service/pkg/transport"
)

// Route permission sets, fixed at registration. Reads are reachable by
// either the privileged canteen permission or the public-read one.
var (
	readPermissions  = []string{"read:canteen", "read:public"}
	writePermissions = []string{"write:canteen"}
)

// defaultPageLimit applies when the caller sends no usable limit.
const defaultPageLimit = 50

// Adapter routes API requests to the store.
type Adapter struct {
	store  transport.Store
	mux    *http.ServeMux
	logger *slog.Logger
	config Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64
	Logger      *slog.Logger
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
	}
}

// NewAdapter creates an HTTP adapter over the given store and
// credential verifiers.
func NewAdapter(store transport.Store, tokens auth.TokenVerifier, keys auth.KeyVerifier, cfg Config) *Adapter {
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	a := &Adapter{
		store:  store,
		mux:    http.NewServeMux(),
		logger: cfg.Logger,
		config: cfg,
	}

	requireAuth := auth.RequireAuth(tokens)
	gateRead := auth.RequirePermissions(readPermissions...)
	gateWrite := auth.RequirePermissions(writePermissions...)

	read := func(h http.HandlerFunc) http.Handler { return requireAuth(gateRead(h)) }
	write := func(h http.HandlerFunc) http.Handler { return requireAuth(gateWrite(h)) }
	keyed := auth.RequireAPIKey(keys)

	a.mux.HandleFunc("GET /{$}", a.handleIndex)

	a.mux.Handle("GET /recipes", read(a.handleSearchRecipes))
	a.mux.Handle("GET /recipes/popular", read(a.handlePopularRecipes))
	a.mux.Handle("GET /recipes/{id}", read(a.handleGetRecipe))
	a.mux.Handle("POST /recipes", write(a.handleCreateRecipe))
	a.mux.Handle("PUT /recipes/{id}", write(a.handleUpdateRecipe))
	a.mux.Handle("DELETE /recipes/{id}", write(a.handleDeleteRecipe))
	a.mux.Handle("POST /recipes/{id}/ingredients", write(a.handleAddRecipeIngredient))
	a.mux.Handle("DELETE /recipes/{id}/ingredients/{ingredientId}", write(a.handleRemoveRecipeIngredient))
	a.mux.Handle("POST /recipes/{id}/tags", write(a.handleAddRecipeTag))
	a.mux.Handle("DELETE /recipes/{id}/tags/{tagId}", write(a.handleRemoveRecipeTag))
	a.mux.Handle("POST /recipes/{id}/likes", write(a.handleLikeRecipe))
	a.mux.Handle("DELETE /recipes/{id}/likes", write(a.handleUnlikeRecipe))

	a.mux.Handle("GET /ingredients", read(a.handleListIngredients))
	a.mux.Handle("POST /ingredients", write(a.handleCreateIngredient))
	a.mux.Handle("GET /tags", read(a.handleListTags))
	a.mux.Handle("POST /tags", write(a.handleCreateTag))

	a.mux.Handle("GET /lists", read(a.handleListLists))
	a.mux.Handle("GET /lists/user/{userId}", read(a.handleListsForUser))
	a.mux.Handle("GET /lists/{id}", read(a.handleGetList))
	a.mux.Handle("POST /lists", write(a.handleCreateList))
	a.mux.Handle("DELETE /lists/{id}", write(a.handleDeleteList))
	a.mux.Handle("GET /lists/{id}/recipes", read(a.handleListRecipesInList))
	a.mux.Handle("POST /lists/{id}/recipes", write(a.handleAddListRecipe))
	a.mux.Handle("DELETE /lists/{id}/recipes/{recipeId}", write(a.handleRemoveListRecipe))

	a.mux.HandleFunc("GET /users", a.handleListUsers)
	a.mux.HandleFunc("GET /users/{id}", a.handleGetUser)
	a.mux.Handle("POST /users", keyed(http.HandlerFunc(a.handleCreateUser)))

	return a
}

// Handler returns the http.Handler for this adapter, wrapped with
// request ID, recovery, and logging middleware.
func (a *Adapter) Handler() http.Handler {
	var h http.Handler = a.mux
	h = transport.Logging(a.logger)(h)
	h = transport.Recovery(a.logger)(h)
	h = transport.RequestID()(h)
	return h
}

// handleIndex hints at the real routes for callers probing the root.
func (a *Adapter) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("This isn't the route you probably meant to use! Try /recipes, /ingredients, /tags, or /lists instead."))
}

// parsePage extracts pagination from the query string. Absent or
// unparsable values fall back to the defaults; the store clamps the
// final bounds.
func parsePage(q url.Values) transport.Page {
	page := transport.Page{Limit: defaultPageLimit}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Offset = n
		}
	}
	return page
}

// parseIDList extracts a multi-valued id filter: repeated query
// parameters, comma-separated values, or both.
func parseIDList(q url.Values, key string) ([]int64, *api.APIError) {
	var ids []int64
	for _, raw := range q[key] {
		for part := range strings.SplitSeq(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, api.NewBadRequestError(key + " must be a list of integer ids")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// pathID parses an integer path parameter.
func pathID(r *http.Request, name string) (int64, *api.APIError) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, api.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// decodeBody decodes the JSON request body into v with the configured
// size cap.
func (a *Adapter) decodeBody(w http.ResponseWriter, r *http.Request, v any) *api.APIError {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return api.NewBadRequestError("Invalid request body")
	}
	return nil
}

// principal returns the request principal, which the auth middleware
// guarantees for gated routes.
func principal(r *http.Request) *auth.Principal {
	return auth.PrincipalFromContext(r.Context())
}

// writeStorageError logs an unexpected storage failure and answers
// with the generic 500 body; query and schema detail never leave the
// process.
func (a *Adapter) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("storage failure",
		"path", r.URL.Path,
		"request_id", transport.RequestIDFromContext(r.Context()),
		"error", err,
	)
	transport.WriteAPIError(w, api.NewServerError())
}

// messageResponse is the body of delete acknowledgements.
type messageResponse struct {
	Message string    `json:"message"`
	List    *api.List `json:"list,omitempty"`
}

package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/gemterm/api/terminal" // Swagger docs
	"github.com/aussiebroadwan/gemterm/internal/terminal/analysis"
	"github.com/aussiebroadwan/gemterm/internal/terminal/market"
	"github.com/aussiebroadwan/gemterm/internal/terminal/refresh"
	"github.com/aussiebroadwan/gemterm/internal/terminal/service"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/aussiebroadwan/gemterm/pkg/jwtx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	EntitlementService *service.EntitlementService
	SessionService     *service.SessionService
	WatchlistService   *service.WatchlistService

	Feed               *market.Feed
	Analyzer           analysis.Provider
	AnalysisConfigured bool
	Terminals          *refresh.Registry

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// AllowedOrigins restricts websocket upgrades; empty allows any origin.
	AllowedOrigins []string
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerAdmin()
	r.registerTerminal()
	r.registerWatchlist()
	r.registerMarket()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			GemTerm Terminal Service API
//	@version		0.1.0
//	@description	Invite-gated crypto market terminal. Sessions are granted by redeeming an invite code and carried as EdDSA-signed JWT bearer tokens.
//	@description
//	@description				Each session owns a live terminal that polls the active chain, debounces searches and analyses the selected token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gemterm
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from POST /v1/session. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticator checks the token signature and that the session row is
// still live.
func (r *Router) authenticator() httpx.Authenticator {
	return httpx.AuthenticatorFunc(func(ctx context.Context, token string) (httpx.Principal, error) {
		sess, err := r.SessionService.Authenticate(ctx, token)
		if err != nil {
			return httpx.Principal{}, err
		}
		return httpx.Principal{
			SessionID: sess.ID,
			Identity:  sess.Identity,
			Admin:     sess.IsAdmin,
			ExpiresAt: sess.ExpiryDate,
		}, nil
	})
}

// secured wraps h with session authentication and a per-session limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := append([]httpx.Middleware{httpx.AuthnMiddleware(r.authenticator())}, extra...)
	mws = append(mws, httpx.RateLimitBySession(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		Entitlements: r.EntitlementService,
		Sessions:     r.SessionService,
	}

	// POST /session - strict rate limit by IP (invite code guessing)
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /v1/session", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/session", r.secured(http.HandlerFunc(h.HandleDelete), httpx.LenientLimit))
}

func (r *Router) registerAdmin() {
	h := &CodesHandler{Entitlements: r.EntitlementService}

	admin := func(fn http.HandlerFunc) http.Handler {
		return r.secured(fn, httpx.ModerateLimit, httpx.RequireAdmin())
	}

	r.Mux.Handle("GET /v1/admin/codes", admin(h.HandleList))
	r.Mux.Handle("POST /v1/admin/codes", admin(h.HandleIssue))
	r.Mux.Handle("DELETE /v1/admin/codes/{code}", admin(h.HandleRevoke))
	r.Mux.Handle("POST /v1/admin/codes/{code}/bind", admin(h.HandleBind))
	r.Mux.Handle("DELETE /v1/admin/codes/{code}/bind", admin(h.HandleUnbind))
}

func (r *Router) registerTerminal() {
	h := &TerminalHandler{Terminals: r.Terminals}
	stream := &StreamHandler{
		Terminals: h,
		Upgrader: websocket.Upgrader{
			CheckOrigin: r.checkOrigin,
		},
	}

	r.Mux.Handle("GET /v1/terminal", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/terminal/chain", r.secured(http.HandlerFunc(h.HandleSetChain), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/terminal/search", r.secured(http.HandlerFunc(h.HandleSearch), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/terminal/select", r.secured(http.HandlerFunc(h.HandleSelect), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/terminal/view", r.secured(http.HandlerFunc(h.HandleSetView), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/terminal/stream", r.secured(stream, httpx.ModerateLimit))
}

func (r *Router) registerWatchlist() {
	h := &WatchlistHandler{Watchlists: r.WatchlistService}

	r.Mux.Handle("GET /v1/watchlist", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/watchlist/toggle", r.secured(http.HandlerFunc(h.HandleToggle), httpx.LenientLimit))
}

func (r *Router) registerMarket() {
	h := &MarketHandler{Feed: r.Feed, Analyzer: r.Analyzer}

	// Market reads fan out to upstream providers - moderate limit per session
	r.Mux.Handle("GET /v1/market/search", r.secured(http.HandlerFunc(h.HandleSearch), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/market/gems", r.secured(http.HandlerFunc(h.HandleGems), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/market/mainstream", r.secured(http.HandlerFunc(h.HandleMainstream), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/market/whales", r.secured(http.HandlerFunc(h.HandleWhales), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/market/news", r.secured(http.HandlerFunc(h.HandleNews), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/analysis", r.secured(http.HandlerFunc(h.HandleAnalyze), httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limit (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.AnalysisConfigured),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics)
	}
}

func (r *Router) checkOrigin(req *http.Request) bool {
	if len(r.AllowedOrigins) == 0 {
		return true
	}
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range r.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

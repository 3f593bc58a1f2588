package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/classmeet/classmeet/internal/service"
	"github.com/classmeet/classmeet/internal/store"
	"github.com/classmeet/classmeet/pkg/httpx"
	"github.com/classmeet/classmeet/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	startTime time.Time
	logger    *slog.Logger

	store store.Store

	AuthService      *service.AuthService
	UserService      *service.UserService
	MeetingService   *service.MeetingService
	SignatureService *service.SignatureService
}

func NewRouter(st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerMeetings()
	r.registerSignatures()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /profile - who am I, from the verified token
	profileHandler := &ProfileHandler{}
	r.Mux.Handle("GET /v1/auth/profile",
		httpx.Chain(profileHandler,
			AuthnMiddleware(r.AuthService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /users - open registration, strict rate limit by IP
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Everything else requires a valid bearer token.
	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			AuthnMiddleware(r.AuthService),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/users", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/users/{id}", secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/users/{id}", secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/users/{id}", secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerMeetings() {
	h := &MeetingsHandler{MeetingService: r.MeetingService}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			AuthnMiddleware(r.AuthService),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/meetings", secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/meetings", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/meetings/{id}", secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/meetings/{id}", secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/meetings/{id}", secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSignatures() {
	h := &SignaturesHandler{SignatureService: r.SignatureService}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			AuthnMiddleware(r.AuthService),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/signatures/video", secured(http.HandlerFunc(h.HandleVideo)))
	r.Mux.Handle("POST /v1/signatures/meeting", secured(http.HandlerFunc(h.HandleMeeting)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

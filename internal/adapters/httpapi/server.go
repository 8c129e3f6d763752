package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"sortable/internal/domain"
	"sortable/internal/logging"
	"sortable/internal/ports"
)

// tableScopeSegment is the URL path segment naming the table-wide scope
const tableScopeSegment = "_"

const (
	shutdownTimeout = 5 * time.Second
	limiterIdle     = time.Minute
)

// Options configures a Server
type Options struct {
	Store      ports.RankStore
	Observer   ports.RankObserver // may be nil
	Authorizer ports.Authorizer   // nil allows every request
	History    ports.AuditLog     // nil disables the history route
	Logger     *logging.Logger
	PageSize   int

	// Write requests per second and burst, per client address.
	// A zero RateLimit disables limiting.
	RateLimit float64
	RateBurst int

	// Origins are allowed to read entries cross-origin and are trusted for
	// writes by the cross-origin protection.
	Origins []string
}

// Server serves the reorder endpoints of every scope
type Server struct {
	store    ports.RankStore
	observer ports.RankObserver
	authz    ports.Authorizer
	history  ports.AuditLog
	log      *logging.Logger
	pageSize int
	limiter  *clientLimiter
	origins  []string
	cop      *http.CrossOriginProtection
}

// NewServer creates a Server. It fails when an origin is malformed.
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("httpapi: store is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.NoopLogger()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	cop := http.NewCrossOriginProtection()
	for _, origin := range opts.Origins {
		if err := cop.AddTrustedOrigin(origin); err != nil {
			return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
		}
	}
	cop.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
	}))

	s := &Server{
		store:    opts.Store,
		observer: opts.Observer,
		authz:    opts.Authorizer,
		history:  opts.History,
		log:      log.WithComponent("http"),
		pageSize: pageSize,
		origins:  opts.Origins,
		cop:      cop,
	}
	if opts.RateLimit > 0 {
		burst := max(opts.RateBurst, 1)
		s.limiter = newClientLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s, nil
}

// Handler returns the routed handler with every middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /scopes/{scope}/sortable/update", s.limit(http.HandlerFunc(s.handleUpdate)))
	mux.Handle("POST /scopes/{scope}/sortable/actions", s.limit(http.HandlerFunc(s.handleActions)))

	var entries http.Handler = http.HandlerFunc(s.handleEntries)
	var history http.Handler = http.HandlerFunc(s.handleHistory)
	if len(s.origins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead},
			MaxAge:         int((10 * time.Minute).Seconds()),
		})
		entries = c.Handler(entries)
		history = c.Handler(history)
	}
	mux.Handle("GET /scopes/{scope}/entries", entries)
	if s.history != nil {
		mux.Handle("GET /scopes/{scope}/history", history)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return s.logRequests(s.cop.Handler(mux))
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. Cleartext HTTP/2 is served alongside HTTP/1.1.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if s.limiter != nil {
		g.Go(func() error {
			return s.limiter.run(gctx, limiterIdle)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// scopeOf maps the {scope} path value to a ranking scope
func scopeOf(r *http.Request) string {
	scope := r.PathValue("scope")
	if scope == tableScopeSegment {
		return domain.TableScope
	}
	return scope
}

func scopeSegment(scope string) string {
	if scope == domain.TableScope {
		return tableScopeSegment
	}
	return scope
}

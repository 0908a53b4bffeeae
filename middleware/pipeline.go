package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/lab-tutor-gateway/metrics"
	"github.com/felixge/httpsnoop"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// allMethods is every method net/http names; rs/cors has no wildcard for
// methods.
var allMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// NewCORS builds the CORS policy for the front-end origins. The server
// builder applies it to every REST route and answers pre-flight requests
// with it.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   allMethods,
		AllowedHeaders:   []string{"*"},
	})
}

// NewCrossOriginProtection trusts the front-end origins for non-safe
// requests. The MCP transport rejects cross-origin POSTs unless the origin
// is trusted here.
func NewCrossOriginProtection(allowedOrigins []string) (*http.CrossOriginProtection, error) {
	p := http.NewCrossOriginProtection()
	for _, origin := range allowedOrigins {
		if err := p.AddTrustedOrigin(origin); err != nil {
			return nil, fmt.Errorf("trusted origin %q: %w", origin, err)
		}
	}
	return p, nil
}

// Pipeline wraps route handlers with request logging and metrics.
type Pipeline struct {
	metrics metrics.GatewayMetrics
}

func NewPipeline(m metrics.GatewayMetrics) *Pipeline {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Pipeline{metrics: m}
}

// Wrap decorates next. route is the pattern used as the metrics label, so
// path parameters do not explode label cardinality.
func (p *Pipeline) Wrap(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		p.metrics.ObserveRequest(r.Method, route, strconv.Itoa(m.Code), m.Duration.Seconds())
		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", m.Code),
			zap.Duration("duration", m.Duration))
	}
}

// Middleware adapts Wrap to the func(http.Handler) http.Handler shape, with
// CORS applied in front. The server builder mounts its MCP handler outside
// the REST CORS layer, so the policy is added here.
func (p *Pipeline) Middleware(route string, c *cors.Cors) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return c.Handler(p.Wrap(route, next.ServeHTTP))
	}
}

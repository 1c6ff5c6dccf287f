package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"github.com/habibaehabb05/Factify/internal/platform/config"
	"github.com/habibaehabb05/Factify/internal/platform/net/middleware"
)

// StackOptions configures the router-wide middleware stack
type StackOptions struct {
	Timeout     time.Duration
	CORSOrigins []string
	MaxInflight int
	SlowLog     time.Duration
	// Metrics is nil when /metrics is disabled
	Metrics *middleware.HTTPMetrics
}

// StackFromConfig reads CORE_API_ scoped keys
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 0),
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		MaxInflight: cfg.MayInt("MAX_INFLIGHT", 0),
		SlowLog:     cfg.MayDuration("SLOW_REQUEST", 5*time.Second),
	}
}

// CommonStack returns the baseline middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Correlate,

		// safety
		middleware.RecoverJSON,
	}

	// observability
	if o.Metrics != nil {
		stack = append(stack, o.Metrics.Handler)
	}
	stack = append(stack,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowLog}),

		// cross-origin before heartbeat so browsers can probe it too
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Heartbeat("/health"),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.Throttle(o.MaxInflight),
	)
	if o.Timeout > 0 {
		stack = append(stack, middleware.Timeout(o.Timeout))
	}
	return stack
}

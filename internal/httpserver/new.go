package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"casebem/internal/negotiation"
	"casebem/internal/query"
	"casebem/pkg/log"
	"casebem/pkg/metrics"
	"casebem/pkg/scope"
)

const defaultShutdownTimeout = 10 * time.Second

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	serviceName     string
	shutdownTimeout time.Duration

	// Auth
	jwtManager scope.Manager

	// Negotiation core
	negotiationUC negotiation.UseCase
	queryUC       query.UseCase

	// Readiness
	db Pinger

	// Observability
	metrics *metrics.Metrics
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ServiceName     string
	ShutdownTimeout time.Duration

	JWTManager scope.Manager

	NegotiationUC negotiation.UseCase
	QueryUC       query.UseCase

	// DB is optional. Without it /ready only reports that the process is up.
	DB Pinger

	// Metrics is optional. When set, requests are counted and /metrics is served.
	Metrics *metrics.Metrics
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		serviceName:     cfg.ServiceName,
		shutdownTimeout: cfg.ShutdownTimeout,
		jwtManager:      cfg.JWTManager,
		negotiationUC:   cfg.NegotiationUC,
		queryUC:         cfg.QueryUC,
		db:              cfg.DB,
		metrics:         cfg.Metrics,
	}
	if srv.serviceName == "" {
		srv.serviceName = ServiceName
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwt manager is required")
	}
	if srv.negotiationUC == nil {
		return errors.New("negotiation usecase is required")
	}
	if srv.queryUC == nil {
		return errors.New("query usecase is required")
	}
	return nil
}

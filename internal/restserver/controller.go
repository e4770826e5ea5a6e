// Package restserver exposes the psychrometric calculations over HTTP: state
// evaluation, chart line generation, and standard-atmosphere lookups.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hvactools/psychro/internal/log"
	"github.com/hvactools/psychro/internal/observability"
	"github.com/hvactools/psychro/pkg/atmosphere"
	"github.com/hvactools/psychro/pkg/config"
	"github.com/hvactools/psychro/pkg/units"
)

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	serverConfig   config.ServerData
	defaults       config.DefaultsData
	defaultSystem  units.System
	Server         http.Server
	logger         *zap.SugaredLogger
	metrics        *observability.Metrics
	handlers       *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, logger *zap.SugaredLogger, metrics *observability.Metrics) (*Controller, error) {
	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		logger:         logger,
		metrics:        metrics,
	}

	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	ctrl.serverConfig = cfgData.Server
	ctrl.defaults = cfgData.Defaults

	ctrl.defaultSystem, err = cfgData.Defaults.System()
	if err != nil {
		return nil, err
	}

	// If a listen address was not provided, listen on all interfaces
	if ctrl.serverConfig.ListenAddr == "" {
		logger.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.serverConfig.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if ctrl.serverConfig.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		ctrl.serverConfig.Port = 8080
	}

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.serverConfig.ListenAddr, ctrl.serverConfig.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.TLSCertPath != "" && c.serverConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.TLSCertPath, c.serverConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.requestMiddleware)

	// API endpoints
	router.HandleFunc("/api/state", c.handlers.GetState)
	router.HandleFunc("/api/chart/relative-humidity", c.handlers.GetRelativeHumidityLine)
	router.HandleFunc("/api/chart/enthalpy", c.handlers.GetEnthalpyLine)
	router.HandleFunc("/api/atmosphere", c.handlers.GetAtmosphere)

	// Operational endpoints
	router.HandleFunc("/healthz", c.handlers.GetHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// statusRecorder captures the response status code for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMiddleware tags each request with an ID, logs it, and records
// request metrics
func (c *Controller) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)
		duration := time.Since(start)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		outcome := "success"
		switch {
		case recorder.status >= 500:
			outcome = "server_error"
		case recorder.status >= 400:
			outcome = "client_error"
		}

		if c.metrics != nil {
			c.metrics.RequestsTotal.WithLabelValues(route, outcome).Inc()
			c.metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		}

		c.logger.Infow("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// defaultPressure resolves the pressure to use when a request does not carry
// one: the configured default, the standard-atmosphere pressure at the
// configured altitude, or the sea-level standard, in that order. The result
// is expressed in the requested unit system.
func (c *Controller) defaultPressure(sys units.System) float64 {
	pascals := 101325.0
	switch {
	case c.defaults.Pressure > 0:
		pascals = c.defaults.Pressure
		if c.defaultSystem == units.IP {
			pascals *= units.PascalsPerPsi
		}
	case c.defaults.Altitude > 0:
		if p, err := atmosphere.Pressure(c.defaults.Altitude); err == nil {
			pascals = p
		}
	}
	if sys == units.IP {
		return pascals / units.PascalsPerPsi
	}
	return pascals
}

package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/idwallet-server/internal/api/http/handler"
	"github.com/dtroode/idwallet-server/internal/api/http/middleware"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/model"
)

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a health check function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Pingers is healthy when every member is. Ping stops at the first failure.
type Pingers []Pinger

func (p Pingers) Ping(ctx context.Context) error {
	for _, pinger := range p {
		if err := pinger.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Router wires handlers and middlewares into a chi mux.
type Router struct {
	workflow       handler.WorkflowService
	credentials    handler.CredentialService
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	pinger         Pinger
	gatherer       prometheus.Gatherer
	metrics        *metrics.Metrics
	requestTimeout time.Duration
	logger         *logger.Logger
}

func New(
	workflow handler.WorkflowService,
	credentials handler.CredentialService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	pinger Pinger,
	gatherer prometheus.Gatherer,
	metrics *metrics.Metrics,
	requestTimeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		workflow:       workflow,
		credentials:    credentials,
		tokenService:   tokenService,
		contextManager: contextManager,
		pinger:         pinger,
		gatherer:       gatherer,
		metrics:        metrics,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Register builds the HTTP handler serving every route.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger, r.metrics)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	auth := handler.NewAuth(r.workflow, r.contextManager, r.logger)
	validation := handler.NewValidation(r.workflow, r.contextManager, r.logger)
	credential := handler.NewCredential(r.workflow, r.credentials, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)
	if r.requestTimeout > 0 {
		mux.Use(chimiddleware.Timeout(r.requestTimeout))
	}

	mux.Get("/healthz", r.health)
	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))

	mux.Route("/auth", func(ar chi.Router) {
		ar.Post("/registro", auth.Register)
		ar.Post("/verificar-registro", auth.VerifyRegistration)
		ar.Post("/login", auth.Login)

		ar.Group(func(pr chi.Router) {
			pr.Use(authenticate.Handle)
			pr.Get("/perfil", auth.Profile)
			pr.Get("/verify", auth.Verify)
		})
	})

	mux.Route("/validacion", func(vr chi.Router) {
		vr.Use(authenticate.Handle)
		vr.Post("/send-code", validation.SendCode)
		vr.Post("/verify-code", validation.VerifyCode)
	})

	mux.Route("/carnets", func(cr chi.Router) {
		cr.Get("/status", credential.Status)

		cr.Group(func(pr chi.Router) {
			pr.Use(authenticate.Handle)
			pr.Get("/", credential.List)
			pr.Post("/agregar-estudiante", credential.AddStudent)
			pr.Post("/agregar-empleado", credential.AddEmployee)
			pr.Get("/{id}", credential.Get)
			pr.Delete("/{id}", credential.Delete)
			pr.Get("/{id}/foto", credential.Photo)
			pr.Put("/{id}/foto", credential.UpdatePhoto)
		})
	})

	return mux
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	if err := r.pinger.Ping(req.Context()); err != nil {
		r.logger.Error("Router: health check failed",
			"error", err.Error())
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

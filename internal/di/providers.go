package di

import (
	"fmt"

	"QuantAI/internal/domain/repository"
	domsvc "QuantAI/internal/domain/service"
	"QuantAI/internal/handler/api"
	internalrepo "QuantAI/internal/repository"
	"QuantAI/internal/service/gemini"
	"QuantAI/internal/usecase"
	"QuantAI/pkg/cache"
	"QuantAI/pkg/config"
	xhttp "QuantAI/pkg/http"
	pkgkafka "QuantAI/pkg/kafka"
	applogger "QuantAI/pkg/logger"
	"QuantAI/pkg/metrics"
	"QuantAI/pkg/server"

	"github.com/google/wire"
)

// ProviderSet holds every provider the injector needs.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	wire.Bind(new(repository.Metrics), new(*metrics.Recorder)),
	ProvideSessionCache,
	ProvideSessionStore,
	ProvideSignalPublisher,
	ProvidePolicy,
	ProvideSignalBackend,
	ProvideSignalContract,
	wire.Bind(new(usecase.SignalGenerator), new(*usecase.SignalContract)),
	ProvideController,
	ProvideSessionResolver,
	ProvideHTTPHandler,
	ProvideHTTPServer,
	ProvideApp,
)

// ProvideLogger creates the structured logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideSessionCache creates the cache behind the session store.
func ProvideSessionCache(cfg *config.Config, l *applogger.Logger) (cache.Service, func(), error) {
	switch cfg.Session.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Session.Redis.Addr),
			cache.WithRedisPassword(cfg.Session.Redis.Password),
			cache.WithRedisDB(cfg.Session.Redis.DB),
			cache.WithRedisPrefix(cfg.Session.Redis.Prefix),
			cache.WithRedisPool(cfg.Session.Redis.PoolSize, 2, 0),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("session cache: %w", err)
		}
		l.Info("session store ready", applogger.String("backend", "redis"), applogger.String("addr", cfg.Session.Redis.Addr))
		return rc, func() {
			if err := rc.Close(); err != nil {
				l.Warn("redis close error", applogger.Error(err))
			}
		}, nil
	default:
		mc := cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Session.MaxSessions),
			cache.WithMemoryDefaultTTL(cfg.Session.TTL),
		)
		l.Info("session store ready", applogger.String("backend", "memory"), applogger.Int("max_sessions", cfg.Session.MaxSessions))
		return mc, func() { _ = mc.Close() }, nil
	}
}

// ProvideSessionStore creates the session repository.
func ProvideSessionStore(c cache.Service, cfg *config.Config) repository.SessionStore {
	return internalrepo.NewCacheSessionStore(c, cfg.Session.TTL)
}

// ProvideSignalPublisher creates the Kafka publisher, or a no-op one when events are disabled.
func ProvideSignalPublisher(cfg *config.Config, l *applogger.Logger) (repository.SignalPublisher, func(), error) {
	if !cfg.Events.Enabled {
		return internalrepo.NewNoopPublisher(), func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Events.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Events.WriteTimeout, cfg.Events.WriteTimeout),
		pkgkafka.WithAsync(cfg.Events.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic)
	l.Info("signal events enabled", applogger.Strings("brokers", cfg.Events.Brokers), applogger.String("topic", cfg.Events.Topic))
	return pub, func() {
		if err := pub.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}, nil
}

// ProvidePolicy loads the configured policy templates.
func ProvidePolicy(cfg *config.Config) (*gemini.Policy, error) {
	return gemini.LoadPolicy(cfg.Gemini.PolicyVersion)
}

// ProvideSignalBackend creates the Gemini client.
func ProvideSignalBackend(cfg *config.Config, policy *gemini.Policy, l *applogger.Logger) (domsvc.SignalBackend, error) {
	return gemini.New(cfg.Gemini.APIKey, policy,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithHTTPTimeout(cfg.Gemini.Timeout),
		gemini.WithLogger(l),
	)
}

// ProvideSignalContract creates the request/response contract.
func ProvideSignalContract(backend domsvc.SignalBackend, m repository.Metrics, cfg *config.Config, l *applogger.Logger) *usecase.SignalContract {
	c := usecase.NewSignalContract(backend, m, cfg.Gemini.Timeout)
	c.SetLogger(l)
	return c
}

// ProvideController creates the session state controller.
// A busy flag older than twice the backend deadline is treated as abandoned.
func ProvideController(
	store repository.SessionStore,
	gen usecase.SignalGenerator,
	pub repository.SignalPublisher,
	m repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.Controller {
	c := usecase.NewController(store, gen, pub, m, 2*cfg.Gemini.Timeout)
	c.SetLogger(l)
	return c
}

// ProvideSessionResolver creates the session id middleware.
func ProvideSessionResolver(cfg *config.Config) *api.SessionResolver {
	return api.NewSessionResolver(cfg.Session.CookieName, cfg.Session.TTL, cfg.Environment == "production")
}

// ProvideHTTPHandler creates the API handler.
func ProvideHTTPHandler(l *applogger.Logger, ctrl *usecase.Controller, sessions *api.SessionResolver) xhttp.Handler {
	return api.NewDeskEchoHandler(l, ctrl, sessions)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(h xhttp.Handler, l *applogger.Logger, cfg *config.Config) *xhttp.Server {
	return xhttp.NewServer(h, l,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithCORS(len(cfg.Server.CORSOrigins) > 0, cfg.Server.CORSOrigins...),
		xhttp.WithExposeHeaders(api.HeaderSessionID),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}

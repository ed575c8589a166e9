package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"legalease/internal/analysis"
	"legalease/internal/config"
	"legalease/internal/dispatch"
	"legalease/internal/events"
	"legalease/internal/i18n"
	"legalease/internal/kvstore"
	"legalease/internal/logger"
	"legalease/internal/session"
	"legalease/internal/transcript"
)

// Deps bundles the wired client runtime: session state, localization,
// transcript, and the operation dispatcher over the chosen analysis
// provider.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	KV         kvstore.Store
	Locale     *i18n.Resolver
	Session    *session.Store
	Chat       *transcript.Log
	Analysis   analysis.Service
	Dispatcher *dispatch.Dispatcher

	publisher events.Publisher
}

// Build loads env, config, and shared components. notify receives localized
// user-facing notifications; nil disables them.
func Build(ctx context.Context, notify dispatch.Notifier) (*Deps, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	kv, err := buildKV(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	svc, err := buildAnalysis(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis provider: %w", err)
	}

	locale := i18n.New(ctx, kv, log, cfg.DefaultLanguage)
	sess := session.New(ctx, kv, log)
	chat := transcript.New()

	d := &Deps{
		Config:   cfg,
		Log:      log,
		KV:       kv,
		Locale:   locale,
		Session:  sess,
		Chat:     chat,
		Analysis: svc,
	}

	if cfg.EventsURL != "" {
		nc, err := events.Connect(cfg.EventsURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		d.publisher = events.NewNATS(nc)
		sess.Subscribe(events.Bridge(d.publisher, log))
		log.Info("publishing session events", "url", cfg.EventsURL)
	}

	d.Dispatcher = dispatch.New(svc, sess, chat, locale, log, dispatch.Options{
		MaxUploadSize: cfg.MaxUploadSize,
		Notify:        notify,
	})
	return d, nil
}

// Close releases the dispatcher, the event publisher, and the durable store.
func (d *Deps) Close() {
	if d.Dispatcher != nil {
		d.Dispatcher.Close()
	}
	if d.publisher != nil {
		d.publisher.Close()
	}
	if d.KV != nil {
		if err := d.KV.Close(); err != nil {
			d.Log.Warn("failed to close store", "err", err)
		}
	}
}

func buildKV(cfg config.Config, log *slog.Logger) (kvstore.Store, error) {
	switch cfg.StoreProvider {
	case "memory":
		return kvstore.NewMemory(), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when STORE_PROVIDER=redis")
		}
		kv, err := kvstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		log.Info("using Redis store")
		return kv, nil
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		kv, err := kvstore.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return kv, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: memory, redis, postgres)", cfg.StoreProvider)
	}
}

func buildAnalysis(cfg config.Config, log *slog.Logger) (analysis.Service, error) {
	switch cfg.AnalysisProvider {
	case "http":
		if cfg.ServiceURL == "" {
			return nil, fmt.Errorf("SERVICE_URL is required when ANALYSIS_PROVIDER=http")
		}
		log.Info("using remote analysis service", "url", cfg.ServiceURL)
		return analysis.NewHTTPClient(cfg.ServiceURL, cfg.RequestTimeout, log), nil
	case "openai":
		log.Info("using direct analysis provider", "model", cfg.LLMModel, "mock", cfg.OpenAIKey == "")
		return analysis.NewDirect(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), log), nil
	default:
		return nil, fmt.Errorf("invalid ANALYSIS_PROVIDER: %s (valid options: http, openai)", cfg.AnalysisProvider)
	}
}

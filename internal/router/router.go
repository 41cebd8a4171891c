package router

import (
	"context"
	"net/http"
	"time"

	_ "infant-feeding-tracker/docs"
	"infant-feeding-tracker/internal/domain/feeding"
	"infant-feeding-tracker/internal/middleware"
	"infant-feeding-tracker/internal/platform/config"
	"infant-feeding-tracker/internal/platform/logger"
	"infant-feeding-tracker/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil = nop

	// Opcional: si viene, expone /metrics y cuenta requests/eventos.
	Metrics *metrics.Metrics

	Tracker config.TrackerConfig
	Swagger bool

	// Reloj para el servicio. nil = time.Now (los tests lo fijan).
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Tracker en memoria: el estado vive lo que vive el proceso.
	tracker := feeding.NewTracker(feeding.WithCapacity(opts.Tracker.Capacity))

	svcOpts := feeding.ServiceOptions{
		Logger:          log,
		NearDueWindow:   opts.Tracker.NearDueWindow,
		DefaultInterval: opts.Tracker.DefaultInterval,
		Now:             opts.Now,
	}
	if opts.Metrics != nil {
		svcOpts.Recorder = opts.Metrics
	}
	feedingSvc := feeding.NewService(tracker, svcOpts)

	if opts.Tracker.SeedDemo {
		if err := feedingSvc.SeedDemo(context.Background()); err != nil {
			log.Warn("demo seed failed", map[string]any{"error": err})
		}
	}

	if opts.Metrics != nil {
		opts.Metrics.RegisterTrackerGauges(
			func() float64 { return float64(feedingSvc.Count()) },
			func() float64 { return float64(feedingSvc.DueCount()) },
		)
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	feeding.RegisterRoutes(r, feedingSvc)

	return r
}

package watch

import (
	"context"
	"errors"
	"io"
	"time"

	"infant-feeding-tracker/internal/platform/logger"
)

const DefaultInterval = 60 * time.Second

// Source es lo que el watcher necesita de la API; *Client lo implementa.
type Source interface {
	Dashboard(ctx context.Context, window time.Duration) (Dashboard, error)
}

type Options struct {
	Interval time.Duration // 0 = DefaultInterval
	Window   time.Duration // 0 = la del servidor
	Location *time.Location
	Logger   logger.Logger
}

// Watcher refresca el tablero en cada tick y avisa una sola vez por bebé
// cuando le toca comer (se rearma al registrar la toma).
type Watcher struct {
	src  Source
	out  io.Writer
	log  logger.Logger
	opts Options

	alerted map[string]time.Time // subjectID -> next_feeding_at avisado
}

func NewWatcher(src Source, out io.Writer, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Watcher{
		src:     src,
		out:     out,
		log:     opts.Logger.With(map[string]any{"component": "watch"}),
		opts:    opts,
		alerted: map[string]time.Time{},
	}
}

// Once pide el tablero, lo imprime y registra las alertas nuevas.
func (w *Watcher) Once(ctx context.Context) error {
	d, err := w.src.Dashboard(ctx, w.opts.Window)
	if err != nil {
		return err
	}
	if err := Render(w.out, d, w.opts.Location); err != nil {
		return err
	}
	w.notify(d)
	return nil
}

// Run refresca hasta que ctx se cancela. Los errores de red se loguean y
// el loop sigue; devuelve nil al cancelar.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		if err := w.Once(ctx); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			w.log.Warn("dashboard refresh failed", map[string]any{"error": err})
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Watcher) notify(d Dashboard) {
	seen := make(map[string]struct{}, len(d.Subjects))
	for _, s := range d.Subjects {
		seen[s.SubjectID] = struct{}{}
		if !s.Due {
			delete(w.alerted, s.SubjectID)
			continue
		}
		if prev, ok := w.alerted[s.SubjectID]; ok && prev.Equal(s.NextFeedingAt) {
			continue
		}
		w.alerted[s.SubjectID] = s.NextFeedingAt
		w.log.Info("feeding time", map[string]any{
			"subject_id":      s.SubjectID,
			"name":            s.Name,
			"overdue_seconds": s.OverdueSeconds,
		})
	}
	for id := range w.alerted {
		if _, ok := seen[id]; !ok {
			delete(w.alerted, id)
		}
	}
}

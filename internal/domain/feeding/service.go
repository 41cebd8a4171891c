package feeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"infant-feeding-tracker/internal/platform/logger"
)

const (
	DefaultNearDueWindow = 5 * time.Minute
	DefaultInterval      = 3 * time.Hour
)

// Recorder recibe eventos de dominio para métricas. Puede ser nil.
type Recorder interface {
	SubjectAdded()
	SubjectRemoved()
	FeedingRecorded()
}

// Service es el único lugar que lee el reloj; el tracker recibe "now" siempre.
type Service struct {
	tracker *Tracker
	log     logger.Logger
	rec     Recorder
	now     func() time.Time

	nearDueWindow   time.Duration
	defaultInterval time.Duration
}

type ServiceOptions struct {
	Logger          logger.Logger
	Recorder        Recorder
	NearDueWindow   time.Duration
	DefaultInterval time.Duration

	// Reloj opcional (tests end-to-end). nil = time.Now
	Now func() time.Time
}

func NewService(tracker *Tracker, opts ServiceOptions) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.NearDueWindow <= 0 {
		opts.NearDueWindow = DefaultNearDueWindow
	}
	if opts.DefaultInterval <= 0 {
		opts.DefaultInterval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		tracker:         tracker,
		log:             opts.Logger.With(map[string]any{"component": "feeding"}),
		rec:             opts.Recorder,
		now:             opts.Now,
		nearDueWindow:   opts.NearDueWindow,
		defaultInterval: opts.DefaultInterval,
	}
}

type CreateInput struct {
	Name string
	// nil = intervalo por defecto (3h)
	Interval      *time.Duration
	LastFeedingAt *time.Time
	Profile       Profile
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Subject, error) {
	interval := s.defaultInterval
	if in.Interval != nil {
		interval = *in.Interval
	}

	id, err := s.tracker.AddSubject(AddInput{
		Name:          in.Name,
		Interval:      interval,
		LastFeedingAt: in.LastFeedingAt,
		Profile:       in.Profile,
	}, s.now())
	if err != nil {
		if errors.Is(err, ErrCapacityReached) {
			s.log.Warn("subject rejected", map[string]any{"error": err, "capacity": s.tracker.Capacity()})
		}
		return Subject{}, err
	}

	if s.rec != nil {
		s.rec.SubjectAdded()
	}
	s.log.Info("subject added", map[string]any{
		"subject_id": id,
		"interval":   interval.String(),
	})

	return s.tracker.Get(id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Subject, error) {
	return s.tracker.Get(id)
}

func (s *Service) List(ctx context.Context) ([]Subject, error) {
	return s.tracker.ListSubjects(), nil
}

// RecordFeeding marca la toma. Si at es nil se usa el reloj.
// Una toma futura se rechaza; una retroactiva se acepta.
func (s *Service) RecordFeeding(ctx context.Context, id string, at *time.Time) (Subject, error) {
	now := s.now()
	when := now
	if at != nil {
		if at.After(now) {
			return Subject{}, fmt.Errorf("%w: feeding time is in the future", ErrInvalidInput)
		}
		when = *at
	}

	if err := s.tracker.MarkFed(id, when); err != nil {
		return Subject{}, err
	}

	if s.rec != nil {
		s.rec.FeedingRecorded()
	}
	s.log.Info("feeding recorded", map[string]any{
		"subject_id": id,
		"at":         when.Format(time.RFC3339),
	})

	return s.tracker.Get(id)
}

func (s *Service) UpdateInterval(ctx context.Context, id string, interval time.Duration) (Subject, error) {
	if err := s.tracker.UpdateInterval(id, interval, s.now()); err != nil {
		return Subject{}, err
	}
	s.log.Info("feeding interval updated", map[string]any{
		"subject_id": id,
		"interval":   interval.String(),
	})
	return s.tracker.Get(id)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, p Profile) (Subject, error) {
	if err := s.tracker.UpdateProfile(id, p, s.now()); err != nil {
		return Subject{}, err
	}
	s.log.Debug("profile updated", map[string]any{"subject_id": id})
	return s.tracker.Get(id)
}

// AddRemark agrega una observación. Sin hora explícita se usa el reloj.
func (s *Service) AddRemark(ctx context.Context, id string, text string, at *time.Time) (Subject, error) {
	when := s.now()
	if at != nil {
		when = *at
	}
	if err := s.tracker.AddRemark(id, Remark{At: when, Text: text}); err != nil {
		return Subject{}, err
	}
	return s.tracker.Get(id)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.tracker.RemoveSubject(id); err != nil {
		return err
	}
	if s.rec != nil {
		s.rec.SubjectRemoved()
	}
	s.log.Info("subject removed", map[string]any{"subject_id": id})
	return nil
}

// Status evalúa un sujeto. at/window nil = reloj / ventana configurada.
func (s *Service) Status(ctx context.Context, id string, at *time.Time, window *time.Duration) (Status, error) {
	return s.tracker.Status(id, s.resolveNow(at), s.resolveWindow(window))
}

type Dashboard struct {
	Count       int
	Capacity    int
	Window      time.Duration
	EvaluatedAt time.Time
	Subjects    []Status
}

func (s *Service) Dashboard(ctx context.Context, at *time.Time, window *time.Duration) (Dashboard, error) {
	now := s.resolveNow(at)
	w := s.resolveWindow(window)

	statuses, err := s.tracker.Statuses(now, w)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Count:       len(statuses),
		Capacity:    s.tracker.Capacity(),
		Window:      w,
		EvaluatedAt: now,
		Subjects:    statuses,
	}, nil
}

// DueCount se usa para el gauge de métricas.
func (s *Service) DueCount() int {
	statuses, err := s.tracker.Statuses(s.now(), s.nearDueWindow)
	if err != nil {
		return 0
	}
	n := 0
	for _, st := range statuses {
		if st.Due {
			n++
		}
	}
	return n
}

func (s *Service) Count() int {
	return s.tracker.Len()
}

// SeedDemo carga tres bebés de ejemplo con la toma ya vencida.
// Solo para modo dev (SEED_DEMO=true).
func (s *Service) SeedDemo(ctx context.Context) error {
	now := s.now()
	demo := []struct {
		name     string
		interval time.Duration
		room     string
		mother   string
		amount   string
	}{
		{"Harvey", 3 * time.Hour, "401", "YL", "55 ml"},
		{"Lily", 1 * time.Hour, "402", "Anna", "30 ml"},
		{"James", 2 * time.Hour, "403", "Sophia", "100 ml"},
	}

	for _, d := range demo {
		interval := d.interval
		last := now.Add(-interval).Add(-1 * time.Minute)
		if _, err := s.Create(ctx, CreateInput{
			Name:          d.name,
			Interval:      &interval,
			LastFeedingAt: &last,
			Profile: Profile{
				RoomNo:      d.room,
				MotherName:  d.mother,
				AmountRange: d.amount,
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) resolveNow(at *time.Time) time.Time {
	if at != nil {
		return *at
	}
	return s.now()
}

func (s *Service) resolveWindow(w *time.Duration) time.Duration {
	if w != nil {
		return *w
	}
	return s.nearDueWindow
}

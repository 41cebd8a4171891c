package feeding

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tracker mantiene los sujetos en memoria y responde si toca alimentar.
// Nunca lee el reloj: todas las consultas reciben "now" explícito.
type Tracker struct {
	mu    sync.RWMutex
	byID  map[string]*Subject
	order []string

	capacity int // 0 = sin límite
	newID    func() string
}

type Option func(*Tracker)

// WithCapacity limita la cantidad de sujetos. n <= 0 significa sin límite.
func WithCapacity(n int) Option {
	return func(t *Tracker) {
		if n < 0 {
			n = 0
		}
		t.capacity = n
	}
}

// WithIDGenerator reemplaza el generador de IDs (útil en tests).
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.newID = fn
		}
	}
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		byID:  make(map[string]*Subject),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type AddInput struct {
	Name     string
	Interval time.Duration

	// Opcional. Si es nil se usa now.
	LastFeedingAt *time.Time

	Profile Profile
}

func (t *Tracker) AddSubject(in AddInput, now time.Time) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Interval < 0 {
		return "", fmt.Errorf("%w: feeding interval must not be negative", ErrInvalidInput)
	}

	last := now
	if in.LastFeedingAt != nil {
		if in.LastFeedingAt.After(now) {
			return "", fmt.Errorf("%w: last feeding time is in the future", ErrInvalidInput)
		}
		last = *in.LastFeedingAt
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.capacity > 0 && len(t.order) >= t.capacity {
		return "", fmt.Errorf("%w: maximum of %d subjects", ErrCapacityReached, t.capacity)
	}

	// Con uuid.NewString no hay colisiones en la práctica; solo un
	// generador inyectado (tests) puede repetir IDs.
	id := t.newID()
	if _, exists := t.byID[id]; exists {
		return "", fmt.Errorf("%w: duplicate subject id %q", ErrInvalidInput, id)
	}

	s := &Subject{
		ID:              id,
		Name:            name,
		FeedingInterval: in.Interval,
		LastFeedingAt:   last,
		Profile:         in.Profile.clone(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	t.byID[id] = s
	t.order = append(t.order, id)

	return id, nil
}

func (t *Tracker) IsFeedingDue(id string, now time.Time) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(id)
	if err != nil {
		return false, err
	}
	return isDue(s.LastFeedingAt, s.FeedingInterval, now), nil
}

// IsNearDue es un predicado distinto de IsFeedingDue: mira una ventana
// alrededor de la próxima toma, antes o después.
func (t *Tracker) IsNearDue(id string, now time.Time, window time.Duration) (bool, error) {
	if window < 0 {
		return false, fmt.Errorf("%w: window must not be negative", ErrInvalidInput)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(id)
	if err != nil {
		return false, err
	}
	return isNearDue(s.NextFeedingAt(), now, window), nil
}

func (t *Tracker) NextFeedingAt(id string) (time.Time, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(id)
	if err != nil {
		return time.Time{}, err
	}
	return s.NextFeedingAt(), nil
}

// MarkFed registra una toma en now. No se rechazan tomas retroactivas.
func (t *Tracker) MarkFed(id string, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	s.LastFeedingAt = now
	s.UpdatedAt = now
	return nil
}

func (t *Tracker) UpdateInterval(id string, interval time.Duration, now time.Time) error {
	if interval < 0 {
		return fmt.Errorf("%w: feeding interval must not be negative", ErrInvalidInput)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	s.FeedingInterval = interval
	s.UpdatedAt = now
	return nil
}

// UpdateProfile reemplaza la ficha completa.
func (t *Tracker) UpdateProfile(id string, p Profile, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	s.Profile = p.clone()
	s.UpdatedAt = now
	return nil
}

func (t *Tracker) AddRemark(id string, r Remark) error {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return fmt.Errorf("%w: remark text is required", ErrInvalidInput)
	}
	if r.At.IsZero() {
		return fmt.Errorf("%w: remark time is required", ErrInvalidInput)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	s.Remarks = append(s.Remarks, r)
	return nil
}

func (t *Tracker) RemoveSubject(id string) error {
	id = strings.TrimSpace(id)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.lookup(id); err != nil {
		return err
	}
	delete(t.byID, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Tracker) Get(id string) (Subject, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(id)
	if err != nil {
		return Subject{}, err
	}
	return s.clone(), nil
}

// ListSubjects devuelve una copia en orden de alta.
func (t *Tracker) ListSubjects() []Subject {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Subject, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id].clone())
	}
	return out
}

func (t *Tracker) Status(id string, now time.Time, window time.Duration) (Status, error) {
	if window < 0 {
		return Status{}, fmt.Errorf("%w: window must not be negative", ErrInvalidInput)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(id)
	if err != nil {
		return Status{}, err
	}
	return statusOf(s, now, window), nil
}

// Statuses evalúa todos los sujetos en el mismo instante, en orden de alta.
func (t *Tracker) Statuses(now time.Time, window time.Duration) ([]Status, error) {
	if window < 0 {
		return nil, fmt.Errorf("%w: window must not be negative", ErrInvalidInput)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Status, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, statusOf(t.byID[id], now, window))
	}
	return out, nil
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

func (t *Tracker) Capacity() int {
	return t.capacity
}

// lookup asume el lock tomado.
func (t *Tracker) lookup(id string) (*Subject, error) {
	s, ok := t.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s, nil
}

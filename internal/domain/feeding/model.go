package feeding

import "time"

// Subject es un bebé con su esquema de alimentación.
type Subject struct {
	ID   string
	Name string

	// Intervalo máximo entre tomas. Cero = pendiente en cuanto pasa cualquier tiempo.
	FeedingInterval time.Duration
	LastFeedingAt   time.Time

	Profile Profile
	Remarks []Remark

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextFeedingAt es la hora esperada de la próxima toma.
func (s Subject) NextFeedingAt() time.Time {
	return s.LastFeedingAt.Add(s.FeedingInterval)
}

// Profile agrupa los datos descriptivos de la ficha.
// No tiene comportamiento: el tracker solo lo guarda y lo devuelve.
type Profile struct {
	RoomNo     string
	MotherName string
	ImageURL   string

	CheckoutDate       *time.Time
	PhotoshootDate     *time.Time
	CotSheetChangeDate *time.Time

	AmountRange string // "30-60 ml"
	Frequency   string // texto libre, p.ej. "cada 3h"

	// Citas y reservas
	MotherBabyCareAt    *time.Time
	ParentCraft         string
	ReturnDemoBath      string
	BreastMassage       string
	InfantMassage       string
	PDGyneAppointment   string
	LactationConsultant string
}

// Remark es una entrada del registro de observaciones.
type Remark struct {
	At   time.Time
	Text string
}

// Status es el estado derivado de un sujeto en un instante dado. Nunca se guarda.
type Status struct {
	SubjectID       string
	Name            string
	FeedingInterval time.Duration
	LastFeedingAt   time.Time
	NextFeedingAt   time.Time

	Due     bool
	NearDue bool
	Overdue time.Duration

	EvaluatedAt time.Time
}

func (s Subject) clone() Subject {
	out := s
	if s.Remarks != nil {
		out.Remarks = make([]Remark, len(s.Remarks))
		copy(out.Remarks, s.Remarks)
	}
	out.Profile = s.Profile.clone()
	return out
}

func (p Profile) clone() Profile {
	out := p
	out.CheckoutDate = cloneTime(p.CheckoutDate)
	out.PhotoshootDate = cloneTime(p.PhotoshootDate)
	out.CotSheetChangeDate = cloneTime(p.CotSheetChangeDate)
	out.MotherBabyCareAt = cloneTime(p.MotherBabyCareAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

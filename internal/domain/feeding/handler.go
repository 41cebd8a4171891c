package feeding

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/subjects", func(sr chi.Router) {
		sr.Post("/", createSubjectHandler(svc))
		sr.Get("/", listSubjectsHandler(svc))

		sr.Route("/{subjectID}", func(one chi.Router) {
			one.Get("/", getSubjectHandler(svc))
			one.Delete("/", deleteSubjectHandler(svc))

			one.Put("/interval", updateIntervalHandler(svc))
			one.Put("/profile", updateProfileHandler(svc))
			one.Post("/remarks", addRemarkHandler(svc))

			// "Feeding done": reinicia el contador
			one.Post("/feedings", recordFeedingHandler(svc))
			one.Get("/status", statusHandler(svc))
		})
	})

	r.Get("/dashboard", dashboardHandler(svc))
}

// createSubjectRequest es el alta de un bebé. Sin intervalo => 3h.
type createSubjectRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	IntervalHours   *int            `json:"interval_hours" validate:"omitempty,min=0,max=23"`
	IntervalMinutes *int            `json:"interval_minutes" validate:"omitempty,min=0,max=59"`
	LastFeedingAt   string          `json:"last_feeding_at"` // RFC3339 opcional
	Profile         *profilePayload `json:"profile"`
}

type updateIntervalRequest struct {
	IntervalHours   int `json:"interval_hours" validate:"min=0,max=23"`
	IntervalMinutes int `json:"interval_minutes" validate:"min=0,max=59"`
}

type addRemarkRequest struct {
	Text string `json:"text" validate:"required,max=500"`
	At   string `json:"at"` // RFC3339 opcional
}

type recordFeedingRequest struct {
	At string `json:"at"` // RFC3339 opcional
}

// profilePayload: fechas YYYY-MM-DD, mother_baby_care_at RFC3339.
type profilePayload struct {
	RoomNo              string  `json:"room_no" validate:"max=20"`
	MotherName          string  `json:"mother_name" validate:"max=100"`
	ImageURL            string  `json:"image_url" validate:"omitempty,url"`
	CheckoutDate        *string `json:"checkout_date"`
	PhotoshootDate      *string `json:"photoshoot_date"`
	CotSheetChangeDate  *string `json:"cot_sheet_change_date"`
	AmountRange         string  `json:"amount_range"`
	Frequency           string  `json:"frequency"`
	MotherBabyCareAt    *string `json:"mother_baby_care_at"`
	ParentCraft         string  `json:"parent_craft"`
	ReturnDemoBath      string  `json:"return_demo_bath"`
	BreastMassage       string  `json:"breast_massage"`
	InfantMassage       string  `json:"infant_massage"`
	PDGyneAppointment   string  `json:"pd_gyne_appointment"`
	LactationConsultant string  `json:"lactation_consultant"`
}

type remarkResponse struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

type subjectResponse struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	FeedingInterval        string           `json:"feeding_interval"`
	FeedingIntervalMinutes int64            `json:"feeding_interval_minutes"`
	LastFeedingAt          time.Time        `json:"last_feeding_at"`
	NextFeedingAt          time.Time        `json:"next_feeding_at"`
	Profile                profilePayload   `json:"profile"`
	Remarks                []remarkResponse `json:"remarks"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

type statusResponse struct {
	SubjectID       string    `json:"subject_id"`
	Name            string    `json:"name"`
	FeedingInterval string    `json:"feeding_interval"`
	LastFeedingAt   time.Time `json:"last_feeding_at"`
	NextFeedingAt   time.Time `json:"next_feeding_at"`
	Due             bool      `json:"due"`
	NearDue         bool      `json:"near_due"`
	OverdueSeconds  int64     `json:"overdue_seconds"`
	EvaluatedAt     time.Time `json:"evaluated_at"`
}

type dashboardResponse struct {
	Count       int              `json:"count"`
	Capacity    int              `json:"capacity"` // 0 = sin límite
	Window      string           `json:"window"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
	Subjects    []statusResponse `json:"subjects"`
}

// createSubjectHandler godoc
// @Summary Alta de bebé
// @Description Crea un sujeto con su intervalo de alimentación. La última toma por defecto es ahora.
// @Tags subjects
// @Accept json
// @Produce json
// @Param payload body createSubjectRequest true "Datos del bebé"
// @Success 201 {object} subjectResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 409 {string} string "capacity reached"
// @Router /subjects [post]
func createSubjectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSubjectRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var interval *time.Duration
		if req.IntervalHours != nil || req.IntervalMinutes != nil {
			d := hoursMinutes(derefInt(req.IntervalHours), derefInt(req.IntervalMinutes))
			interval = &d
		}

		last, err := parseOptionalRFC3339(req.LastFeedingAt)
		if err != nil {
			http.Error(w, "last_feeding_at must be RFC3339", http.StatusBadRequest)
			return
		}

		var profile Profile
		if req.Profile != nil {
			profile, err = req.Profile.toProfile()
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		s, err := svc.Create(r.Context(), CreateInput{
			Name:          req.Name,
			Interval:      interval,
			LastFeedingAt: last,
			Profile:       profile,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toSubjectResponse(s))
	}
}

// listSubjectsHandler godoc
// @Summary Listar bebés
// @Description Devuelve los sujetos en orden de alta.
// @Tags subjects
// @Produce json
// @Success 200 {array} subjectResponse
// @Router /subjects [get]
func listSubjectsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]subjectResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toSubjectResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getSubjectHandler godoc
// @Summary Ficha del bebé
// @Tags subjects
// @Produce json
// @Param subjectID path string true "ID del sujeto"
// @Success 200 {object} subjectResponse
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID} [get]
func getSubjectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.GetByID(r.Context(), chi.URLParam(r, "subjectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubjectResponse(s))
	}
}

// deleteSubjectHandler godoc
// @Summary Baja de bebé
// @Tags subjects
// @Param subjectID path string true "ID del sujeto"
// @Success 204
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID} [delete]
func deleteSubjectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "subjectID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// updateIntervalHandler godoc
// @Summary Cambiar intervalo de alimentación
// @Tags subjects
// @Accept json
// @Produce json
// @Param subjectID path string true "ID del sujeto"
// @Param payload body updateIntervalRequest true "Horas (0-23) y minutos (0-59)"
// @Success 200 {object} subjectResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID}/interval [put]
func updateIntervalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateIntervalRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := svc.UpdateInterval(r.Context(), chi.URLParam(r, "subjectID"), hoursMinutes(req.IntervalHours, req.IntervalMinutes))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubjectResponse(s))
	}
}

// updateProfileHandler godoc
// @Summary Guardar ficha
// @Description Reemplaza todos los datos descriptivos (habitación, madre, fechas, citas).
// @Tags subjects
// @Accept json
// @Produce json
// @Param subjectID path string true "ID del sujeto"
// @Param payload body profilePayload true "Ficha completa"
// @Success 200 {object} subjectResponse
// @Failure 400 {string} string "invalid json / fecha inválida"
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID}/profile [put]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profilePayload
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := req.toProfile()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "subjectID"), p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubjectResponse(s))
	}
}

// addRemarkHandler godoc
// @Summary Agregar observación
// @Tags subjects
// @Accept json
// @Produce json
// @Param subjectID path string true "ID del sujeto"
// @Param payload body addRemarkRequest true "Texto y hora opcional (RFC3339)"
// @Success 201 {object} subjectResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID}/remarks [post]
func addRemarkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addRemarkRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		at, err := parseOptionalRFC3339(req.At)
		if err != nil {
			http.Error(w, "at must be RFC3339", http.StatusBadRequest)
			return
		}

		s, err := svc.AddRemark(r.Context(), chi.URLParam(r, "subjectID"), req.Text, at)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSubjectResponse(s))
	}
}

// recordFeedingHandler godoc
// @Summary Toma realizada
// @Description Registra la toma y reinicia el intervalo. Body opcional con "at" (RFC3339).
// @Tags feedings
// @Accept json
// @Produce json
// @Param subjectID path string true "ID del sujeto"
// @Param payload body recordFeedingRequest false "Hora de la toma"
// @Success 200 {object} subjectResponse
// @Failure 400 {string} string "invalid json / at inválido"
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID}/feedings [post]
func recordFeedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordFeedingRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		at, err := parseOptionalRFC3339(req.At)
		if err != nil {
			http.Error(w, "at must be RFC3339", http.StatusBadRequest)
			return
		}

		s, err := svc.RecordFeeding(r.Context(), chi.URLParam(r, "subjectID"), at)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubjectResponse(s))
	}
}

// statusHandler godoc
// @Summary Estado de alimentación
// @Description due = pasó el intervalo; near_due = dentro de la ventana alrededor de la próxima toma.
// @Tags feedings
// @Produce json
// @Param subjectID path string true "ID del sujeto"
// @Param at query string false "Instante de evaluación (RFC3339). Default: ahora"
// @Param window query string false "Ventana near-due (p.ej. 5m)"
// @Success 200 {object} statusResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 404 {string} string "subject not found"
// @Router /subjects/{subjectID}/status [get]
func statusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at, window, ok := parseEvalQuery(w, r)
		if !ok {
			return
		}

		st, err := svc.Status(r.Context(), chi.URLParam(r, "subjectID"), at, window)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toStatusResponse(st))
	}
}

// dashboardHandler godoc
// @Summary Tablero
// @Description Estado de todos los bebés en el mismo instante, con conteo y capacidad.
// @Tags feedings
// @Produce json
// @Param at query string false "Instante de evaluación (RFC3339). Default: ahora"
// @Param window query string false "Ventana near-due (p.ej. 5m)"
// @Success 200 {object} dashboardResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at, window, ok := parseEvalQuery(w, r)
		if !ok {
			return
		}

		d, err := svc.Dashboard(r.Context(), at, window)
		if err != nil {
			writeError(w, err)
			return
		}

		out := dashboardResponse{
			Count:       d.Count,
			Capacity:    d.Capacity,
			Window:      d.Window.String(),
			EvaluatedAt: d.EvaluatedAt,
			Subjects:    make([]statusResponse, 0, len(d.Subjects)),
		}
		for _, st := range d.Subjects {
			out.Subjects = append(out.Subjects, toStatusResponse(st))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseEvalQuery(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Duration, bool) {
	q := r.URL.Query()

	at, err := parseOptionalRFC3339(q.Get("at"))
	if err != nil {
		http.Error(w, "at must be RFC3339", http.StatusBadRequest)
		return nil, nil, false
	}

	var window *time.Duration
	if raw := strings.TrimSpace(q.Get("window")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			http.Error(w, "window must be a duration like 5m", http.StatusBadRequest)
			return nil, nil, false
		}
		window = &d
	}
	return at, window, true
}

func (p profilePayload) toProfile() (Profile, error) {
	out := Profile{
		RoomNo:              strings.TrimSpace(p.RoomNo),
		MotherName:          strings.TrimSpace(p.MotherName),
		ImageURL:            strings.TrimSpace(p.ImageURL),
		AmountRange:         strings.TrimSpace(p.AmountRange),
		Frequency:           strings.TrimSpace(p.Frequency),
		ParentCraft:         strings.TrimSpace(p.ParentCraft),
		ReturnDemoBath:      strings.TrimSpace(p.ReturnDemoBath),
		BreastMassage:       strings.TrimSpace(p.BreastMassage),
		InfantMassage:       strings.TrimSpace(p.InfantMassage),
		PDGyneAppointment:   strings.TrimSpace(p.PDGyneAppointment),
		LactationConsultant: strings.TrimSpace(p.LactationConsultant),
	}

	var err error
	if out.CheckoutDate, err = parseOptionalDate(p.CheckoutDate, "checkout_date"); err != nil {
		return Profile{}, err
	}
	if out.PhotoshootDate, err = parseOptionalDate(p.PhotoshootDate, "photoshoot_date"); err != nil {
		return Profile{}, err
	}
	if out.CotSheetChangeDate, err = parseOptionalDate(p.CotSheetChangeDate, "cot_sheet_change_date"); err != nil {
		return Profile{}, err
	}
	if p.MotherBabyCareAt != nil {
		if out.MotherBabyCareAt, err = parseOptionalRFC3339(*p.MotherBabyCareAt); err != nil {
			return Profile{}, errors.New("mother_baby_care_at must be RFC3339")
		}
	}
	return out, nil
}

func toProfilePayload(p Profile) profilePayload {
	return profilePayload{
		RoomNo:              p.RoomNo,
		MotherName:          p.MotherName,
		ImageURL:            p.ImageURL,
		CheckoutDate:        formatDate(p.CheckoutDate),
		PhotoshootDate:      formatDate(p.PhotoshootDate),
		CotSheetChangeDate:  formatDate(p.CotSheetChangeDate),
		AmountRange:         p.AmountRange,
		Frequency:           p.Frequency,
		MotherBabyCareAt:    formatRFC3339(p.MotherBabyCareAt),
		ParentCraft:         p.ParentCraft,
		ReturnDemoBath:      p.ReturnDemoBath,
		BreastMassage:       p.BreastMassage,
		InfantMassage:       p.InfantMassage,
		PDGyneAppointment:   p.PDGyneAppointment,
		LactationConsultant: p.LactationConsultant,
	}
}

func toSubjectResponse(s Subject) subjectResponse {
	remarks := make([]remarkResponse, 0, len(s.Remarks))
	for _, r := range s.Remarks {
		remarks = append(remarks, remarkResponse{At: r.At, Text: r.Text})
	}
	return subjectResponse{
		ID:                     s.ID,
		Name:                   s.Name,
		FeedingInterval:        s.FeedingInterval.String(),
		FeedingIntervalMinutes: int64(s.FeedingInterval / time.Minute),
		LastFeedingAt:          s.LastFeedingAt,
		NextFeedingAt:          s.NextFeedingAt(),
		Profile:                toProfilePayload(s.Profile),
		Remarks:                remarks,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

func toStatusResponse(st Status) statusResponse {
	return statusResponse{
		SubjectID:       st.SubjectID,
		Name:            st.Name,
		FeedingInterval: st.FeedingInterval.String(),
		LastFeedingAt:   st.LastFeedingAt,
		NextFeedingAt:   st.NextFeedingAt,
		Due:             st.Due,
		NearDue:         st.NearDue,
		OverdueSeconds:  int64(st.Overdue / time.Second),
		EvaluatedAt:     st.EvaluatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "subject not found", http.StatusNotFound)
	case errors.Is(err, ErrCapacityReached):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func hoursMinutes(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func parseOptionalRFC3339(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*raw))
	if err != nil {
		return nil, errors.New(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func formatRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package watch

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

const (
	alertDue     = "FEEDING TIME"
	alertNearDue = "feeding soon"
)

// Render escribe una línea por bebé. Las horas se muestran en la zona de loc.
func Render(w io.Writer, d Dashboard, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	header := fmt.Sprintf("%d subjects", d.Count)
	if d.Capacity > 0 {
		header = fmt.Sprintf("%d/%d subjects", d.Count, d.Capacity)
	}
	if _, err := fmt.Fprintf(w, "%s at %s (window %s)\n",
		header, d.EvaluatedAt.In(loc).Format("15:04:05"), d.Window); err != nil {
		return err
	}

	if len(d.Subjects) == 0 {
		_, err := fmt.Fprintln(w, "no subjects")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEVERY\tLAST\tNEXT\tALERT")
	for _, s := range d.Subjects {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.SubjectID,
			s.Name,
			s.FeedingInterval,
			s.LastFeedingAt.In(loc).Format("15:04"),
			s.NextFeedingAt.In(loc).Format("15:04"),
			alertFor(s),
		)
	}
	return tw.Flush()
}

// RenderList imprime los sujetos sin evaluar estado.
func RenderList(w io.Writer, subjects []Subject, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	if len(subjects) == 0 {
		_, err := fmt.Fprintln(w, "no subjects")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEVERY\tNEXT")
	for _, s := range subjects {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.FeedingInterval, s.NextFeedingAt.In(loc).Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func alertFor(s Status) string {
	switch {
	case s.Due:
		over := (time.Duration(s.OverdueSeconds) * time.Second).Truncate(time.Minute)
		if over > 0 {
			return fmt.Sprintf("%s (+%s)", alertDue, shortDuration(over))
		}
		return alertDue
	case s.NearDue:
		return alertNearDue
	default:
		return ""
	}
}

// shortDuration quita los "0s" sobrantes: 1h5m0s -> 1h5m.
func shortDuration(d time.Duration) string {
	s := d.String()
	if len(s) > 2 && s[len(s)-2:] == "0s" {
		s = s[:len(s)-2]
	}
	if len(s) > 2 && s[len(s)-2:] == "h0m" {
		s = s[:len(s)-2]
	}
	return s
}

package views

import (
	"context"
	"fmt"
	"time"

	"campusEvents/internal/models"
)

type HistoryFilter string

const (
	HistoryAll       HistoryFilter = "all"
	HistoryUpcoming  HistoryFilter = "upcoming"
	HistoryPast      HistoryFilter = "past"
	HistoryCancelled HistoryFilter = "cancelled"
)

func ParseHistoryFilter(s string) (HistoryFilter, error) {
	switch f := HistoryFilter(s); f {
	case "":
		return HistoryAll, nil
	case HistoryAll, HistoryUpcoming, HistoryPast, HistoryCancelled:
		return f, nil
	default:
		return "", fmt.Errorf("unknown registrations filter %q", s)
	}
}

// FilterRegistrations applies f locally, keeping order.
//   - upcoming: still registered and starting after now
//   - past: starting at or before now, whatever the status
//   - cancelled: cancelled, whatever the date
func FilterRegistrations(regs []models.Registration, f HistoryFilter, now time.Time) []models.Registration {
	out := make([]models.Registration, 0, len(regs))

	for _, r := range regs {
		var keep bool

		switch f {
		case HistoryUpcoming:
			keep = r.Status == models.RegistrationRegistered && r.Event.StartAt.After(now)
		case HistoryPast:
			keep = !r.Event.StartAt.After(now)
		case HistoryCancelled:
			keep = r.Status == models.RegistrationCancelled
		default:
			keep = true
		}

		if keep {
			out = append(out, r)
		}
	}

	return out
}

type HistoryItem struct {
	models.Registration
	Phase    models.Phase `json:"phase"`
	InFlight bool         `json:"inFlight"`
}

type HistorySnapshot struct {
	Filter        HistoryFilter `json:"filter"`
	Registrations []HistoryItem `json:"registrations"`
	Total         int           `json:"total"`
	Error         string        `json:"error,omitempty"`
}

// History is the viewer's registration history. It has no pagination.
type History struct {
	regs Registrations
	now  func() time.Time
}

func NewHistory(regs Registrations) *History {
	return &History{regs: regs, now: time.Now}
}

func (h *History) Load(ctx context.Context, f HistoryFilter) (*HistorySnapshot, error) {
	snap := &HistorySnapshot{Filter: f, Registrations: []HistoryItem{}}

	regs, err := h.regs.Registrations(ctx)
	if err != nil {
		snap.Error = ErrorMessage(err, FailedRegistrations)
		return snap, err
	}

	now := h.now()
	snap.Total = len(regs)

	for _, r := range FilterRegistrations(regs, f, now) {
		snap.Registrations = append(snap.Registrations, HistoryItem{
			Registration: r,
			Phase:        r.Event.PhaseAt(now),
			InFlight:     h.regs.InFlight(r.Event.ID),
		})
	}

	return snap, nil
}

// Cancel cancels the registration for eventID; the row stays, flipped to cancelled.
func (h *History) Cancel(ctx context.Context, eventID string) error {
	return h.regs.Cancel(ctx, eventID)
}

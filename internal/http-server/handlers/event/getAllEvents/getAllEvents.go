package getAllEvents

import (
	"campusEvents/internal/api"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/lib/api/upstream"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/session"
	"campusEvents/internal/views"
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

type EventsResponse struct {
	response.Response
	Listing *views.EventsSnapshot `json:"listing"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsLister
type EventsLister interface {
	ListEvents(ctx context.Context, s *session.Session, q views.Query) (*views.EventsSnapshot, error)
}

func New(log *slog.Logger, lister EventsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(slog.String("op", op))

		s, ok := mwsession.FromContext(r.Context())
		if !ok {
			log.Error("no session in request context")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load session"))
			return
		}

		q, err := parseQuery(r)
		if err != nil {
			log.Error("invalid query", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page"))
			return
		}

		snap, err := lister.ListEvents(r.Context(), s, q)
		if err != nil {
			log.Error("failed to list events", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error(upstream.Message(err, views.FailedListEvents)))
			return
		}

		log.Debug("events listed", slog.Int("page", snap.Query.Page), slog.Int("count", len(snap.Events)))

		responseOK(w, r, snap)
	}
}

// parseQuery reads the listing query. A missing page means the first one.
func parseQuery(r *http.Request) (views.Query, error) {
	v := r.URL.Query()

	q := views.Query{
		Filters: api.EventFilters{
			Search:    v.Get("q"),
			Upcoming:  v.Get("upcoming") == "true",
			Tags:      v.Get("tags"),
			Organizer: v.Get("organizer"),
		},
		Page: 1,
	}

	if raw := v.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, err
		}

		q.Page = page
	}

	return q, nil
}

func responseOK(w http.ResponseWriter, r *http.Request, snap *views.EventsSnapshot) {
	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Listing:  snap,
	})
}

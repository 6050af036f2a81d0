package http

import (
	"net/http"
	"time"

	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/meeting-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(h *Handler, wsHandler http.HandlerFunc, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(httputil.MiddlewareLogging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", httputil.HeaderRequestID, httpmw.HeaderUserID},
		ExposedHeaders:   []string{httputil.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httpmw.Identity)

	// WS без таймаута запроса
	if wsHandler != nil {
		r.Get("/ws/meetings/{id}", wsHandler)
	}

	r.Group(func(pr chi.Router) {
		if opts.RequestTimeout > 0 {
			pr.Use(middlewareChi.Timeout(opts.RequestTimeout))
		}

		pr.Route("/meetings", func(rm chi.Router) {
			rm.Post("/", h.CreateMeeting)
			rm.Get("/", h.ListMeetings)
			rm.Get("/code/{code}", h.GetMeetingByCode)

			rm.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", h.GetMeeting)
				rr.Patch("/", h.UpdateMeeting)
				rr.Delete("/", h.DeleteMeeting)

				rr.Get("/participants", h.ListParticipants)
				rr.Post("/participants", h.AddParticipant)
				rr.Patch("/participants/{pid}", h.UpdateParticipant)
				rr.Delete("/participants/{pid}", h.RemoveParticipant)

				rr.Get("/messages", h.ListMessages)
				rr.Post("/messages", h.SendMessage)
				rr.Delete("/messages/{mid}", h.DeleteMessage)
			})
		})

		pr.Route("/backgrounds", func(rb chi.Router) {
			rb.Get("/", h.ListBackgrounds)
			rb.Post("/", h.UploadBackground)
			rb.Get("/{id}", h.GetBackground)
			rb.Get("/{id}/image", h.BackgroundImage)
			rb.Delete("/{id}", h.DeleteBackground)
		})

		pr.Route("/users/{userID}", func(ru chi.Router) {
			ru.Get("/background", h.GetUserBackground)
			ru.Put("/background", h.SetUserBackground)
			ru.Get("/settings", h.GetSettings)
			ru.Put("/settings", h.SaveSettings)
			ru.Delete("/settings", h.ResetSettings)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

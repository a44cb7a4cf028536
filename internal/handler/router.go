package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-ledger/backend/internal/handler/events"
	"github.com/zhouzirui/z-ledger/backend/internal/handler/records"
	"github.com/zhouzirui/z-ledger/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/z-ledger/backend/internal/middleware"
	"github.com/zhouzirui/z-ledger/backend/internal/model/book"
	"github.com/zhouzirui/z-ledger/backend/internal/model/contact"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	"github.com/zhouzirui/z-ledger/backend/internal/model/shopping"
	"github.com/zhouzirui/z-ledger/backend/internal/model/task"
	eventservice "github.com/zhouzirui/z-ledger/backend/internal/service/events"
	"github.com/zhouzirui/z-ledger/backend/internal/service/registry"
	"github.com/zhouzirui/z-ledger/backend/pkg/utils"
)

// Services bundles the per-kind registries served over HTTP.
type Services struct {
	Contacts *registry.Service[*contact.Contact]
	Books    *registry.Service[*book.Book]
	Shopping *registry.Service[*shopping.Item]
	Tasks    *registry.Service[*task.Task]
}

// NewServices creates empty registries that all report to observer.
func NewServices(observer record.Observer) Services {
	return Services{
		Contacts: registry.NewService[*contact.Contact](contact.Kind, observer),
		Books:    registry.NewService[*book.Book](book.Kind, observer),
		Shopping: registry.NewService[*shopping.Item](shopping.Kind, observer),
		Tasks:    registry.NewService[*task.Task](task.Kind, observer),
	}
}

// NewRouter wires HTTP routes to the record registries. hub and collector
// are optional; nil disables the event feed or the /metrics endpoint.
func NewRouter(svcs Services, hub *eventservice.Hub, collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	if collector != nil {
		r.Use(collector.Middleware)
		collector.TrackSize(contact.Kind, svcs.Contacts.Len)
		collector.TrackSize(book.Kind, svcs.Books.Len)
		collector.TrackSize(shopping.Kind, svcs.Shopping.Len)
		collector.TrackSize(task.Kind, svcs.Tasks.Len)
		r.Get("/metrics", collector.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		records.NewContacts(svcs.Contacts).RegisterRoutes(api)
		records.NewBooks(svcs.Books).RegisterRoutes(api)
		records.NewShopping(svcs.Shopping).RegisterRoutes(api)
		records.NewTasks(svcs.Tasks).RegisterRoutes(api)

		if hub != nil {
			events.New(hub).RegisterRoutes(api)
		} else {
			api.Get("/events/*", func(w http.ResponseWriter, r *http.Request) {
				utils.RespondError(w, http.StatusServiceUnavailable, "event feed disabled")
			})
		}
	})

	return r
}

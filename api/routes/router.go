package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sirimeals/mealops-backend/api/controllers"
	"github.com/sirimeals/mealops-backend/api/middleware"
	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/internal/bags"
	"github.com/sirimeals/mealops-backend/internal/holidays"
	"github.com/sirimeals/mealops-backend/internal/packing"
	"github.com/sirimeals/mealops-backend/internal/subscriptions"
	"github.com/sirimeals/mealops-backend/pkg/config"
	"github.com/sirimeals/mealops-backend/pkg/logger"
	"github.com/sirimeals/mealops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	subscriptionService subscriptions.Service,
	bagService bags.Service,
	packingService packing.Service,
	holidayService holidays.Service,
	auditLogService auditlog.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Actor(logg),
			middleware.Idempotency(redisClient, logg),
		)

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", controllers.SubscriptionCreate(subscriptionService, logg))
			r.Get("/", controllers.SubscriptionList(subscriptionService, logg))
			r.Get("/{subscriptionId}", controllers.SubscriptionGet(subscriptionService, logg))
			r.Put("/{subscriptionId}", controllers.SubscriptionUpdate(subscriptionService, logg))
		})

		r.Route("/bags", func(r chi.Router) {
			r.Get("/", controllers.BagList(bagService, logg))
			r.Get("/export", controllers.BagExport(bagService, logg))
			r.Put("/baskets", controllers.BagAssignBaskets(bagService, logg))
			r.Get("/{bagId}", controllers.BagGet(bagService, logg))
			r.Patch("/{bagId}", controllers.BagUpdate(bagService, logg))
			r.Delete("/{bagId}", controllers.BagRemove(bagService, logg))
		})

		r.Route("/packing", func(r chi.Router) {
			r.Post("/items/verify", controllers.PackingVerifyItem(packingService, logg))
			r.Post("/bags/verify", controllers.PackingVerifyBag(packingService, logg))
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", controllers.HolidayList(holidayService, logg))
			r.Put("/", controllers.HolidayUpdate(holidayService, logg))
		})

		r.Get("/audit-logs", controllers.AuditLogList(auditLogService, logg))
	})

	return r
}

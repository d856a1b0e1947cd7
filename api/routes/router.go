package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/cafe-companion/api/controllers"
	"github.com/angelmondragon/cafe-companion/api/middleware"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/internal/sessions"
	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	registry *sessions.Registry,
	menu *catalog.Catalog,
	engine controllers.Recommender,
	giftCards controllers.GiftCardService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	// a nil *redis.Client must not reach the interfaces as a non-nil value
	var (
		pinger      controllers.Pinger
		idempotency redis.IdempotencyStore
	)
	if redisClient != nil {
		pinger = redisClient
		idempotency = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pinger, registry))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.MenuList(menu, logg))
		r.Get("/menu/{itemId}", controllers.MenuItem(menu, logg))
		r.Get("/gift-cards/templates", controllers.GiftCardTemplates(giftCards))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Use(middleware.Idempotency(idempotency, cfg.Idempotency.TTL, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(registry, logg))
				r.Delete("/", controllers.CartClear(registry, logg))
				r.Post("/items", controllers.CartAddItem(menu, registry, logg))
				r.Patch("/items/{lineId}", controllers.CartUpdateItem(registry, logg))
				r.Delete("/items/{lineId}", controllers.CartRemoveItem(registry, logg))
			})

			r.Get("/recommendations", controllers.Recommendations(menu, engine, registry, logg))

			r.Route("/loyalty", func(r chi.Router) {
				r.Get("/", controllers.LoyaltySummary(registry, logg))
				r.Get("/rewards", controllers.LoyaltyRewards(registry, logg))
				r.Post("/rewards/{rewardId}/redeem", controllers.LoyaltyRedeem(registry, logg))
			})

			r.Post("/gift-cards", controllers.GiftCardSend(giftCards, logg))

			r.Route("/table", func(r chi.Router) {
				r.Post("/scan", controllers.TableScan(registry, logg))
				r.Get("/order", controllers.TableOrderFetch(registry, logg))
				r.Post("/order/items", controllers.TableOrderAdd(menu, registry, logg))
				r.Delete("/order/items/{itemId}", controllers.TableOrderDecrement(registry, logg))
				r.Post("/order/place", controllers.TableOrderPlace(registry, logg))
			})
		})
	})

	return r
}

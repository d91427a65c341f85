package routes

import (
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/api/handlers"
	"github.com/ratewatch/medicaid-rates-backend/internal/api/middleware"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	ratesHandler        *handlers.RatesHandler
	mutationsHandler    *handlers.MutationsHandler
	alertsHandler       *handlers.AlertsHandler
	billsHandler        *handlers.BillsHandler
	categoriesHandler   *handlers.CategoriesHandler
	preferencesHandler  *handlers.PreferencesHandler
	subscriptionHandler *handlers.SubscriptionHandler
	contactHandler      *handlers.ContactHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	ratesHandler *handlers.RatesHandler,
	mutationsHandler *handlers.MutationsHandler,
	alertsHandler *handlers.AlertsHandler,
	billsHandler *handlers.BillsHandler,
	categoriesHandler *handlers.CategoriesHandler,
	preferencesHandler *handlers.PreferencesHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	contactHandler *handlers.ContactHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		ratesHandler:        ratesHandler,
		mutationsHandler:    mutationsHandler,
		alertsHandler:       alertsHandler,
		billsHandler:        billsHandler,
		categoriesHandler:   categoriesHandler,
		preferencesHandler:  preferencesHandler,
		subscriptionHandler: subscriptionHandler,
		contactHandler:      contactHandler,
		cacheMiddleware:     cacheMiddleware,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes. Paths match what the
// dashboard front end calls, including the comments_table spelling.
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Comparison endpoints
	r.mux.HandleFunc("GET /api/state-payment-comparison", r.ratesHandler.StatePaymentComparison)
	r.mux.HandleFunc("POST /api/state-payment-comparison", r.ratesHandler.StatePaymentComparison)
	r.mux.HandleFunc("GET /api/comments_table", r.ratesHandler.Comments)

	// Feed endpoints
	r.mux.HandleFunc("GET /api/rate-updates", r.alertsHandler.RateUpdates)
	r.mux.HandleFunc("GET /api/legislative-updates", r.billsHandler.LegislativeUpdates)

	// Inline mutation endpoints
	r.mux.HandleFunc("PATCH /api/update-master-data", r.mutationsHandler.UpdateMasterData)
	r.mux.HandleFunc("DELETE /api/delete-master-data", r.mutationsHandler.DeleteMasterData)
	r.mux.HandleFunc("POST /api/update-service-lines", r.mutationsHandler.UpdateServiceLines)
	r.mux.HandleFunc("PATCH /api/update-provider-alert", r.alertsHandler.UpdateProviderAlert)
	r.mux.HandleFunc("PATCH /api/update-bill", r.billsHandler.UpdateBill)

	// Taxonomy endpoints
	r.mux.HandleFunc("GET /api/service-categories", r.categoriesHandler.List)
	r.mux.HandleFunc("POST /api/service-categories", r.categoriesHandler.Create)
	r.mux.HandleFunc("PUT /api/service-categories", r.categoriesHandler.Rename)
	r.mux.HandleFunc("DELETE /api/service-categories", r.categoriesHandler.Delete)

	// Account endpoints
	r.mux.HandleFunc("POST /api/stripe/subscription", r.subscriptionHandler.Status)
	r.mux.HandleFunc("POST /api/send-email", r.contactHandler.Send)
	r.mux.HandleFunc("GET /api/user-preferences", r.preferencesHandler.Get)
	r.mux.HandleFunc("POST /api/user-preferences", r.preferencesHandler.Save)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}

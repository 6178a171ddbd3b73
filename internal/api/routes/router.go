package routes

import (
	"net/http"

	"github.com/vodomont/backend/internal/api/handlers"
	"github.com/vodomont/backend/internal/api/middleware"
	"github.com/vodomont/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	galleryHandler *handlers.GalleryHandler

	testimonialHandler *handlers.TestimonialHandler

	contactHandler *handlers.ContactHandler

	settingsHandler *handlers.SettingsHandler

	authHandler *handlers.AuthHandler

	cacheHandler       *handlers.CacheHandler
	maintenanceHandler *handlers.MaintenanceHandler
	statsHandler       *handlers.StatsHandler

	sessionValidator middleware.SessionValidator
	cacheMiddleware  *middleware.CacheMiddleware
	metrics          *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	galleryHandler *handlers.GalleryHandler,

	testimonialHandler *handlers.TestimonialHandler,

	contactHandler *handlers.ContactHandler,

	settingsHandler *handlers.SettingsHandler,

	authHandler *handlers.AuthHandler,

	cacheHandler *handlers.CacheHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	statsHandler *handlers.StatsHandler,

	sessionValidator middleware.SessionValidator,
	cacheMiddleware *middleware.CacheMiddleware,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		galleryHandler: galleryHandler,

		testimonialHandler: testimonialHandler,

		contactHandler: contactHandler,

		settingsHandler: settingsHandler,

		authHandler: authHandler,

		cacheHandler:       cacheHandler,
		maintenanceHandler: maintenanceHandler,
		statsHandler:       statsHandler,

		sessionValidator: sessionValidator,
		cacheMiddleware:  cacheMiddleware,
		metrics:          metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	admin := middleware.AuthMiddleware(r.sessionValidator)
	protect := func(h http.HandlerFunc) http.Handler {
		return admin(h)
	}

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Gallery endpoints

	r.mux.HandleFunc("GET /api/gallery", r.galleryHandler.ListPhotos)

	r.mux.Handle("POST /api/gallery/upload", protect(r.galleryHandler.UploadPhoto))
	r.mux.Handle("DELETE /api/gallery/{id}", protect(r.galleryHandler.DeletePhoto))
	r.mux.Handle("GET /api/admin/gallery", protect(r.galleryHandler.ListPhotosAdmin))

	// Testimonial endpoints

	r.mux.HandleFunc("POST /api/testimonials/submit", r.testimonialHandler.SubmitTestimonial)

	r.mux.HandleFunc("GET /api/testimonials/published", r.testimonialHandler.ListPublished)
	r.mux.HandleFunc("GET /api/testimonials/featured", r.testimonialHandler.ListFeatured)

	r.mux.Handle("PUT /api/testimonials/{id}", protect(r.testimonialHandler.ModerateTestimonial))
	r.mux.Handle("DELETE /api/testimonials/{id}", protect(r.testimonialHandler.DeleteTestimonial))
	r.mux.Handle("GET /api/admin/testimonials", protect(r.testimonialHandler.ListAll))

	// Contact endpoints

	r.mux.HandleFunc("POST /api/contact", r.contactHandler.SubmitInquiry)

	r.mux.Handle("GET /api/contact/inquiries", protect(r.contactHandler.ListInquiries))
	r.mux.Handle("PUT /api/contact/inquiries/{id}", protect(r.contactHandler.UpdateInquiry))
	r.mux.Handle("DELETE /api/contact/inquiries/{id}", protect(r.contactHandler.DeleteInquiry))
	r.mux.Handle("GET /api/admin/inquiries/search", protect(r.contactHandler.SearchInquiries))

	// Settings endpoints

	r.mux.HandleFunc("GET /api/settings", r.settingsHandler.GetSettings)

	r.mux.Handle("PUT /api/settings", protect(r.settingsHandler.UpdateSettings))

	// Admin session endpoints

	r.mux.HandleFunc("POST /api/admin/login", r.authHandler.Login)

	r.mux.Handle("POST /api/admin/logout", protect(r.authHandler.Logout))

	// Cache administration endpoints

	r.mux.Handle("POST /api/admin/cache/revalidate", protect(r.cacheHandler.Revalidate))
	r.mux.Handle("POST /api/admin/cache/purge", protect(r.cacheHandler.Purge))

	// Storage maintenance endpoints

	r.mux.Handle("POST /api/admin/maintenance/reconcile", protect(r.maintenanceHandler.Reconcile))
	r.mux.Handle("POST /api/admin/maintenance/reset", protect(r.maintenanceHandler.Reset))

	// Stats endpoints
	r.mux.HandleFunc("POST /api/track/pageview", r.statsHandler.TrackPageView)
	r.mux.Handle("GET /api/admin/stats", protect(r.statsHandler.GetStats))

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

package app

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"moto-repaint-backend/internal/handlers"
)

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Flush keeps server-sent events working through the logger.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func withRequestLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func registerRoutes(mux *http.ServeMux, env *handlers.Env) {
	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, withCORS(h))
	}

	// --- public API ---
	api("/api/price-list", env.HandlePriceList)
	api("/api/cart", env.HandleCartCreate)
	api("/api/cart/{id}", env.HandleCart)
	api("/api/cart/{id}/items", env.HandleCartItems)
	api("/api/cart/{id}/items/{itemId}", env.HandleCartItem)
	api("/api/cart/{id}/checkout", env.HandleCartCheckout)
	api("/api/projects", env.HandleProjectCreate)
	api("/api/contact", env.HandleContact)
	api("/api/site", env.HandleSite)
	api("/api/testimonials/stream", env.HandleTestimonialStream)
	api("/api/testimonials/stream/{id}/{action}", env.HandleTestimonialControl)

	// --- management console ---
	api("/api/admin/price-list", env.HandleAdminPriceList)
	api("/api/admin/price-list/import", env.HandleAdminPriceImport)
	api("/api/admin/price-list/{id}", env.HandleAdminPriceItem)
	api("/api/admin/users", env.HandleAdminUsers)
	api("/api/admin/users/{id}", env.HandleAdminUserDetail)
	api("/api/admin/users/{id}/password", env.HandleAdminUserPassword)
	api("/api/admin/projects", env.HandleAdminProjects)
	api("/api/admin/projects/{id}", env.HandleAdminProjectStatus)
	api("/api/admin/messages", env.HandleAdminMessages)
	api("/api/admin/settings", env.HandleAdminSettings)
	api("/api/admin/upload", env.HandleUpload)

	// --- pages and assets ---
	mux.Handle("/static/", handlers.Static())
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(env.UploadDir))))
	mux.HandleFunc("/price-list", env.HandlePriceListPage)
	mux.HandleFunc(handlers.DefaultProjectPath, env.HandleProjectNewPage)
	mux.HandleFunc("/{$}", env.HandleLanding)
}

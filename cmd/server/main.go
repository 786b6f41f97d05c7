package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/kgrimaldi/challenge75-backend/internal/config"
	"github.com/kgrimaldi/challenge75-backend/internal/handlers"
	"github.com/kgrimaldi/challenge75-backend/internal/middleware"
	"github.com/kgrimaldi/challenge75-backend/internal/photos"
	"github.com/kgrimaldi/challenge75-backend/internal/routes"
	"github.com/kgrimaldi/challenge75-backend/internal/store"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Initialize storage
	recordStore := store.New(cfg.DataFile)
	photoManager := photos.NewManager(cfg.UploadDir)

	h := &handlers.Handler{
		Store:  recordStore,
		Photos: photoManager,
		Cfg:    cfg,
	}

	// Setup router
	r := chi.NewRouter()

	// CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API routes
	routes.SetupRoutes(r, h)

	// The document is served as a static JSON resource; clients append a
	// cachebust query which ServeFile ignores.
	r.Get("/data.json", func(w http.ResponseWriter, req *http.Request) {
		if _, err := os.Stat(cfg.DataFile); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("{}"))
			return
		}
		http.ServeFile(w, req, cfg.DataFile)
	})

	// Uploaded photos
	r.Handle("/images/*", http.StripPrefix("/images/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	// Public calendar and admin panel
	r.Get("/admin", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, cfg.StaticDir+"/admin.html")
	})
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  GET    /data.json")
	log.Println("  POST   /api/save-day")
	log.Println("  DELETE /api/delete-photo/{day}/{index}")
	log.Println("  POST   /api/set-cover/{day}/{index}")
	log.Println("  GET    /api/summary")

	log.Printf("🚀 Challenge tracker running on :%s", cfg.Port)
	log.Printf("   Data file: %s", cfg.DataFile)
	log.Printf("   Uploads:   %s", cfg.UploadDir)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

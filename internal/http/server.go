package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"deliverypro-backend-go/internal/config"
	"deliverypro-backend-go/internal/models"
	"deliverypro-backend-go/internal/services"
	"deliverypro-backend-go/internal/session"
)

type Server struct {
	DB       *sqlx.DB
	Config   config.Config
	Tokens   services.TokenService
	Sessions session.Store
	Hub      *services.DashboardHub
}

func NewServer(db *sqlx.DB, cfg config.Config, sessions session.Store, hub *services.DashboardHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	return &Server{
		DB:       db,
		Config:   cfg,
		Tokens:   tokens,
		Sessions: sessions,
		Hub:      hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(WithSession(s.Sessions, s.Config.SessionCookieName))
		api.Use(TrackVisitors(s.DB, s.Tokens))

		api.Get("/locale", s.GetLocale)
		api.Get("/flash", s.GetFlash)

		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.Use(WithAuth(s.Tokens))
			me.Get("/", s.Me)
			me.Post("/avatar", s.UploadAvatar)
			me.Post("/ping", s.Ping)
		})

		api.Route("/driver", func(driver chi.Router) {
			driver.Use(WithAuth(s.Tokens))
			driver.Use(RequireRole(models.RoleDriver))
			driver.Get("/stats", s.DriverStats)
			driver.Get("/orders/recent", s.DriverRecentOrders)
			driver.Get("/orders/active/count", s.DriverActiveOrders)
		})

		api.Route("/client", func(client chi.Router) {
			client.Use(WithAuth(s.Tokens))
			client.Use(RequireRole(models.RoleCustomer))
			client.Get("/stats", s.ClientStats)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireRole(models.RoleAdmin))
			admin.Get("/visitors/stats", s.VisitorStats)
			admin.Get("/health/history", s.HealthHistory)
		})
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.Config.UploadsPath)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	r.Get("/ws/dashboard", s.DashboardSocket)
	return r
}

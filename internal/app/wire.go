package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/guard"
	"github.com/sportivo/platform/internal/handler"
	"github.com/sportivo/platform/internal/repository"
	"github.com/sportivo/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	Logger             *slog.Logger
	SessionTTL         time.Duration
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware. The URL
// layout mirrors the paths the existing clients already call.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	db := repository.NewDB(deps.Pool)

	// Repositories
	userRepo := repository.NewUserRepository()
	sessionRepo := repository.NewSessionRepository()
	coachRepo := repository.NewCoachRepository()
	courtRepo := repository.NewCourtRepository()
	eventRepo := repository.NewEventRepository()
	partnerRepo := repository.NewPartnerRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Session gate
	sessionMgr := auth.NewManager(db, sessionRepo, userRepo, deps.SessionTTL)

	// Services
	authSvc := service.NewAuthService(db, userRepo, outboxRepo, sessionMgr)
	coachSvc := service.NewCoachService(db, coachRepo, outboxRepo)
	courtSvc := service.NewCourtService(db, courtRepo, outboxRepo)
	eventSvc := service.NewEventService(db, eventRepo, outboxRepo)
	partnerSvc := service.NewPartnerService(db, partnerRepo, outboxRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	coachHandler := handler.NewCoachHandler(coachSvc)
	courtHandler := handler.NewCourtHandler(courtSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	partnerHandler := handler.NewPartnerHandler(partnerSvc)

	bookingLimiter := guard.NewRateLimiter(30, time.Minute)
	bookingIdem := guard.NewIdempotencyGuard()
	bookingGuards := func(r chi.Router) chi.Router {
		return r.With(handler.RateLimit(bookingLimiter), handler.Idempotency(bookingIdem))
	}

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)
	r.Use(auth.LoadSession(sessionMgr))

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(deps.Pool))

	// Auth routes (no auth)
	r.Post("/register/", authHandler.Register)
	r.Post("/login/", authHandler.Login)
	r.Get("/logout/", authHandler.Logout)
	r.Post("/logout/", authHandler.Logout)

	// Profile
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/profile/", authHandler.GetProfile)
		r.Post("/profile/edit/", authHandler.UpdateProfile)
	})

	// Coach booking
	r.Route("/coach", func(r chi.Router) {
		r.Get("/api/search/", coachHandler.Search)
		r.Get("/{id}/", coachHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/add/", coachHandler.Create)
			bookingGuards(r).Post("/book-coach/{id}/", coachHandler.Book)
			r.Post("/cancel-booking/{id}/", coachHandler.CancelBooking)
			r.Post("/mark-available/{id}/", coachHandler.MarkAvailable)
			r.Post("/mark-unavailable/{id}/", coachHandler.MarkUnavailable)
			r.Post("/delete-coach/{id}/", coachHandler.Delete)
		})
	})

	// Court booking
	r.Route("/court/api", func(r chi.Router) {
		r.Get("/court/search/", courtHandler.Search)
		r.Get("/court/{id}/", courtHandler.Get)
		r.Get("/court/{id}/availability/", courtHandler.GetAvailability)
		r.Get("/court/{id}/whatsapp/", courtHandler.WhatsAppLink)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/court/add/", courtHandler.Create)
			r.Post("/court/{id}/availability/set/", courtHandler.SetAvailability)
			r.Post("/court/{id}/delete/", courtHandler.Delete)
			bookingGuards(r).Post("/bookings/", courtHandler.CreateBooking)
		})
	})

	// Community events
	r.Route("/event", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Get("/{id}/", eventHandler.Get)
		r.Get("/{id}/schedules/", eventHandler.Schedules)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/create/", eventHandler.Create)
			r.Post("/{id}/edit/", eventHandler.Update)
			r.Post("/{id}/delete/", eventHandler.Delete)
			bookingGuards(r).Post("/{id}/ajax/join/", eventHandler.Join)
			r.Post("/{id}/cancel-registration/", eventHandler.CancelRegistration)
			r.Post("/{id}/toggle-availability/", eventHandler.ToggleAvailability)
		})
	})

	// Sport partner posts
	r.Route("/sport-partner", func(r chi.Router) {
		r.Get("/", partnerHandler.List)
		r.Get("/post/{id}/", partnerHandler.Get)
		r.Get("/post/{id}/participants/", partnerHandler.Participants)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/post/create/", partnerHandler.Create)
			r.Post("/post/{id}/join/", partnerHandler.Join)
			r.Post("/post/{id}/leave/", partnerHandler.Leave)
			r.Post("/post/{id}/delete/", partnerHandler.Delete)
		})
	})

	return r
}

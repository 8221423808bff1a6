package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tidyteam/internal/config"
	"tidyteam/internal/database"
	"tidyteam/internal/middleware"
	"tidyteam/internal/modules/appointments"
	"tidyteam/internal/modules/bonus"
	"tidyteam/internal/modules/checklist"
	"tidyteam/internal/modules/incentives"
	"tidyteam/internal/modules/jobs"
	"tidyteam/internal/modules/messages"
	"tidyteam/internal/pkg/clock"
	jwtsvc "tidyteam/internal/pkg/jwt"
	"tidyteam/internal/repository"
)

// offers and pending appointments are swept on a fixed cadence
const expirySweepInterval = time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	bonusRepo := repository.NewBonusRepository(db)
	incentiveRepo := repository.NewIncentiveRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.Real()

	hub := messages.NewHub()
	defer hub.Close()
	notifier := messages.NewNotifier(hub)

	jobsService := jobs.NewService(jobRepo, offerRepo, assignmentRepo, userRepo, notifier, clk, jobs.Policy{
		FeePercent:          cfg.MultiCleanerFeePercent,
		OfferTTL:            cfg.OfferTTL,
		SoloOfferTTL:        cfg.SoloOfferTTL,
		RecommendedCleaners: cfg.RecommendedCleaners,
	})
	jobsHandler := jobs.NewHandler(jobsService)

	checklistService := checklist.NewService(assignmentRepo, jobRepo, notifier)
	checklistHandler := checklist.NewHandler(checklistService)

	apptService := appointments.NewService(appointmentRepo, clk, cfg.ClientResponseWindow)
	apptHandler := appointments.NewHandler(apptService)

	messagesService := messages.NewService(chatRepo, assignmentRepo, userRepo, hub)
	messagesHandler := messages.NewHandler(messagesService, hub)

	bonusService := bonus.NewService(bonusRepo, userRepo, clk)
	bonusHandler := bonus.NewHandler(bonusService)

	incentivesService := incentives.NewService(incentiveRepo)
	incentivesHandler := incentives.NewHandler(incentivesService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		incentivesHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			jobsHandler.RegisterRoutes(protected)
			checklistHandler.RegisterRoutes(protected)
			apptHandler.RegisterRoutes(protected)
			messagesHandler.RegisterRoutes(protected)
			bonusHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				incentivesHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	go runExpirySweep(jobsService, apptService)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

// runExpirySweep enforces offer and appointment deadlines
// server-side; the client countdowns are display only.
func runExpirySweep(jobsService *jobs.Service, apptService *appointments.Service) {
	ticker := time.NewTicker(expirySweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if n, err := jobsService.ExpireOffers(ctx); err != nil {
			log.Printf("offer expiry sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("expired %d offers", n)
		}
		if n, err := apptService.ExpirePending(ctx); err != nil {
			log.Printf("appointment expiry sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("expired %d appointments", n)
		}
		cancel()
	}
}

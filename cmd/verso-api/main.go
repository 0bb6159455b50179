package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/verso-app/verso-api/internal/config"
	"github.com/verso-app/verso-api/internal/database"
	"github.com/verso-app/verso-api/internal/gemini"
	"github.com/verso-app/verso-api/internal/handlers"
	"github.com/verso-app/verso-api/internal/hub"
	authmw "github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/services"
	"github.com/verso-app/verso-api/internal/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	bandService := services.NewBandService(db)
	workspaceService := services.NewWorkspaceService(bandService)
	songService := services.NewSongService(db)
	setlistService := services.NewSetlistService(db)
	rehearsalService := services.NewRehearsalService(db)
	resolver := services.NewSetlistResolver(songService, setlistService)
	emailService := services.NewEmailService(cfg.SMTP)
	aiClient := gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model)

	syncHub := sse.NewHub()
	go syncHub.Run()

	presenceHub := hub.NewHub()
	go presenceHub.Run()

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	bandHandler := handlers.NewBandHandler(bandService, userService, emailService, syncHub, cfg.FrontendURL)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, userService)
	songHandler := handlers.NewSongHandler(songService, workspaceService, syncHub)
	setlistHandler := handlers.NewSetlistHandler(setlistService, workspaceService, syncHub)
	rehearsalHandler := handlers.NewRehearsalHandler(rehearsalService, workspaceService, resolver, syncHub)
	sharedHandler := handlers.NewSharedHandler(rehearsalService, setlistService, songService)
	aiHandler := handlers.NewAIHandler(aiClient)
	sseHandler := handlers.NewSSEHandler(syncHub, workspaceService)
	wsHandler := handlers.NewWebSocketHandler(presenceHub, userService, workspaceService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/workspaces", workspaceHandler.List)

	protected.Get("/bands", bandHandler.List)
	protected.Post("/bands", bandHandler.Create)
	protected.Get("/bands/:id", bandHandler.Get)
	protected.Delete("/bands/:id", bandHandler.Delete)
	protected.Get("/bands/:id/members", bandHandler.GetMembers)
	protected.Post("/bands/:id/join", bandHandler.Join)
	protected.Post("/bands/:id/leave", bandHandler.Leave)
	protected.Delete("/bands/:id/members/:userId", bandHandler.RemoveMember)
	protected.Post("/bands/:id/invites", bandHandler.InviteMember)

	protected.Get("/workspaces/:workspaceId/songs", songHandler.List)
	protected.Get("/workspaces/:workspaceId/songs/:songId", songHandler.Get)
	protected.Put("/workspaces/:workspaceId/songs/:songId", songHandler.Save)
	protected.Delete("/workspaces/:workspaceId/songs/:songId", songHandler.Delete)

	protected.Get("/workspaces/:workspaceId/setlists", setlistHandler.List)
	protected.Get("/workspaces/:workspaceId/setlists/:setlistId", setlistHandler.Get)
	protected.Put("/workspaces/:workspaceId/setlists/:setlistId", setlistHandler.Save)
	protected.Delete("/workspaces/:workspaceId/setlists/:setlistId", setlistHandler.Delete)

	protected.Get("/workspaces/:workspaceId/rehearsals", rehearsalHandler.List)
	protected.Post("/workspaces/:workspaceId/rehearsals", rehearsalHandler.Create)
	protected.Get("/workspaces/:workspaceId/rehearsals/:rehearsalId", rehearsalHandler.Get)
	protected.Put("/workspaces/:workspaceId/rehearsals/:rehearsalId", rehearsalHandler.Save)
	protected.Delete("/workspaces/:workspaceId/rehearsals/:rehearsalId", rehearsalHandler.Delete)
	protected.Post("/workspaces/:workspaceId/rehearsals/:rehearsalId/options", rehearsalHandler.ProposeOption)
	protected.Post("/workspaces/:workspaceId/rehearsals/:rehearsalId/options/:optionId/vote", rehearsalHandler.ToggleVote)
	protected.Post("/workspaces/:workspaceId/rehearsals/:rehearsalId/confirm", rehearsalHandler.Confirm)

	protected.Get("/rehearsals/:id/songs", rehearsalHandler.ResolveSongs)

	protected.Get("/shared/rehearsals/:id", sharedHandler.GetRehearsal)
	protected.Get("/shared/setlists/:id", sharedHandler.GetSetlist)
	protected.Post("/shared/songs", sharedHandler.GetSongs)

	protected.Post("/ai/format", aiHandler.FormatSong)
	protected.Post("/ai/compose", aiHandler.ComposeSong)
	protected.Post("/ai/setlist-ideas", aiHandler.SetlistIdeas)

	protected.Get("/workspaces/:workspaceId/events", sseHandler.Connect)
	protected.Post("/sse/:clientId/subscribe/:workspaceId", sseHandler.Subscribe)
	protected.Post("/sse/:clientId/unsubscribe/:workspaceId", sseHandler.Unsubscribe)

	protected.Get("/ws", wsHandler.Connect)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

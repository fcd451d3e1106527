package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-menu-api/config"
	"cafe-menu-api/handlers"
	"cafe-menu-api/logger"
	"cafe-menu-api/repository"
	"cafe-menu-api/routes"
	"cafe-menu-api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	// Set Gin mode
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if cfg.SecretIsRandom {
		log.Warn("SECRET_KEY not set; using a random signing secret, issued tokens stop working on restart")
	}
	if cfg.AdminPassword == "changeme" {
		log.Warn("ADMIN_PASSWORD not set; the seeded admin account uses the default password")
	}

	db, err := config.OpenDB(cfg, nil)
	if err != nil {
		log.Fatalw("database unavailable", "error", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalw("migration failed", "error", err)
	}
	if err := config.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalw("seeding admin failed", "error", err)
	}
	menuRepo := repository.NewMenuRepository(db)
	if err := menuRepo.BackfillSearchText(); err != nil {
		log.Fatalw("search index backfill failed", "error", err)
	}
	log.Info("database connected and migrated")

	images, err := services.NewImageService(cfg.UploadDir)
	if err != nil {
		log.Fatalw("upload directory unavailable", "error", err)
	}
	auth := services.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	menu := services.NewMenuService(menuRepo, images)

	r := routes.NewRouter(cfg, handlers.New(auth, menu, images))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server running", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

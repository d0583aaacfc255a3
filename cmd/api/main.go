package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fablecraft/fablecraft-backend/config"
	"github.com/fablecraft/fablecraft-backend/internal/auth"
	"github.com/fablecraft/fablecraft-backend/internal/bootstrap"
	"github.com/fablecraft/fablecraft-backend/internal/content"
	draftdomain "github.com/fablecraft/fablecraft-backend/internal/drafts/domain"
	draftrepo "github.com/fablecraft/fablecraft-backend/internal/drafts/repository"
	draftsvc "github.com/fablecraft/fablecraft-backend/internal/drafts/service"
	"github.com/fablecraft/fablecraft-backend/internal/generation"
	"github.com/fablecraft/fablecraft-backend/internal/media"
	"github.com/fablecraft/fablecraft-backend/internal/storage/postgres"

	fbauth "firebase.google.com/go/v4/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	var firebaseAuth *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		firebaseAuth, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		log.Println("Firebase authentication enabled")
	} else {
		log.Println("Firebase credentials not set, using header-based identity")
	}

	quiet := time.Duration(cfg.Drafts.QuietMS) * time.Millisecond
	ttl := time.Duration(cfg.Drafts.TTLDays) * 24 * time.Hour

	managers := map[string]*draftsvc.AutosaveManager{}
	for _, flow := range []string{draftdomain.FlowCharacter, draftdomain.FlowEntity} {
		repo := draftrepo.NewDraftRepository(redisClient, flow, ttl)
		managers[flow] = draftsvc.NewAutosaveManager(repo, draftsvc.WithQuietInterval(quiet))
	}
	defer func() {
		for _, m := range managers {
			m.Close()
		}
	}()

	portraits, err := media.NewPortraitStore(ctx, cfg.Media.S3Bucket, cfg.Media.S3Region, cfg.Media.PublicBaseURL)
	if err != nil {
		log.Fatalf("portrait store: %v", err)
	}

	genClient := generation.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.RateLimit, cfg.Upstream.Burst)
	if !genClient.Enabled() {
		log.Println("Generation upstream not configured, generation routes disabled")
	}

	contentSvc := content.NewService()
	contentSvc.StartRotation()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "fablecraft-backend",
		Version:       cfg.App.Version,
		DB:            pool,
		SQLDB:         sqlDB,
		Redis:         redisClient,
		DraftManagers: managers,
		Generation:    genClient,
		Portraits:     portraits,
		Content:       contentSvc,
		FirebaseAuth:  firebaseAuth,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

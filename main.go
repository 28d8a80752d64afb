package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"content-gate/internal/auth"
	"content-gate/internal/config"
	"content-gate/internal/gate"
	"content-gate/internal/http"
	"content-gate/internal/http/handler"
	"content-gate/internal/repository/postgres"
	"content-gate/internal/storage/s3"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Database connection established")

	contentRepo := postgres.NewContentRepository(db, cfg.Gate.PublicTypes)
	userRepo := postgres.NewUserRepository(db)
	apiKeyRepo := postgres.NewAPIKeyRepository(db)

	var signer handler.AttachmentSigner
	if cfg.AWS.AttachmentsEnabled() {
		s3Client, err := s3.NewClient(&cfg.AWS, cfg.App.AttachmentURLExpiry)
		if err != nil {
			log.Fatalf("Failed to create S3 client: %v", err)
		}
		signer = s3Client
		log.Println("S3 attachment signing enabled")
	} else {
		log.Println("S3 attachment signing disabled (no bucket configured)")
	}

	codec := gate.NewCodec([]byte(cfg.Gate.AuthKey), []byte(cfg.Gate.AuthSalt))
	accessGate := gate.New(codec)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	apiKeyService := auth.NewAPIKeyService(apiKeyRepo, []byte(cfg.Gate.APIKeySalt))
	authMiddleware := auth.NewMiddleware(jwtService, apiKeyService, apiKeyRepo)

	serverDeps := &http.ServerDependencies{
		Config:         cfg,
		ContentRepo:    contentRepo,
		UserRepo:       userRepo,
		APIKeyRepo:     apiKeyRepo,
		Gate:           accessGate,
		Signer:         signer,
		JWTService:     jwtService,
		APIKeyService:  apiKeyService,
		AuthMiddleware: authMiddleware,
	}

	server := http.NewServer(serverDeps)

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

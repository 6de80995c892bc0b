package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	assisthttp "github.com/inkwellhq/inkwell/internal/assist/http"
	assistservice "github.com/inkwellhq/inkwell/internal/assist/service"
	authhttp "github.com/inkwellhq/inkwell/internal/auth/http"
	authservice "github.com/inkwellhq/inkwell/internal/auth/service"
	"github.com/inkwellhq/inkwell/internal/common/clock"
	"github.com/inkwellhq/inkwell/internal/common/config"
	commoncrypto "github.com/inkwellhq/inkwell/internal/common/crypto"
	commonhttp "github.com/inkwellhq/inkwell/internal/common/http"
	"github.com/inkwellhq/inkwell/internal/common/jwtverify"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	srv "github.com/inkwellhq/inkwell/internal/common/server"
	posthttp "github.com/inkwellhq/inkwell/internal/post/http"
	postrepo "github.com/inkwellhq/inkwell/internal/post/repository"
	postservice "github.com/inkwellhq/inkwell/internal/post/service"
	userrepo "github.com/inkwellhq/inkwell/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}

	// Stores are built here and injected; nothing initializes at import time.
	userRepo := userrepo.NewMemoryRepository(idGenerator, clk)
	postRepo := postrepo.NewMemoryRepository(userRepo, idGenerator, clk)

	tokenIssuer := authservice.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, clk)
	authService := authservice.NewAuthService(userRepo, hasher, tokenIssuer, log)
	postService := postservice.NewPostService(postRepo, log)

	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, writing assistance requests will fail upstream")
	}
	assistService := assistservice.NewAssistService(
		openai.NewClient(cfg.OpenAIAPIKey),
		cfg.AssistModel,
		cfg.AssistTimeout,
		log,
	)

	authMW := jwtverify.Middleware(cfg.JWTSecret, userRepo, log)

	router := mux.NewRouter()
	router.HandleFunc("/health", commonhttp.HealthHandler(log)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authhttp.NewHandler(authService, cfg.RequestTimeout, log).RegisterRoutes(router, authMW)
	posthttp.NewHandler(postService, cfg.RequestTimeout, log).RegisterRoutes(router, authMW)
	assisthttp.NewHandler(assistService, log).RegisterRoutes(router, authMW)

	baseHandler := commonhttp.BuildBaseHandler(log, router)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), baseHandler)
	srv.StartWithGracefulShutdown(server, log, "api")
}

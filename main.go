package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ZiadAdel10/aos-ref-validator-front/internal/config"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/notify"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/ratelimit"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/referral"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/router"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/service"
)

func main() {
	// Carrega .env (opcional). Tenta caminhos comuns sem falhar o processo.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Overload(".env")

	cfg := config.Load()

	// Logger básico controlado por env
	var infoLogger *log.Logger
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "error") {
		infoLogger = log.New(io.Discard, "", 0) // silencia INFO
	} else {
		infoLogger = log.New(os.Stdout, "", log.LstdFlags)
	}
	errorLogger := log.New(os.Stderr, "", log.LstdFlags)

	// HTTP client compartilhado; o deadline fica por requisição, via contexto
	httpClient := &http.Client{}

	notifier := notify.NewNotifier(cfg.SlackWebhookURL)

	// Rate limiter em memória, janela fixa por cliente
	limiter := ratelimit.NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow)
	go limiter.StartJanitor()

	webhookClient := referral.NewClient(cfg.WebhookURL, cfg.WebhookKey, cfg.RequestTimeout, httpClient)
	validateSvc := service.NewValidationService(webhookClient, notifier, cfg.MockMode, cfg.MockDelay)

	if cfg.MockMode {
		infoLogger.Printf("MOCK=1: validação sem chamar o upstream")
	}

	// Gin
	r := gin.New()
	r.Use(router.RecoveryJSON(notifier, errorLogger))
	r.Use(router.RequestID())
	if !strings.EqualFold(os.Getenv("LOG_LEVEL"), "error") {
		r.Use(router.RequestLogger(infoLogger))
	}

	router.Register(r, router.Dependencies{
		Config:      cfg,
		Limiter:     limiter,
		ValidateSvc: validateSvc,
		Notifier:    notifier,
		InfoLogger:  infoLogger,
		ErrorLogger: errorLogger,
	})

	infoLogger.Printf("Servidor iniciado. Porta %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		errorLogger.Fatalf("erro ao iniciar servidor: %v", err)
	}
}

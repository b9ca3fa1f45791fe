package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultWebhookURL = "https://academyofsigma.app.n8n.cloud/webhook/search-referral"
	defaultWebhookKey = "aos-scaleflow-validator"
)

type Config struct {
	Port            string
	WebhookURL      string
	WebhookKey      string
	RequestTimeout  time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	MockMode        bool
	MockDelay       time.Duration
	SlackWebhookURL string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:            port,
		WebhookURL:      getenvDefault("N8N_WEBHOOK_URL", defaultWebhookURL),
		WebhookKey:      getenvDefault("AOS_WEBHOOK_KEY", defaultWebhookKey),
		RequestTimeout:  positiveMillis("VALIDATOR_TIMEOUT_MS", 10000),
		RateLimitMax:    positiveInt("VALIDATOR_RATE_LIMIT_MAX", 150),
		RateLimitWindow: positiveMillis("VALIDATOR_RATE_LIMIT_WINDOW_MS", 15*60*1000),
		MockMode:        os.Getenv("MOCK") == "1",
		MockDelay:       positiveMillis("VALIDATOR_MOCK_DELAY_MS", 1000),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// positiveInt lê um inteiro do ambiente; qualquer valor que não seja um
// número positivo cai no default.
func positiveInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func positiveMillis(key string, def int) time.Duration {
	return time.Duration(positiveInt(key, def)) * time.Millisecond
}

package router

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ZiadAdel10/aos-ref-validator-front/internal/config"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/metrics"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/models"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/notify"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/ratelimit"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/referral"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/service"
)

const (
	msgRateLimited    = "Too many requests. Please wait a few minutes before trying again."
	msgMissingCode    = "Please enter a referral code"
	msgInvalidCharset = "Code can only contain letters, numbers, dashes, and underscores"
	msgInternalError  = "Internal server error. Please try again."
	msgPostOnly       = "This endpoint only accepts POST requests."
)

var codePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type Dependencies struct {
	Config      config.Config
	Limiter     ratelimit.Limiter
	ValidateSvc service.ValidationService
	Notifier    *notify.Notifier
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
}

func Register(r *gin.Engine, d Dependencies) {
	// Healthcheck simples para orquestradores
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Raiz informativa
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "AOS referral validator",
			"status":  "ok",
			"endpoints": []string{
				"GET /healthz",
				"GET /metrics",
				"POST /validate",
			},
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Data-plane
	r.POST("/validate", func(c *gin.Context) { validate(c, d) })
	r.GET("/validate", func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": msgPostOnly})
	})
}

// validate percorre o pipeline em passos curtos, cada um podendo encerrar
// com um envelope terminal: rate limit -> input -> resolução -> resposta.
func validate(c *gin.Context, d Dependencies) {
	client := clientID(c)

	if !d.Limiter.Allow(client) {
		metrics.ValidationRequests.WithLabelValues("rate_limited").Inc()
		c.JSON(http.StatusTooManyRequests, models.ErrorEnvelope(msgRateLimited))
		return
	}

	code, errMsg := parseCode(c)
	if errMsg != "" {
		metrics.ValidationRequests.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorEnvelope(errMsg))
		return
	}

	masked := referral.MaskCode(code)
	reqID := requestIDFrom(c)
	d.InfoLogger.Printf("{\"event\":\"validate_attempt\",\"code\":%q,\"client\":%q,\"request_id\":%q}",
		masked, client, reqID)

	status, env := d.ValidateSvc.Validate(c.Request.Context(), code)

	d.InfoLogger.Printf("{\"event\":\"validate_result\",\"code\":%q,\"valid\":%s,\"status\":%d,\"request_id\":%q}",
		masked, validLabel(env.Valid), status, reqID)

	c.JSON(status, env)
}

// parseCode trata corpo não parseável como objeto vazio e valida o campo
// code: presente, não vazio após trim e restrito a [A-Za-z0-9_-].
func parseCode(c *gin.Context) (string, string) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", msgMissingCode
	}

	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = map[string]any{}
	}

	code, _ := payload["code"].(string)
	code = strings.TrimSpace(code)
	if code == "" {
		return "", msgMissingCode
	}
	if !codePattern.MatchString(code) {
		return "", msgInvalidCharset
	}
	return code, ""
}

// clientID deriva o identificador do cliente: primeiro X-Forwarded-For,
// senão o endereço da conexão, senão o balde "unknown".
func clientID(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}
	return "unknown"
}

func validLabel(valid *bool) string {
	if valid == nil {
		return "null"
	}
	if *valid {
		return "true"
	}
	return "false"
}

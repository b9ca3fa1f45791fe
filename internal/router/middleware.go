package router

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ZiadAdel10/aos-ref-validator-front/internal/metrics"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/models"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/notify"
)

const requestIDKey = "request_id"

// RequestID atribui um id único à requisição para correlação nos logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency)
	}
}

// RecoveryJSON captura qualquer panic do pipeline e converte no envelope
// genérico de erro interno. Nenhuma falha escapa sem envelope bem formado.
func RecoveryJSON(notifier *notify.Notifier, errLogger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				errLogger.Printf("panic: %v", r)
				metrics.ValidationRequests.WithLabelValues("internal_error").Inc()
				notifier.AlertAsync(fmt.Sprintf(":rotating_light: Panic em %s %s: %v", c.Request.Method, c.FullPath(), r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorEnvelope(msgInternalError))
			}
		}()
		c.Next()
	}
}

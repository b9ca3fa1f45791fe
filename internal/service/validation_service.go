package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZiadAdel10/aos-ref-validator-front/internal/metrics"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/models"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/notify"
	"github.com/ZiadAdel10/aos-ref-validator-front/internal/referral"
)

const (
	MsgTimeout      = "Request timed out. Please try again."
	MsgNetworkError = "Network error. Please check your connection and try again."
)

// ValidationService resolve um código já validado: caminho mock ou chamada
// ao upstream, devolvendo o status HTTP e o envelope prontos para repasse.
type ValidationService interface {
	Validate(ctx context.Context, code string) (int, models.Envelope)
}

type validationService struct {
	client    *referral.Client
	notifier  *notify.Notifier
	mockMode  bool
	mockDelay time.Duration
}

func NewValidationService(client *referral.Client, notifier *notify.Notifier, mockMode bool, mockDelay time.Duration) ValidationService {
	return &validationService{
		client:    client,
		notifier:  notifier,
		mockMode:  mockMode,
		mockDelay: mockDelay,
	}
}

func (s *validationService) Validate(ctx context.Context, code string) (int, models.Envelope) {
	if s.mockMode {
		return s.validateMock(ctx, code)
	}
	return s.validateLive(ctx, code)
}

func (s *validationService) validateMock(ctx context.Context, code string) (int, models.Envelope) {
	// atraso artificial para simular o upstream
	select {
	case <-time.After(s.mockDelay):
	case <-ctx.Done():
	}

	valid := referral.MockValid(code)
	env := models.Envelope{
		OK:      true,
		Valid:   &valid,
		Message: referral.MsgMockInvalid,
		Raw:     models.MockRaw{Status: "not_found", Code: code, Mock: true},
	}
	if valid {
		env.Message = referral.MsgMockValid
		env.Metadata = models.MockMetadata{
			Code:  code,
			Owner: "Test User",
			Notes: "This is a mock response",
		}
		env.Raw = models.MockRaw{Status: "found", Code: code, Mock: true}
	}

	metrics.ValidationRequests.WithLabelValues(outcomeLabel(&valid)).Inc()
	return http.StatusOK, env
}

func (s *validationService) validateLive(ctx context.Context, code string) (int, models.Envelope) {
	start := time.Now()
	status, raw, err := s.client.Check(ctx, code)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		msg := MsgNetworkError
		if errors.Is(err, referral.ErrTimeout) {
			msg = MsgTimeout
		}
		metrics.ValidationRequests.WithLabelValues("upstream_error").Inc()
		s.notifier.AlertAsync(fmt.Sprintf(":warning: Falha no webhook de validação | code=%s | err=%v",
			referral.MaskCode(code), err))
		return http.StatusGatewayTimeout, models.ErrorEnvelope(msg)
	}

	out := referral.Normalize(raw, status)
	env := models.Envelope{
		OK:          status >= 200 && status < 300,
		Valid:       out.Valid,
		Message:     out.Message,
		Eligibility: out.Eligibility,
		Raw:         raw,
	}
	if out.Metadata != nil {
		env.Metadata = out.Metadata
	}

	metrics.ValidationRequests.WithLabelValues(outcomeLabel(out.Valid)).Inc()
	// o status do upstream é repassado verbatim ao caller
	return status, env
}

func outcomeLabel(valid *bool) string {
	switch {
	case valid == nil:
		return "indeterminate"
	case *valid:
		return "valid"
	default:
		return "invalid"
	}
}

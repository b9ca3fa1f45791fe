package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Notifier envia alertas operacionais para um Incoming Webhook do Slack.
// Aplica antirruído: a mesma mensagem não é reenviada dentro do intervalo.
type Notifier struct {
	webhookURL string
	httpClient *http.Client

	mu   sync.Mutex
	last map[string]time.Time
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		last:       map[string]time.Time{},
	}
}

// Enabled indica se há webhook configurado.
func (n *Notifier) Enabled() bool { return n != nil && n.webhookURL != "" }

// Alert envia a mensagem, descartando repetições dentro de 1 minuto.
func (n *Notifier) Alert(ctx context.Context, text string) error {
	if !n.Enabled() || text == "" {
		return nil
	}

	n.mu.Lock()
	if t, ok := n.last[text]; ok && time.Since(t) < time.Minute {
		n.mu.Unlock()
		return nil
	}
	n.last[text] = time.Now()
	n.mu.Unlock()

	body, _ := json.Marshal(map[string]string{"text": text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}
	return nil
}

// AlertAsync dispara o alerta em background com timeout próprio.
func (n *Notifier) AlertAsync(text string) {
	if !n.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = n.Alert(ctx, text)
	}()
}

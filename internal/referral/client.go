package referral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// ErrTimeout indica que o upstream não respondeu dentro do prazo.
var ErrTimeout = errors.New("upstream request timed out")

// Client fala com o webhook de validação de códigos (n8n).
type Client struct {
	url        string
	key        string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(url, key string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		url:        url,
		key:        key,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// Check envia o código ao upstream e devolve o status HTTP e o payload
// decodificado. Corpo que não é JSON válido vira objeto vazio. Uma única
// tentativa: falha é devolvida ao chamador, sem retry.
func (c *Client) Check(ctx context.Context, code string) (int, map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, _ := json.Marshal(map[string]string{"code": code})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-aos-key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, ErrTimeout
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw := map[string]any{}
	respBody, err := io.ReadAll(resp.Body)
	if err == nil {
		if jsonErr := json.Unmarshal(respBody, &raw); jsonErr != nil || raw == nil {
			raw = map[string]any{}
		}
	}

	return resp.StatusCode, raw, nil
}

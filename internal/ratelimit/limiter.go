package ratelimit

import (
	"sync"
	"time"
)

// Limiter decide se uma requisição de um identificador pode prosseguir.
// A implementação padrão é em memória; um contador externo (ex.: Redis)
// pode substituí-la sem mudar o contrato.
type Limiter interface {
	Allow(clientID string) bool
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow conta requisições por identificador dentro de uma janela fixa.
// A janela é relativa à primeira requisição, não deslizante.
type FixedWindow struct {
	mu       sync.Mutex
	max      int
	duration time.Duration
	windows  map[string]*window
	stopChan chan struct{}
	now      func() time.Time
}

var _ Limiter = &FixedWindow{}

func NewFixedWindow(max int, duration time.Duration) *FixedWindow {
	return &FixedWindow{
		max:      max,
		duration: duration,
		windows:  make(map[string]*window),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

// Allow aplica check-and-increment de forma atômica por identificador.
// Negação não altera o estado da janela.
func (l *FixedWindow) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[clientID]
	if !ok || now.After(w.resetAt) {
		l.windows[clientID] = &window{count: 1, resetAt: now.Add(l.duration)}
		return true
	}

	if w.count >= l.max {
		return false
	}

	w.count++
	return true
}

// StartJanitor remove janelas expiradas periodicamente. Opcional: janelas
// expiradas são reiniciadas na próxima requisição de qualquer forma.
func (l *FixedWindow) StartJanitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := l.now()
			l.mu.Lock()
			for id, w := range l.windows {
				if now.After(w.resetAt) {
					delete(l.windows, id)
				}
			}
			l.mu.Unlock()
		case <-l.stopChan:
			return
		}
	}
}

func (l *FixedWindow) StopJanitor() { close(l.stopChan) }

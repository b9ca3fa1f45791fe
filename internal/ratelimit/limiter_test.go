package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowAllow(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)

	l := NewFixedWindow(2, time.Second)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("ip1"))
	assert.True(t, l.Allow("ip1"))
	assert.False(t, l.Allow("ip1"))

	// negação não muda estado: continua negando dentro da janela
	assert.False(t, l.Allow("ip1"))

	// outro identificador tem janela própria
	assert.True(t, l.Allow("ip2"))

	// janela expira e o contador recomeça em 1
	now = now.Add(1001 * time.Millisecond)
	assert.True(t, l.Allow("ip1"))
	assert.True(t, l.Allow("ip1"))
	assert.False(t, l.Allow("ip1"))
}

func TestFixedWindowResetRelativeToFirstRequest(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)

	l := NewFixedWindow(100, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("ip1"))

	// a janela abre na primeira requisição, não desliza
	now = now.Add(59 * time.Second)
	assert.True(t, l.Allow("ip1"))
	w := l.windows["ip1"]
	assert.Equal(t, 2, w.count)

	now = now.Add(2 * time.Second)
	assert.True(t, l.Allow("ip1"))
	w = l.windows["ip1"]
	assert.Equal(t, 1, w.count)
}

func TestFixedWindowUnknownBucket(t *testing.T) {
	l := NewFixedWindow(1, time.Minute)

	assert.True(t, l.Allow("unknown"))
	assert.False(t, l.Allow("unknown"))
}

func TestFixedWindowConcurrentSameKey(t *testing.T) {
	const max = 50
	l := NewFixedWindow(max, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("ip1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// sem lost update: exatamente max permitidos
	assert.Equal(t, max, allowed)
}

func TestJanitorPurgesExpiredWindows(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)

	l := NewFixedWindow(10, time.Second)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("ip1"))
	assert.True(t, l.Allow("ip2"))

	now = now.Add(2 * time.Second)

	// mesma varredura que o janitor executa no tick
	l.mu.Lock()
	for id, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, id)
		}
	}
	l.mu.Unlock()

	assert.Empty(t, l.windows)
	assert.True(t, l.Allow("ip1"))
}

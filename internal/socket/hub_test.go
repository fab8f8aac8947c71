package socket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialClient upgrades a connection through an httptest server and registers
// the server side of it in the hub. The client side drains everything it
// receives and reports the total on done.
func dialClient(t *testing.T, hub *Hub, userID, role string) (drained func() int) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(userID, role, conn)
		close(registered)
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	<-registered

	var mu sync.Mutex
	count := 0
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			mu.Lock()
			count++
			mu.Unlock()
		}
	}()

	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return count
	}
}

func TestBroadcastToRoleConcurrentWriters(t *testing.T) {
	hub := NewHub()
	drained := dialClient(t, hub, "disposal-1", "disposal_staff")

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				hub.BroadcastToRole("disposal_staff", Event{Type: EventRequestCreated})
			}
		}()
	}
	wg.Wait()

	// All writes were serialized onto the one connection; nothing panicked
	// and every message made it through.
	deadline := time.Now().Add(2 * time.Second)
	for drained() < goroutines*perGoroutine && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, goroutines*perGoroutine, drained())
}

func TestSendToUserConcurrentWithBroadcast(t *testing.T) {
	hub := NewHub()
	drained := dialClient(t, hub, "medical-1", "medical_staff")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hub.SendToUser("medical-1", Event{Type: EventRequestAssigned})
				hub.BroadcastToRole("medical_staff", Event{Type: EventRequestCompleted})
			}
		}()
	}
	wg.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for drained() < 800 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 800, drained())
}

func TestSendToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	hub.SendToUser("nobody", Event{Type: EventRequestAssigned})
	hub.Unregister("nobody")
}

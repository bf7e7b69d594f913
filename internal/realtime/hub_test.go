package realtime_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-leave/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHub_BroadcastReachesClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub(nil, zap.NewNop())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	defer conn.Close()

	payload := []byte(`{"event_type":"leave_request_created","leave_request_id":1}`)

	// registration is asynchronous; keep broadcasting until the client sees it
	got := make(chan []byte, 1)
	go func() {
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err == nil {
			got <- msg
		}
	}()

	deadline := time.After(3 * time.Second)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case msg := <-got:
			assert.JSONEq(t, string(payload), string(msg))
			return
		case <-ticker.C:
			hub.Broadcast(payload)
		case <-deadline:
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHub_BroadcastWithoutRunDoesNotBlock(t *testing.T) {
	hub := realtime.NewHub(nil, zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Broadcast([]byte("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked")
	}
}

package services

import (
	"context"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// Registration happens from handler goroutines while Run fans out snapshots;
// this passes under -race only if the client map is synchronized.
func TestDashboardHubConcurrentAddRemove(t *testing.T) {
	hub := NewDashboardHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := &websocket.Conn{}
			hub.Add(conn)
			hub.Remove(conn)
		}()
	}
	wg.Wait()

	hub.Broadcast(DashboardSnapshot{})

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.clients)
}

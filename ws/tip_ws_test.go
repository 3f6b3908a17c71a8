package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tapr/entity"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyTipNeverBlocks(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	hub := NewTipHub(nil, nil, log)

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastQueue+5; i++ {
			hub.NotifyTip("v1", &entity.Tip{Amount: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyTip blocked with no hub running")
	}
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Len(t, hub.broadcast, broadcastQueue)
}

func TestCheckOrigin(t *testing.T) {
	hub := NewTipHub(nil, []string{"https://admin.tapr.app"}, logrus.New())

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://admin.tapr.app", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws/venues/x/tips", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, hub.upgrader.CheckOrigin(r), tt.origin)
	}

	open := NewTipHub(nil, []string{"*"}, logrus.New())
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://anything.example")
	assert.True(t, open.upgrader.CheckOrigin(r))
}

func TestRunStopsWithContext(t *testing.T) {
	hub := NewTipHub(nil, nil, logrus.New())
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, hub.ClientCount("v1"))
}

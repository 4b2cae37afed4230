package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chore-keeper/internal/config"
	"github.com/MKhiriev/go-chore-keeper/internal/handler"
	myHTTP "github.com/MKhiriev/go-chore-keeper/internal/handler/http"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/session"
	"github.com/MKhiriev/go-chore-keeper/models"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestHandlers() *handler.Handlers {
	services := &service.ClientServices{
		AppInfoService: service.NewAppInfoService(models.NewAppBuildInfo("v1", "", ""), logger.Nop()),
	}
	return &handler.Handlers{HTTP: myHTTP.NewHandler(services, session.New(), "", logger.Nop())}
}

func TestNewServer_NoAddress(t *testing.T) {
	s, err := NewServer(newTestHandlers(), config.ClientServer{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(nil, config.ClientServer{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestServer_RunServesUntilCancel(t *testing.T) {
	addr := freeAddress(t)
	s, err := NewServer(newTestHandlers(), config.ClientServer{HTTPAddress: addr, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/version")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run не завершился после отмены контекста")
	}

	_, err = http.Get("http://" + addr + "/api/version")
	assert.Error(t, err)
}

func TestServer_RunReturnsOnListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	// адрес уже занят
	s, err := NewServer(newTestHandlers(), config.ClientServer{HTTPAddress: l.Addr().String()}, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run должен вернуться при ошибке Listen")
	}
}

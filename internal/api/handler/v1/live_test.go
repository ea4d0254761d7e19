package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	served chan uint
}

func (f *fakeHub) Serve(conn *websocket.Conn, userID uint) {
	_ = conn.Close()
	f.served <- userID
}

func mountLive(userID uint, hub LiveHub, origins []string) http.Handler {
	r := newTestRouter(userID)
	r.GET("/live", NewLiveHandler(hub, testProfiles, origins).HandleLive)

	return r
}

func TestHandleLive_Upgrades(t *testing.T) {
	hub := &fakeHub{served: make(chan uint, 1)}
	srv := httptest.NewServer(mountLive(1, hub, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, uint(1), <-hub.served)
}

func TestHandleLive_BannedUser(t *testing.T) {
	rec := doJSON(t, mountLive(3, &fakeHub{}, nil), http.MethodGet, "/live", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleLive_RejectsUnknownOrigin(t *testing.T) {
	srv := httptest.NewServer(mountLive(1, &fakeHub{served: make(chan uint, 1)}, []string{"https://hack.example"}))
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDomain_NilReceiverIsSafe(t *testing.T) {
	var m *Domain

	assert.NotPanics(t, func() {
		m.UserSignedUp("participant")
		m.VoteToggled("idea", true)
		m.TeamMembershipChanged("join")
		m.LiveClientConnected()
		m.LiveClientDisconnected()
		m.LiveEventPublished("idea.voted")
	})
}

func TestDomain_Counters(t *testing.T) {
	m := NewDomain(prometheus.NewRegistry())

	m.VoteToggled("team", true)
	m.VoteToggled("team", true)
	m.VoteToggled("team", false)
	m.LiveClientConnected()
	m.LiveClientConnected()
	m.LiveClientDisconnected()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VotesToggled.WithLabelValues("team", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VotesToggled.WithLabelValues("team", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LiveClients))
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewHTTPMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/ideas/:ideaID", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	router.GET("/metrics", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/ideas/1", "/api/v1/ideas/2", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/ideas/:ideaID", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}

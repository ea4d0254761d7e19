package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/hackathon-api/internal/api/middleware"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProfiles map[uint]domain.HackathonUser

func (f fakeProfiles) GetProfile(_ context.Context, userID uint) (domain.HackathonUser, error) {
	p, ok := f[userID]
	if !ok {
		return domain.HackathonUser{}, service.ErrUserNotFound
	}

	return p, nil
}

var testProfiles = fakeProfiles{
	1: {ID: 11, UserID: 1, Role: domain.RoleParticipant},
	2: {ID: 12, UserID: 2, Role: domain.RoleAdmin},
	3: {ID: 13, UserID: 3, Role: domain.RoleParticipant, Banned: true},
}

// newTestRouter authenticates every request as userID, skipping JWT parsing.
func newTestRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.ContextKeyUserID, userID)
		}
		ctx.Next()
	})

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/compassionai/compassion/internal/models"
	"github.com/compassionai/compassion/internal/services"
)

type fakeAnalyticsService struct {
	series *models.AnalyticsSeries

	gotSessionID string
	gotMode      services.AnalyticsMode
}

func (f *fakeAnalyticsService) Latency(context.Context, string) (float64, error) { return 0, nil }

func (f *fakeAnalyticsService) Series(_ context.Context, sessionID string, mode services.AnalyticsMode) (*models.AnalyticsSeries, error) {
	f.gotSessionID = sessionID
	f.gotMode = mode
	return f.series, nil
}

func newAnalyticsRouter(svc *fakeAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/analytics", NewAnalyticsHandler(svc).Series)
	return r
}

func TestAnalyticsEmptySessionReturnsEmptyArrays(t *testing.T) {
	r := newAnalyticsRouter(&fakeAnalyticsService{series: models.EmptySeries()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analytics?session_id=nonexistent", nil))

	require.Equal(t, http.StatusOK, w.Code)

	// columns must be [] in the payload, never null
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, field := range []string{"timestamps", "response_times", "clarity_scores"} {
		require.JSONEq(t, "[]", string(body[field]), field)
	}
}

func TestAnalyticsPassesModeAndSession(t *testing.T) {
	svc := &fakeAnalyticsService{series: &models.AnalyticsSeries{
		Timestamps:    []string{"2025-03-01 12:00"},
		ResponseTimes: []float64{3.4},
		ClarityScores: []float64{0.0},
	}}
	r := newAnalyticsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analytics?session_id=s1&roles=assistant", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "s1", svc.gotSessionID)
	require.Equal(t, services.ModeAssistantOnly, svc.gotMode)

	var series models.AnalyticsSeries
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &series))
	require.Equal(t, []float64{3.4}, series.ResponseTimes)
}

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthplug/pharmabot/internal/chat"
	"github.com/healthplug/pharmabot/internal/intent"
	"github.com/healthplug/pharmabot/internal/observability/metrics"
	"github.com/healthplug/pharmabot/internal/orders"
	"github.com/healthplug/pharmabot/internal/session"
	"github.com/healthplug/pharmabot/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(client, time.Hour)

	engine := intent.NewEngine(intent.Options{
		ParseOrderID: func(text string) (string, bool) {
			id := orders.ParseOrderIDFromText(text)
			return id, id != ""
		},
		IsValidOrderID: orders.IsValidOrderID,
	})

	reg := prometheus.NewRegistry()
	svc := chat.NewService(engine, store, metrics.NewClassifierMetrics(reg), logging.Default())

	return New(&Config{
		Logger:         logging.Default(),
		ChatHandler:    chat.NewHandler(svc, nil),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterChatMessages(t *testing.T) {
	r := newTestRouter(t)
	body := `{"text":"track order ORD-7F3K9Q","sender_id":"wa-1"}`
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"intent":"track_order"`)
	assert.Contains(t, rec.Body.String(), `"orderId":"ORD-7F3K9Q"`)
}

func TestRouterMetricsExposed(t *testing.T) {
	r := newTestRouter(t)

	body := `{"text":"hello","sender_id":"wa-2"}`
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(body))
	r.ServeHTTP(httptest.NewRecorder(), req)

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, metricsReq)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pharmabot_intent_classifications_total")
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/airgo3d/panorama-api/internal/config"
	"github.com/airgo3d/panorama-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

func testConfig() config.Config {
	return config.Config{
		Server:  config.ServerConfig{CORSOrigin: "http://localhost:3000"},
		Metrics: config.MetricsConfig{PrometheusPath: "/metrics"},
	}
}

func TestRootRouteReportsServiceInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()

	router := NewRouter(Dependencies{Config: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal info payload: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("unexpected status: %q", payload["status"])
	}
}

func TestLivenessRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()

	router := NewRouter(Dependencies{Config: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()

	router := NewRouter(Dependencies{Config: testConfig()})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("expected metrics body")
	}
}

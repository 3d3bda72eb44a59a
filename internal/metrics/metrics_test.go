package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitMetrics()

	r := gin.New()
	r.Use(Middleware())
	r.GET("/v1/panoramas", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/panoramas", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestObserveUploadBeforeInitIsSafe(t *testing.T) {
	// Must not panic even if collectors are not registered yet in this
	// process; InitMetrics may have run via another test, either way is fine.
	ObserveUpload("ok")
	ObserveUpload("invalid")
}

func TestRegisterExposesUploadCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitMetrics()
	ObserveUpload("ok")

	r := gin.New()
	Register(r, "/metrics")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "airgo_panorama_uploads_total") {
		t.Fatalf("expected upload counter in metrics output")
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitBurstThenThrottle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.POST("/analyze", RateLimit(limiter, RateLimitRule{Rate: 1, Burst: 2}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing")
	}

	var body struct {
		Error        string `json:"error"`
		RetryAfterMs int    `json:"retryAfterMs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "rate_limited" || body.RetryAfterMs <= 0 {
		t.Fatalf("body = %+v", body)
	}
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("client", rule); !ok {
		t.Fatal("first token should be available")
	}
	if ok, _ := limiter.Allow("client", rule); ok {
		t.Fatal("bucket should be empty")
	}

	now = now.Add(time.Second)
	if ok, _ := limiter.Allow("client", rule); !ok {
		t.Fatal("token should refill after one second at rate 1")
	}
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatal("client a should have a token")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatal("client b should have its own bucket")
	}
}

func TestRateLimitZeroRuleDisables(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 10; i++ {
		if ok, _ := limiter.Allow("client", RateLimitRule{}); !ok {
			t.Fatal("zero rule should not throttle")
		}
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JuzzThyne/ERI-backend/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(tokens *utils.TokenManager, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{
			"adminId": AdminID(c),
			"fromCtx": AdminIDFromContext(c.Request.Context()),
		})
	})
	return r
}

func doRequest(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["message"]
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	expired, err := utils.NewTokenManager("secret", -time.Minute).GenerateJWT("a1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	foreign, err := utils.NewTokenManager("other", time.Hour).GenerateJWT("a1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", "Missing token"},
		{"no bearer prefix", "Token abc", "Invalid token"},
		{"empty bearer", "Bearer ", "Invalid token"},
		{"expired", "Bearer " + expired, "Token has expired"},
		{"wrong secret", "Bearer " + foreign, "Invalid token"},
		{"garbage", "Bearer abc.def.ghi", "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			rr := doRequest(setupRouter(tokens, &reached), tc.header)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if got := messageOf(t, rr); got != tc.want {
				t.Fatalf("message got %q, want %q", got, tc.want)
			}
			if reached {
				t.Fatalf("handler must not run")
			}
		})
	}
}

func TestAuthMiddleware_AttachesAdminID(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	tok, err := tokens.GenerateJWT("admin-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	reached := false
	rr := doRequest(setupRouter(tokens, &reached), "Bearer "+tok)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["adminId"] != "admin-42" || body["fromCtx"] != "admin-42" {
		t.Fatalf("unexpected identity: %v", body)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRequestIDPropagatesCallerValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-7")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Body.String() != "req-7" || rr.Header().Get("X-Request-Id") != "req-7" {
		t.Fatalf("request id not propagated: body=%q header=%q", rr.Body.String(), rr.Header().Get("X-Request-Id"))
	}
}

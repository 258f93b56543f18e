package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respondWith(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondDomainError(c, err)
	return w
}

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError{Field: "items", Msg: "items required"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{"authorization", domain.AuthorizationError{Msg: "email does not match"}, http.StatusUnauthorized},
		{"upstream", domain.UpstreamError{Service: "paymennt"}, http.StatusBadGateway},
		{"internal", domain.InternalError{Msg: "boom"}, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := respondWith(t, c.err)
			if w.Code != c.want {
				t.Fatalf("status = %d, want %d", w.Code, c.want)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["success"] != false {
				t.Fatalf("success = %v, want false", body["success"])
			}
		})
	}
}

func TestRespondDomainErrorHidesInternalDetail(t *testing.T) {
	w := respondWith(t, domain.InternalError{Msg: "dsn user:pass@tcp leaked"})
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "something went wrong" {
		t.Fatalf("internal detail leaked: %v", body["message"])
	}
}

func TestRespondDomainErrorExposesUpstreamPayload(t *testing.T) {
	w := respondWith(t, domain.UpstreamError{Service: "paymennt", Payload: `{"error":"declined"}`})
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != `{"error":"declined"}` {
		t.Fatalf("upstream payload missing: %v", body)
	}
}

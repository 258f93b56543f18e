package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "re_test", APIURL: srv.URL, From: "Desert Planners <noreply@example.com>"})
	err := c.Send(context.Background(), "admin@example.com", "New Booking", "<b>hello</b>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", gotAuth)
	assert.Equal(t, "admin@example.com", gotBody["to"])
	assert.Equal(t, "New Booking", gotBody["subject"])
	assert.Equal(t, "Desert Planners <noreply@example.com>", gotBody["from"])
}

func TestSendDisabledWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("disabled client must not call the API")
	}))
	defer srv.Close()

	c := NewClient(Config{APIURL: srv.URL})
	assert.False(t, c.Enabled())
	require.NoError(t, c.Send(context.Background(), "admin@example.com", "s", "b"))
}

func TestSendUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "re_test", APIURL: srv.URL})
	err := c.Send(context.Background(), "admin@example.com", "s", "b")

	var up domain.UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, "resend", up.Service)
	assert.Contains(t, up.Payload, "rate limited")
}

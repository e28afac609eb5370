package worldpay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func directSettings(endpoint string) *domain.Settings {
	return &domain.Settings{
		IntegrationMode:  domain.ModeDirect,
		UseSandbox:       false,
		EndPoint:         endpoint,
		SecureNetID:      "8000000",
		SecureKey:        "secret-key",
		DeveloperID:      12345,
		DeveloperVersion: "1.2",
	}
}

func TestClientPost_SendsSignedRequest(t *testing.T) {
	var calls atomic.Int64
	var captured struct {
		path        string
		auth        string
		contentType string
		body        map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"result":"APPROVED","responseCode":1,"transaction":{"transactionId":555,"authorizationCode":"AUTH55","avsResult":"Y"}}`)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, testLogger())
	resp, err := client.Post(context.Background(), directSettings(server.URL), &AuthorizeRequest{
		Amount: 42.50,
		Card:   &Card{Number: "4111111111111111"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, "/payments/Authorize", captured.path)
	assert.Equal(t, "application/json; charset=utf-8", captured.contentType)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("8000000:secret-key"))
	assert.Equal(t, wantAuth, captured.auth)

	app := captured.body["developerApplication"].(map[string]any)
	assert.Equal(t, float64(12345), app["developerId"])
	assert.Equal(t, "1.2", app["version"])
	assert.Equal(t, 42.50, captured.body["amount"])

	require.NotNil(t, resp.Transaction)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(555), resp.Transaction.TransactionID)
	assert.Equal(t, "AUTH55", resp.Transaction.AuthorizationCode)
}

func TestClientPost_ReturnsParsedReplyOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"success":false,"result":"DECLINED","responseCode":2,"message":"Card declined"}`)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, testLogger())
	resp, err := client.Post(context.Background(), directSettings(server.URL), &VoidRequest{TransactionID: 1})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Card declined", resp.Message)
}

func TestClientPost_MalformedBodyIsNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>gateway timeout</html>")
	}))
	defer server.Close()

	client := NewClient(5*time.Second, testLogger())
	resp, err := client.Post(context.Background(), directSettings(server.URL), &VoidRequest{TransactionID: 1})

	assert.Nil(t, resp)
	require.ErrorIs(t, err, ErrNoResponse)
}

func TestClientPost_TransportFailureIsNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(time.Second, testLogger())
	resp, err := client.Post(context.Background(), directSettings(server.URL), &VoidRequest{TransactionID: 1})

	assert.Nil(t, resp)
	require.ErrorIs(t, err, ErrNoResponse)
}

func TestClientPost_SandboxOverridesEndpoint(t *testing.T) {
	settings := directSettings("http://configured.example")
	settings.UseSandbox = true

	client := NewClient(time.Millisecond, testLogger())
	_, err := client.Post(context.Background(), settings, &VoidRequest{TransactionID: 1})

	// The sandbox host is unreachable from tests; what matters is that the
	// configured endpoint was not contacted and the failure is normalized.
	require.ErrorIs(t, err, ErrNoResponse)
	assert.NotContains(t, err.Error(), "configured.example")
}

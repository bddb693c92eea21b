package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/studygram/internal/config"
	"github.com/jonathan/studygram/internal/server/ratelimit"
	"github.com/jonathan/studygram/internal/study"
	"github.com/jonathan/studygram/internal/types"
)

const photosynthesis = "Photosynthesis is the process plants use to make food. " +
	"This process requires sunlight, water, and carbon dioxide. " +
	"Chlorophyll is the pigment that captures light energy."

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret-0123456789", Expiration: time.Hour, Issuer: "studygram"}
}

func testOptions() Options {
	seed := int64(1)
	cfg := config.Default()
	cfg.Seed = &seed
	return Options{
		Config:    cfg,
		Repo:      study.NewMemoryRepository(),
		JWT:       testJWTConfig(),
		Passwords: &config.PasswordConfig{BcryptCost: 10},
		RateLimit: &ratelimit.Config{Enabled: false},
	}
}

func newTestServer(t *testing.T, mutate ...func(*Options)) *Server {
	t.Helper()
	opts := testOptions()
	for _, m := range mutate {
		m(&opts)
	}
	s, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, s *Server, token, filename, docType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if docType != "" {
		require.NoError(t, mw.WriteField("type", docType))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents", &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// registerUser creates an account and returns its token
func registerUser(t *testing.T, s *Server, email string) string {
	t.Helper()
	w := doRequest(t, s, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name: "Student", Email: email, Password: "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[types.LoginResponse](t, w).Token
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"notely/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type stubVerifier struct {
	tokens map[string]auth.IdentityClaims
}

func (v *stubVerifier) Verify(_ context.Context, idToken string) (*auth.IdentityClaims, error) {
	if claims, ok := v.tokens[idToken]; ok {
		return &claims, nil
	}
	return nil, errors.New("token rejected by provider")
}

type testEnv struct {
	srv   *FiberServer
	store *memStore
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	srv := &FiberServer{
		App:     fiber.New(fiber.Config{ErrorHandler: errorHandler}),
		users:   &memUsers{s: store},
		folders: &memFolders{s: store},
		notes:   &memNotes{s: store},
		verifier: &stubVerifier{tokens: map[string]auth.IdentityClaims{
			"provider-token-carol":  {Email: "carol@example.com", Name: "Carol"},
			"provider-token-noname": {Email: "noname@example.com"},
		}},
		jwtSecret: testSecret,
	}
	srv.RegisterFiberRoutes()
	return &testEnv{srv: srv, store: store}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.srv.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doRaw sends a literal JSON payload, which the tri-state patch tests need
// to control key presence exactly.
func (e *testEnv) doRaw(t *testing.T, method, path, token, rawJSON string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(rawJSON)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.srv.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// registerAndLogin creates an account through the API and returns its
// session token and user id.
func (e *testEnv) registerAndLogin(t *testing.T, email, name, password string) (string, int64) {
	t.Helper()
	resp := e.do(t, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": email, "name": name, "password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	return token, int64(user["id"].(float64))
}

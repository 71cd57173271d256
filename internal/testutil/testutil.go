// Package testutil provides shared test helpers for creating config files and a fake generate API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file pointing at baseURL and the output directory.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	outputDir := filepath.Join(tmpDir, "lesson_plans")
	require.NoError(t, os.MkdirAll(outputDir, 0755))

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout: 5s
outputs:
  directory: %s
`,
		baseURL,
		outputDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// GenerateServer is a fake lesson plan API that answers every POST /generate
// with the same status and body.
type GenerateServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []lessonplan.GenerateRequest
}

func NewGenerateServer(t *testing.T, statusCode int, body string) *GenerateServer {
	t.Helper()

	server := &GenerateServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate" {
			http.NotFound(w, r)
			return
		}

		var request lessonplan.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		server.mu.Lock()
		server.requests = append(server.requests, request)
		server.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// Requests returns the decoded bodies received so far
func (s *GenerateServer) Requests() []lessonplan.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]lessonplan.GenerateRequest(nil), s.requests...)
}

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"foiagate/internal/gate"
	gateMetrics "foiagate/internal/gate/metrics"
	"foiagate/internal/platform/metrics"
	httptransport "foiagate/internal/transport/http"
)

// TestContext drives the HTTP API of an in-process server and remembers the
// last response for assertions.
type TestContext struct {
	server *httptest.Server

	lastStatus int
	lastBody   []byte
}

// NewTestContext starts a server wired the same way as cmd/server.
func NewTestContext() *TestContext {
	m := metrics.New()
	svc := gate.NewService(gate.WithMetrics(gateMetrics.New(m.Registry)))
	return &TestContext{server: httptest.NewServer(httptransport.NewRouter(svc, m))}
}

// Close stops the server.
func (tc *TestContext) Close() {
	tc.server.Close()
}

// POST sends body as JSON.
func (tc *TestContext) POST(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(tc.server.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	return tc.record(resp)
}

// GET fetches path.
func (tc *TestContext) GET(path string) error {
	resp, err := http.Get(tc.server.URL + path)
	if err != nil {
		return err
	}
	return tc.record(resp)
}

func (tc *TestContext) record(resp *http.Response) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	return nil
}

// LastStatus returns the status code of the last response.
func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

// GetResponseField resolves a dotted path such as "gate.actions.0.id" in the
// last JSON response.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	var v any
	if err := json.Unmarshal(tc.lastBody, &v); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for _, part := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", part, path)
			}
			v = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", part, path)
			}
			v = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q in %s", part, path)
		}
	}
	return v, nil
}

// ResponseContains reports whether path resolves in the last response.
func (tc *TestContext) ResponseContains(path string) bool {
	_, err := tc.GetResponseField(path)
	return err == nil
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/internal/preview"
)

func newTestServer(t *testing.T, opts Options) (*httptest.Server, string) {
	t.Helper()
	if opts.Root == "" {
		opts.Root = t.TempDir()
	}
	opts.Logger = log.New(io.Discard)
	srv := httptest.NewServer(New(opts).Handler())
	t.Cleanup(srv.Close)
	return srv, opts.Root
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
}

func TestTargets(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, err := http.Get(srv.URL + "/api/targets")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out targetsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Targets, 15)
	assert.Equal(t, targetInfo{Name: "python", Extension: ".py"}, out.Targets[0])
	require.Len(t, out.Frameworks, 13)
	assert.Equal(t, "react", out.Frameworks[0].Name)
}

func TestTranspile(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	url := srv.URL + "/api/transpile"

	resp, out := postJSON(t, url, codeRequest{Code: "imprimir 1", Target: "py"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "python", out["target"])
	assert.Equal(t, "print(1)\n", out["output"])

	resp, out = postJSON(t, url, codeRequest{Code: "imprimir 1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "python", out["target"])

	resp, out = postJSON(t, url, codeRequest{Code: "componente A\nfin\n", Target: "React"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "react", out["target"])
	assert.Contains(t, out["output"], "export function A()")

	resp, out = postJSON(t, url, codeRequest{Code: "imprimir 1", Target: "cobol"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "cobol")
}

func TestTranspileLimits(t *testing.T) {
	srv, _ := newTestServer(t, Options{MaxCodeBytes: 16})
	url := srv.URL + "/api/transpile"

	resp, _ := postJSON(t, url, codeRequest{Code: strings.Repeat("x", 17)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, _ = postJSON(t, url, codeRequest{Code: strings.Repeat("x", 8000)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	raw, err := http.Post(url, "application/json", strings.NewReader("{no es json"))
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestDetect(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	url := srv.URL + "/api/detect"

	resp, out := postJSON(t, url, codeRequest{Code: "componente A\n  estado x = 0\nfin\n"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "react", out["framework"])
	assert.Contains(t, out["scores"], "vue")

	resp, out = postJSON(t, url, codeRequest{Code: "imprimir 1"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, out["error"])
}

func TestRun(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, _ := postJSON(t, srv.URL+"/api/run", codeRequest{Code: "imprimir 1"})
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	script := filepath.Join(t.TempDir(), "interprete")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat \"$1\"\n"), 0o755))
	runner := preview.NewRunner(map[string]string{"python": script}, time.Second, log.New(io.Discard))
	srv, _ = newTestServer(t, Options{Runner: runner})

	resp, out := postJSON(t, srv.URL+"/api/run", codeRequest{Code: "imprimir 1", Target: "python"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "print(1)\n", out["output"])

	resp, _ = postJSON(t, srv.URL+"/api/run", codeRequest{Code: "imprimir 1", Target: "rust"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAsk(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, out := postJSON(t, srv.URL+"/api/ask", codeRequest{Question: "¿qué es mientras?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out["answer"], "mientras")

	resp, _ = postJSON(t, srv.URL+"/api/ask", codeRequest{Code: "x = 1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPreflight(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/transpile", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func get(t *testing.T, url string) (int, string, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestVaderPages(t *testing.T) {
	root := t.TempDir()
	src := "imprimir \"hola\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "hola.vdr"), []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nota.txt"), []byte("texto plano"), 0o644))
	srv, _ := newTestServer(t, Options{Root: root})

	status, ctype, body := get(t, srv.URL+"/hola.vdr")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, ctype, "text/html")
	assert.Contains(t, body, `<script type="module">`)
	assert.Contains(t, body, `console.log("hola");`)
	assert.Contains(t, body, `imprimir &#34;hola&#34;`)
	assert.Contains(t, body, `href="hola.vdr?raw=1"`)

	status, ctype, body = get(t, srv.URL+"/hola.vdr?raw=1")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, ctype, "text/plain")
	assert.Equal(t, src, body)

	status, _, body = get(t, srv.URL+"/nota.txt")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "texto plano", body)

	status, _, _ = get(t, srv.URL+"/falta.vdr")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestVaderPageScriptIsolated(t *testing.T) {
	root := t.TempDir()
	src := "imprimir \"</SCRIPT><b>x\"\nimprimir \"<!-- y\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "fuga.vdr"), []byte(src), 0o644))
	srv, _ := newTestServer(t, Options{Root: root})

	status, _, body := get(t, srv.URL+"/fuga.vdr")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<\/SCRIPT><b>x`)
	assert.NotContains(t, body, `</SCRIPT><b>`)
	assert.Contains(t, body, `<\!-- y`)
	assert.Equal(t, 2, strings.Count(strings.ToLower(body), "</script>"))
}

func TestScriptSafe(t *testing.T) {
	assert.Equal(t, `a<\/script>b<\/ScRiPt>`, scriptSafe("a</script>b</ScRiPt>"))
	assert.Equal(t, `<\!--`, scriptSafe("<!--"))
	assert.Equal(t, "1 < 2", scriptSafe("1 < 2"))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(Options{Logger: log.New(io.Discard)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"statusboard/internal/logger"

	"github.com/gin-gonic/gin"
)

func newStaticEngine(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	files := map[string]string{
		"index.html":    "<h1>dash</h1>",
		"app.js":        "console.log('hi')",
		"style.css":     "body{}",
		"data.json":     `{"a":1}`,
		"icon.svg":      "<svg/>",
		"blob.bin":      "\x00\x01\x02",
		"nested/a.html": "<p>a</p>",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	static, err := NewStaticServer(dir, logger.Discard())
	if err != nil {
		t.Fatalf("NewStaticServer: %v", err)
	}
	r := gin.New()
	r.NoRoute(static.Serve)
	return r, dir
}

func TestStaticServer_ServesFiles(t *testing.T) {
	r, _ := newStaticEngine(t)

	tests := []struct {
		path     string
		wantType string
		wantBody string
	}{
		{"/", "text/html", "<h1>dash</h1>"},
		{"/index.html", "text/html", "<h1>dash</h1>"},
		{"/app.js", "application/javascript", "console.log('hi')"},
		{"/style.css", "text/css", "body{}"},
		{"/data.json", "application/json", `{"a":1}`},
		{"/icon.svg", "image/svg+xml", "<svg/>"},
		{"/blob.bin", "application/octet-stream", "\x00\x01\x02"},
		{"/nested/a.html", "text/html", "<p>a</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if got := w.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("expected content type %q, got %q", tt.wantType, got)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestStaticServer_RejectsTraversal(t *testing.T) {
	r, _ := newStaticEngine(t)

	for _, path := range []string{"/../../etc/passwd", "/nested/../../secret", "/%2e%2e/%2e%2e/etc/passwd"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", path, w.Code)
		}
	}
}

func TestStaticServer_Symlinks(t *testing.T) {
	r, dir := newStaticEngine(t)

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.txt")
	if err := os.WriteFile(secret, []byte("top secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(dir, "leak.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(dir, "out")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "app.js"), filepath.Join(dir, "alias.js")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/leak.txt", http.StatusForbidden},
		{"/out/secret.txt", http.StatusForbidden},
		{"/alias.js", http.StatusOK},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.wantCode {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.wantCode, w.Code)
		}
		if w.Code == http.StatusForbidden && w.Body.String() == "top secret" {
			t.Errorf("%s: leaked file contents", tt.path)
		}
	}
}

func TestStaticServer_Missing(t *testing.T) {
	r, _ := newStaticEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope.css", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestStaticServer_DirectoryIsReadFailure(t *testing.T) {
	r, _ := newStaticEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nested", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestStaticServer_Head(t *testing.T) {
	r, _ := newStaticEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/app.js", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected no body for HEAD, got %q", w.Body.String())
	}
	if w.Header().Get("Content-Length") != "17" {
		t.Errorf("expected content length 17, got %q", w.Header().Get("Content-Length"))
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.HTML":  "text/html",
		"a.css":   "text/css",
		"x.tar":   "application/octet-stream",
		"no-ext":  "application/octet-stream",
		"pic.svg": "image/svg+xml",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

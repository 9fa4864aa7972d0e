package controllers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexDocument = "index.html"

var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".ico":  "image/x-icon",
}

const defaultContentType = "application/octet-stream"

// ContentType maps a file name to its response content type.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

// StaticServer serves files from a fixed root directory.
type StaticServer struct {
	root string
	log  *slog.Logger
}

// NewStaticServer creates a StaticServer rooted at dir.
func NewStaticServer(dir string, log *slog.Logger) (*StaticServer, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &StaticServer{root: root, log: log}, nil
}

// Root returns the absolute asset root.
func (s *StaticServer) Root() string {
	return s.root
}

// resolve maps a request path to a file under root. ok is false when the
// result would escape root.
func (s *StaticServer) resolve(urlPath string) (string, bool) {
	if urlPath == "" || urlPath == "/" {
		urlPath = "/" + indexDocument
	}

	full := filepath.Join(s.root, filepath.FromSlash(urlPath))
	if !within(s.root, full) {
		return "", false
	}

	// Symlinks under root must not lead outside it. Missing files are left
	// for the read to report.
	target, err := filepath.EvalSymlinks(full)
	if err != nil {
		return full, true
	}
	root, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		root = s.root
	}
	if !within(root, target) {
		return "", false
	}
	return full, true
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Serve writes the file for the request path.
func (s *StaticServer) Serve(c *gin.Context) {
	method := c.Request.Method
	if method != http.MethodGet && method != http.MethodHead {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	full, ok := s.resolve(c.Request.URL.Path)
	if !ok {
		s.log.Warn("Rejected path outside asset root", "path", c.Request.URL.Path, "ip", c.ClientIP())
		c.String(http.StatusForbidden, "Forbidden")
		return
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		s.log.Error("Failed to read asset", "path", full, "error", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	ct := ContentType(full)
	if method == http.MethodHead {
		c.Header("Content-Type", ct)
		c.Header("Content-Length", strconv.Itoa(len(data)))
		c.Status(http.StatusOK)
		return
	}
	c.Data(http.StatusOK, ct, data)
}

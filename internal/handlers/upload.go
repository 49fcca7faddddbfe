package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type uploadResponse struct {
	URL string `json:"url"`
}

// HandleUpload serves POST /api/admin/upload. It stores the multipart field
// "file" in UploadDir and answers { "url": "/uploads/<name>" }.
func (e *Env) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := e.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	if err := os.MkdirAll(e.UploadDir, 0o755); err != nil {
		e.internalError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		e.writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		e.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExts[ext] {
		e.writeError(w, http.StatusBadRequest, "only jpg, png, webp and gif images are accepted")
		return
	}
	nameOnly := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	nameOnly = sanitizeFilename(nameOnly)

	filename := e.clock().Format("20060102_150405") + "_" + nameOnly + ext
	dstPath := filepath.Join(e.UploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		e.internalError(w, r, err)
		return
	}

	e.Log.Info("image uploaded", zap.String("file", filename), zap.Int64("size", header.Size))
	e.writeJSONStatus(w, http.StatusCreated, uploadResponse{URL: "/uploads/" + filename})
}

// sanitizeFilename keeps letters, digits, '-' and '_'; separators become '_'.
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "file"
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ', r == '/', r == '\\', r == '.':
			return '_'
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

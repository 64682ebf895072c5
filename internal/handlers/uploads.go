// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"vibedev/internal/middleware"
	"vibedev/internal/storage"
)

// maxUploadSize caps multipart uploads at 10 MiB.
const maxUploadSize = 10 << 20

// allowedUploadTypes maps accepted content types to their canonical
// file extension. Uploads are opaque to the platform; only images are
// accepted.
var allowedUploadTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// Uploads handles authenticated asset uploads to object storage.
type Uploads struct {
	storage *storage.Client // nil when S3 is not configured
}

// NewUploads creates a new Uploads handler group.
func NewUploads(storageClient *storage.Client) *Uploads {
	return &Uploads{storage: storageClient}
}

// Upload accepts a multipart file, stores it in the public bucket under
// a per-user prefix, and returns the final asset URL. Used for project
// screenshots, avatars, and inline post images.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}
	sess := middleware.SessionFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Upload too large (max 10 MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		respondError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	key := fmt.Sprintf("uploads/%s/%s%s",
		sess.UserID, uuid.New().String(), ext)

	if err := h.storage.Upload(r.Context(), h.storage.PublicBucket(), key, contentType, file, header.Size); err != nil {
		respondInternalError(w, "upload failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"url":         h.storage.FileURL(key),
		"key":         key,
		"filename":    sanitizeFilename(header.Filename),
		"size":        header.Size,
		"uploaded_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// sanitizeFilename strips any path components from a client-supplied
// file name before echoing it back.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "upload"
	}
	return name
}

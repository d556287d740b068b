package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teambuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDHeader(t *testing.T) {
	_, r := newTestApp(t)

	// A fresh id is minted when the client sends none.
	rec := performRequest(r, http.MethodGet, "/api/v1/healthcheck", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// A client-supplied id is echoed back.
	rec = performRequest(r, http.MethodGet, "/api/v1/healthcheck", nil, func(req *http.Request) {
		req.Header.Set("X-Request-ID", "trace-123")
	})
	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}

func TestRoleGate(t *testing.T) {
	app, r := newTestApp(t)
	_, userToken := createTestUser(t, app, "user@example.com", models.RoleUser)
	_, adminToken := createTestUser(t, app, "admin@example.com", models.RoleAdmin)

	// No credentials at all: 401.
	rec := performRequest(r, http.MethodGet, "/api/v1/cohort", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated but wrong role: 403, not 401.
	rec = performRequest(r, http.MethodGet, "/api/v1/cohort", nil, withBearer(userToken))
	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].([]interface{})
	assert.Contains(t, errs[0], "not allowed")

	rec = performRequest(r, http.MethodGet, "/api/v1/cohort", nil, withBearer(adminToken))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorEnvelope(t *testing.T) {
	_, r := newTestApp(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "ghost@example.com", "password": "Password@123"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["errors"])
}

func TestUpdateAvatar(t *testing.T) {
	app, r := newTestApp(t)
	user, token := createTestUser(t, app, "dev@example.com", models.RoleUser)

	body, contentType := avatarForm(t, pngBytes(t, 900, 700))
	rec := performRequest(r, http.MethodPatch, "/api/v1/auth/avatar", body,
		withBearer(token), func(req *http.Request) { req.Header.Set("Content-Type", contentType) })
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	require.True(t, strings.HasPrefix(stored.AvatarURL, "/public/avatars/"))

	// The downscaled copy landed under the upload dir.
	name := strings.TrimPrefix(stored.AvatarURL, "/public/avatars/")
	saved := filepath.Join(app.cfg.UploadDir, "avatars", name)
	f, err := os.Open(saved)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 512)
	assert.LessOrEqual(t, img.Bounds().Dy(), 512)
}

func TestUpdateAvatarRejectsNonImage(t *testing.T) {
	app, r := newTestApp(t)
	_, token := createTestUser(t, app, "dev@example.com", models.RoleUser)

	body, contentType := avatarForm(t, []byte("definitely not an image"))
	rec := performRequest(r, http.MethodPatch, "/api/v1/auth/avatar", body,
		withBearer(token), func(req *http.Request) { req.Header.Set("Content-Type", contentType) })
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing file field.
	rec = performRequest(r, http.MethodPatch, "/api/v1/auth/avatar", nil, withBearer(token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 16 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func avatarForm(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// One in-memory database per test, shared across the pool connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	autoMigrate(db)

	cfg := &Config{
		Addr:                      ":0",
		AutoMigrate:               false,
		AccessTokenSecret:         "test-access-secret",
		RefreshTokenSecret:        "test-refresh-secret",
		AccessTokenTTL:            time.Hour,
		RefreshTokenTTL:           24 * time.Hour,
		TempTokenTTL:              20 * time.Minute,
		MailFrom:                  "no-reply@test.local",
		PublicBaseURL:             "http://localhost:8080",
		ForgotPasswordRedirectURL: "http://localhost:3000/reset-password",
		CORSOrigins:               []string{"*"},
		UploadDir:                 t.TempDir(),
	}
	app := newApp(db, cfg, newMailer(cfg)) // no SMTP host: mail is logged, not sent
	return app, app.setupRouter()
}

// performRequest drives the router the way the HTTP server would.
func performRequest(r http.Handler, method, path string, body io.Reader, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(name, value string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func urlf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// createTestUser inserts a verified user directly and returns it with a
// fresh access token.
func createTestUser(t *testing.T, app *App, email, role string) (*models.User, string) {
	t.Helper()
	hashed, err := hashPassword("Password@123")
	require.NoError(t, err)
	user := models.User{
		Email:           email,
		Username:        strings.Split(email, "@")[0],
		Password:        hashed,
		Role:            role,
		LoginType:       models.LoginTypeEmailPassword,
		IsEmailVerified: true,
	}
	require.NoError(t, app.db.Create(&user).Error)
	token, err := app.issueAccessToken(&user)
	require.NoError(t, err)
	return &user, token
}

package main

import (
	"net/http"
	"testing"
	"time"

	"teambuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, r := newTestApp(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Password@123", "username": "testuser"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "test@example.com", data["email"])
	assert.Equal(t, "test", data["username"]) // derived from the email local part
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "refreshToken")
	assert.Equal(t, false, data["isEmailVerified"])

	// Token pair is installed as cookies right away.
	cookies := rec.Result().Cookies()
	names := make(map[string]bool)
	for _, ck := range cookies {
		names[ck.Name] = true
	}
	assert.True(t, names["accessToken"])
	assert.True(t, names["refreshToken"])

	// The verification token is stored hashed, never in the clear.
	var user models.User
	require.NoError(t, app.db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.NotEmpty(t, user.EmailVerificationToken)
	assert.Len(t, user.EmailVerificationToken, 64) // sha256 hex
	require.NotNil(t, user.EmailVerificationExpiry)
	assert.True(t, user.EmailVerificationExpiry.After(time.Now()))
	assert.NotEqual(t, "Password@123", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, r := newTestApp(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Password@123"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var before models.User
	require.NoError(t, app.db.Where("email = ?", "test@example.com").First(&before).Error)

	rec = performRequest(r, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Other@Password9"}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The stored identity is untouched by the rejected attempt.
	var after models.User
	require.NoError(t, app.db.Where("email = ?", "test@example.com").First(&after).Error)
	assert.Equal(t, before.Password, after.Password)
	assert.Equal(t, before.EmailVerificationToken, after.EmailVerificationToken)
	assert.Equal(t, before.Username, after.Username)
}

func TestRegisterValidation(t *testing.T) {
	_, r := newTestApp(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, map[string]string{"email": "invalid-email", "password": "Password@123"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = performRequest(r, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, map[string]string{"email": "weak@example.com", "password": "abc"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "test@example.com", models.RoleUser)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Password@123"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["accessToken"])
	assert.NotEmpty(t, data["refreshToken"])
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))

	// Refresh token is persisted as the single active value.
	var stored models.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	assert.Equal(t, data["refreshToken"], stored.RefreshToken)
}

func TestLoginFailures(t *testing.T) {
	app, r := newTestApp(t)
	createTestUser(t, app, "test@example.com", models.RoleUser)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "wrongpassword"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "nonexistent@example.com", "password": "Password@123"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginRejectsSocialAccounts(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "social@example.com", models.RoleUser)
	require.NoError(t, app.db.Model(user).Update("login_type", models.LoginTypeGoogle).Error)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "social@example.com", "password": "Password@123"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "google")
}

func TestAuthGate(t *testing.T) {
	app, r := newTestApp(t)
	_, token := createTestUser(t, app, "test@example.com", models.RoleUser)

	// Bearer header.
	rec := performRequest(r, http.MethodGet, "/api/v1/auth/current-user", nil, withBearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "test@example.com", data["email"])

	// Cookie works too.
	rec = performRequest(r, http.MethodGet, "/api/v1/auth/current-user", nil, withCookie("accessToken", token))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Missing and malformed tokens are both 401.
	rec = performRequest(r, http.MethodGet, "/api/v1/auth/current-user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = performRequest(r, http.MethodGet, "/api/v1/auth/current-user", nil, withBearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGateRejectsDeletedUser(t *testing.T) {
	app, r := newTestApp(t)
	user, token := createTestUser(t, app, "ghost@example.com", models.RoleUser)
	require.NoError(t, app.db.Unscoped().Delete(user).Error)

	rec := performRequest(r, http.MethodGet, "/api/v1/auth/current-user", nil, withBearer(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid access token")
}

func TestRefreshRotation(t *testing.T) {
	app, r := newTestApp(t)
	createTestUser(t, app, "test@example.com", models.RoleUser)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Password@123"}))
	require.Equal(t, http.StatusOK, rec.Code)
	oldRefresh := decodeBody(t, rec)["data"].(map[string]interface{})["refreshToken"].(string)

	// First refresh succeeds and rotates the stored token.
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/refresh-token", nil, withCookie("refreshToken", oldRefresh))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	newRefresh := data["refreshToken"].(string)
	assert.NotEqual(t, oldRefresh, newRefresh)
	assert.NotEmpty(t, data["accessToken"])

	// Replaying the rotated-out token fails.
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/refresh-token", nil, withCookie("refreshToken", oldRefresh))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Refresh token is expired or used")

	// The new one still works.
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/refresh-token", nil, withCookie("refreshToken", newRefresh))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshWithoutToken(t *testing.T) {
	_, r := newTestApp(t)
	rec := performRequest(r, http.MethodPost, "/api/v1/auth/refresh-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	app, r := newTestApp(t)
	user, token := createTestUser(t, app, "test@example.com", models.RoleUser)
	require.NoError(t, app.db.Model(user).Update("refresh_token", "some-refresh-token").Error)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/logout", nil, withBearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	assert.Empty(t, stored.RefreshToken)
}

func TestVerifyEmail(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "test@example.com", models.RoleUser)

	unhashed, hashed, expiry, err := generateTemporaryToken(20 * time.Minute)
	require.NoError(t, err)
	require.NoError(t, app.db.Model(user).Updates(map[string]interface{}{
		"is_email_verified":         false,
		"email_verification_token":  hashed,
		"email_verification_expiry": expiry,
	}).Error)

	rec := performRequest(r, http.MethodGet, "/api/v1/auth/verify-email/"+unhashed, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email Successfully Verified")

	// Token is consumed on success.
	var stored models.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	assert.True(t, stored.IsEmailVerified)
	assert.Empty(t, stored.EmailVerificationToken)
	assert.Nil(t, stored.EmailVerificationExpiry)

	// Replaying the consumed token lands on the failure page.
	rec = performRequest(r, http.MethodGet, "/api/v1/auth/verify-email/"+unhashed, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "verification failed")
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "test@example.com", models.RoleUser)

	unhashed, hashed, _, err := generateTemporaryToken(20 * time.Minute)
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	require.NoError(t, app.db.Model(user).Updates(map[string]interface{}{
		"is_email_verified":         false,
		"email_verification_token":  hashed,
		"email_verification_expiry": past,
	}).Error)

	rec := performRequest(r, http.MethodGet, "/api/v1/auth/verify-email/"+unhashed, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "verification failed")

	var stored models.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsEmailVerified)
}

func TestForgotPassword(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "test@example.com", models.RoleUser)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/forgot-password",
		jsonBody(t, map[string]string{"email": "test@example.com"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	assert.NotEmpty(t, stored.ForgotPasswordToken)
	require.NotNil(t, stored.ForgotPasswordExpiry)
	assert.True(t, stored.ForgotPasswordExpiry.After(time.Now()))

	rec = performRequest(r, http.MethodPost, "/api/v1/auth/forgot-password",
		jsonBody(t, map[string]string{"email": "unknown@example.com"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetPassword(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "test@example.com", models.RoleUser)

	unhashed, hashed, expiry, err := generateTemporaryToken(20 * time.Minute)
	require.NoError(t, err)
	require.NoError(t, app.db.Model(user).Updates(map[string]interface{}{
		"forgot_password_token":  hashed,
		"forgot_password_expiry": expiry,
	}).Error)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/reset-password/"+unhashed,
		jsonBody(t, map[string]string{"newPassword": "Changed@Pass12"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// New password works, old one doesn't.
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Changed@Pass12"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Password@123"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The reset token is single-use.
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/reset-password/"+unhashed,
		jsonBody(t, map[string]string{"newPassword": "Another@Pass34"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	app, r := newTestApp(t)
	_, token := createTestUser(t, app, "test@example.com", models.RoleUser)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/change-password",
		jsonBody(t, map[string]string{"oldPassword": "nope", "newPassword": "Changed@Pass12"}), withBearer(token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodPost, "/api/v1/auth/change-password",
		jsonBody(t, map[string]string{"oldPassword": "Password@123", "newPassword": "Changed@Pass12"}), withBearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"email": "test@example.com", "password": "Changed@Pass12"}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCookieSetter(t *testing.T) {
	app, r := newTestApp(t)
	user, _ := createTestUser(t, app, "test@example.com", models.RoleUser)

	access, err := app.issueAccessToken(user)
	require.NoError(t, err)
	refresh, err := app.issueRefreshToken(user)
	require.NoError(t, err)

	rec := performRequest(r, http.MethodPost, "/api/v1/auth/cookie-setter",
		jsonBody(t, map[string]string{"accessToken": access, "refreshToken": refresh}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))

	// Forged tokens are refused.
	rec = performRequest(r, http.MethodPost, "/api/v1/auth/cookie-setter",
		jsonBody(t, map[string]string{"accessToken": "bogus", "refreshToken": refresh}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

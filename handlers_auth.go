package main

import (
	"net/http"
	"strings"
	"time"

	"teambuilder/models"

	"github.com/gin-gonic/gin"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// minPasswordEntropy roughly requires a mixed-case password of 8+
// characters with a digit or symbol.
const minPasswordEntropy = 50

func (a *App) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("accessToken", accessToken, int(a.cfg.AccessTokenTTL.Seconds()), "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, int(a.cfg.RefreshTokenTTL.Seconds()), "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

func (a *App) issueTokenPair(user *models.User) (accessToken, refreshToken string, err error) {
	if accessToken, err = a.issueAccessToken(user); err != nil {
		return "", "", err
	}
	if refreshToken, err = a.issueRefreshToken(user); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (a *App) registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}
	if err := passwordvalidator.Validate(req.Password, minPasswordEntropy); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		respondError(c, newAPIError(http.StatusConflict, "user with username or email already exists"))
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	unhashedToken, hashedToken, tokenExpiry, err := generateTemporaryToken(a.cfg.TempTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	// Single write: the verification token hash travels with the insert.
	user := models.User{
		Email:                   req.Email,
		Username:                strings.Split(req.Email, "@")[0],
		Password:                hashed,
		Role:                    models.RoleUser,
		LoginType:               models.LoginTypeEmailPassword,
		IsEmailVerified:         false,
		EmailVerificationToken:  hashedToken,
		EmailVerificationExpiry: &tokenExpiry,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, newAPIError(http.StatusConflict, "user with username or email already exists"))
			return
		}
		respondError(c, err)
		return
	}

	accessToken, refreshToken, err := a.issueTokenPair(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	link := a.cfg.PublicBaseURL + "/api/v1/auth/verify-email/" + unhashedToken
	dispatchMail("verification", func() error {
		return a.mail.sendVerificationMail(user.Email, user.Username, link)
	})

	a.setAuthCookies(c, accessToken, refreshToken)
	respondJSON(c, http.StatusCreated, "User registered successfully; verification email sent", user)
}

func (a *App) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "User with provided username and email does not exist"))
		return
	}
	if user.LoginType != models.LoginTypeEmailPassword {
		provider := strings.ToLower(user.LoginType)
		respondError(c, newAPIError(http.StatusBadRequest,
			"You have previously registered using "+provider+". Please use the "+provider+" login option to access your account."))
		return
	}
	if !checkPassword(req.Password, user.Password) {
		respondError(c, newAPIError(http.StatusBadRequest, "invalid credentials"))
		return
	}

	accessToken, refreshToken, err := a.issueTokenPair(&user)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.db.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
		respondError(c, err)
		return
	}

	a.setAuthCookies(c, accessToken, refreshToken)
	respondJSON(c, http.StatusOK, "User logged in successfully", gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (a *App) logoutHandler(c *gin.Context) {
	user := currentUser(c)
	if err := a.db.Model(&models.User{}).Where("id = ?", user.ID).Update("refresh_token", "").Error; err != nil {
		respondError(c, err)
		return
	}
	clearAuthCookies(c)
	respondJSON(c, http.StatusOK, "User logged out", gin.H{})
}

func (a *App) verifyEmailHandler(c *gin.Context) {
	verificationToken := c.Param("verificationToken")
	if verificationToken == "" {
		respondError(c, newAPIError(http.StatusBadRequest, "Email verification token is missing"))
		return
	}
	hashedToken := hashToken(verificationToken)

	var user models.User
	err := a.db.Where("email_verification_token = ? AND email_verification_expiry > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(verifyEmailFailurePage))
		return
	}

	updates := map[string]interface{}{
		"is_email_verified":         true,
		"email_verification_token":  "",
		"email_verification_expiry": nil,
	}
	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(verifyEmailSuccessPage))
}

func (a *App) refreshTokenHandler(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&body)
		incoming = body.RefreshToken
	}
	if incoming == "" {
		respondError(c, newAPIError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	claims, err := a.verifyRefreshToken(incoming)
	if err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}
	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, "Invalid refresh token"))
		return
	}

	accessToken, newRefreshToken, err := a.issueTokenPair(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	// Compare-and-swap rotation: the update only lands if the stored token
	// still equals the presented one, so a replayed (already rotated-out)
	// token matches zero rows.
	res := a.db.Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", user.ID, incoming).
		Update("refresh_token", newRefreshToken)
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, newAPIError(http.StatusUnauthorized, "Refresh token is expired or used"))
		return
	}

	a.setAuthCookies(c, accessToken, newRefreshToken)
	respondJSON(c, http.StatusOK, "Access token refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": newRefreshToken,
	})
}

func (a *App) forgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(c, newAPIError(http.StatusNotFound, "User does not exists"))
		return
	}

	unhashedToken, hashedToken, tokenExpiry, err := generateTemporaryToken(a.cfg.TempTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	updates := map[string]interface{}{
		"forgot_password_token":  hashedToken,
		"forgot_password_expiry": tokenExpiry,
	}
	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}

	link := a.cfg.ForgotPasswordRedirectURL + "/" + unhashedToken
	dispatchMail("password reset", func() error {
		return a.mail.sendPasswordResetMail(user.Email, user.Username, link)
	})

	respondJSON(c, http.StatusOK, "Password reset mail has been sent on your mail id", gin.H{})
}

func (a *App) resetPasswordHandler(c *gin.Context) {
	resetToken := c.Param("resetToken")
	var req struct {
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}
	if err := passwordvalidator.Validate(req.NewPassword, minPasswordEntropy); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}

	hashedToken := hashToken(resetToken)
	var user models.User
	err := a.db.Where("forgot_password_token = ? AND forgot_password_expiry > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, "Token is invalid or expired"))
		return
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	updates := map[string]interface{}{
		"password":               hashed,
		"forgot_password_token":  "",
		"forgot_password_expiry": nil,
	}
	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Password reset successfully", gin.H{})
}

func (a *App) changePasswordHandler(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}
	if err := passwordvalidator.Validate(req.NewPassword, minPasswordEntropy); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, err.Error()))
		return
	}

	// Reload with the password column; the context user is loaded without it.
	var user models.User
	if err := a.db.First(&user, currentUser(c).ID).Error; err != nil {
		respondError(c, err)
		return
	}
	if !checkPassword(req.OldPassword, user.Password) {
		respondError(c, newAPIError(http.StatusBadRequest, "Invalid old password"))
		return
	}
	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.db.Model(&user).Update("password", hashed).Error; err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Password changed successfully", gin.H{})
}

func (a *App) currentUserHandler(c *gin.Context) {
	respondJSON(c, http.StatusOK, "Current user fetched successfully", currentUser(c))
}

// cookieSetterHandler is the receiving end of the social-login redirect:
// the frontend posts back the tokens it got in the redirect URL and gets
// them installed as HTTP-only cookies.
func (a *App) cookieSetterHandler(c *gin.Context) {
	var req struct {
		AccessToken  string `json:"accessToken" binding:"required"`
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, newAPIError(http.StatusBadRequest, err.Error()))
		return
	}
	if _, err := a.verifyAccessToken(req.AccessToken); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, "accessToken is invalid"))
		return
	}
	if _, err := a.verifyRefreshToken(req.RefreshToken); err != nil {
		respondError(c, newAPIError(http.StatusUnauthorized, "refreshToken is invalid"))
		return
	}
	a.setAuthCookies(c, req.AccessToken, req.RefreshToken)
	respondJSON(c, http.StatusOK, "Cookies set successfully", gin.H{
		"accessToken":  req.AccessToken,
		"refreshToken": req.RefreshToken,
	})
}

package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the app reads from the environment. Values come
// from env vars first; an optional .env file fills in the rest for local
// development.
type Config struct {
	Addr string
	DSN  string

	AutoMigrate bool

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	TempTokenTTL       time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// PublicBaseURL is used to build the verify-email link mailed to users.
	PublicBaseURL string
	// ForgotPasswordRedirectURL is the frontend page that collects the new
	// password; the reset token is appended to it.
	ForgotPasswordRedirectURL string

	CORSOrigins []string
	UploadDir   string
}

func loadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_auto_migrate", true)
	v.SetDefault("access_token_secret", "dev-insecure-access-secret")
	v.SetDefault("refresh_token_secret", "dev-insecure-refresh-secret")
	v.SetDefault("access_token_ttl", "24h")
	v.SetDefault("refresh_token_ttl", "240h")
	v.SetDefault("temp_token_ttl", "20m")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("mail_from", "no-reply@teambuilder.local")
	v.SetDefault("public_base_url", "http://localhost:8080")
	v.SetDefault("forgot_password_redirect_url", "http://localhost:3000/reset-password")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("upload_dir", "uploads")

	v.AutomaticEnv()

	// Optional .env-style file, same keys as the env vars.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		Addr:                      v.GetString("addr"),
		DSN:                       v.GetString("db_dsn"),
		AutoMigrate:               v.GetBool("db_auto_migrate"),
		AccessTokenSecret:         v.GetString("access_token_secret"),
		RefreshTokenSecret:        v.GetString("refresh_token_secret"),
		AccessTokenTTL:            v.GetDuration("access_token_ttl"),
		RefreshTokenTTL:           v.GetDuration("refresh_token_ttl"),
		TempTokenTTL:              v.GetDuration("temp_token_ttl"),
		SMTPHost:                  v.GetString("smtp_host"),
		SMTPPort:                  v.GetInt("smtp_port"),
		SMTPUser:                  v.GetString("smtp_username"),
		SMTPPass:                  v.GetString("smtp_password"),
		MailFrom:                  v.GetString("mail_from"),
		PublicBaseURL:             strings.TrimRight(v.GetString("public_base_url"), "/"),
		ForgotPasswordRedirectURL: strings.TrimRight(v.GetString("forgot_password_redirect_url"), "/"),
		CORSOrigins:               strings.Split(v.GetString("cors_origins"), ","),
		UploadDir:                 v.GetString("upload_dir"),
	}
	return cfg, nil
}

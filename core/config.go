package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env                       string // DEV (local; default), TEST, QA, PROD
	Debug                     bool
	TestMode                  bool
	AppName                   string
	Build                     string
	SecretKey                 string
	DefaultFromEmail          mail.Address
	PasswordResetTimeoutDelta time.Duration
	FrontendBaseURL           string

	// school
	LowAttendanceThreshold float64 // percent
	ReportExportDir        string

	// services
	SendgridApiKey string
	RollbarToken   string
	ServerHost     string
}

// NewConfig loads the configuration from defaults, `config/.env.<env>` (if it exists) and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "k3t!(8d_c6lq0wv@6s^+fs)u9#z7y1$qzbm&o4x2h%e-0rj5@n")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)
	v.SetDefault("frontendBaseURL", "http://localhost:8080")
	v.SetDefault("lowAttendanceThreshold", 75.0)
	v.SetDefault("reportExportDir", "reports")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	fromEmail := mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")}
	if addr, err := mail.ParseAddress(v.GetString("defaultFromEmail")); err == nil {
		fromEmail = *addr
		if fromEmail.Name == "" {
			fromEmail.Name = v.GetString("appName")
		}
	}

	return &Config{
		Env:                       env,
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("testMode"),
		AppName:                   v.GetString("appName"),
		Build:                     v.GetString("build"),
		SecretKey:                 v.GetString("secretKey"),
		DefaultFromEmail:          fromEmail,
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		FrontendBaseURL:           v.GetString("frontendBaseURL"),
		LowAttendanceThreshold:    v.GetFloat64("lowAttendanceThreshold"),
		ReportExportDir:           v.GetString("reportExportDir"),
		SendgridApiKey:            v.GetString("sendgridApiKey"),
		RollbarToken:              v.GetString("rollbarToken"),
		ServerHost:                v.GetString("serverHost"),
	}
}

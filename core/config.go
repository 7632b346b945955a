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

type (
	// APIConfig holds the single course-API endpoint configuration.
	// The backend base URL is one external value; it is never hardcoded per screen.
	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	// UploadConfig holds the media-upload provider configuration.
	// The preset and cloud name are deployment constants, not user secrets.
	UploadConfig struct {
		BaseURL   string
		CloudName string
		Preset    string
		Timeout   time.Duration
	}

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		API    APIConfig
		Upload UploadConfig
	}
)

var Conf *Config

func init() {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Sabaq")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("apiBaseUrl", "http://127.0.0.1:5000")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("uploadBaseUrl", "https://api.cloudinary.com/v1_1")
	conf.SetDefault("uploadCloudName", "")
	conf.SetDefault("uploadPreset", "")
	conf.SetDefault("uploadTimeout", 10*time.Minute)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	Conf = &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL: conf.GetString("apiBaseUrl"),
			Timeout: conf.GetDuration("apiTimeout"),
		},
		Upload: UploadConfig{
			BaseURL:   conf.GetString("uploadBaseUrl"),
			CloudName: conf.GetString("uploadCloudName"),
			Preset:    conf.GetString("uploadPreset"),
			Timeout:   conf.GetDuration("uploadTimeout"),
		},
	}
}

package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	BaseURL     string
	LLMProvider string // "gemini" (default) or "openrouter"
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":3000"
		}
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		appConfig = &AppConfig{
			Name:        os.Getenv("APP_NAME"),
			Env:         env,
			Port:        port,
			BaseURL:     os.Getenv("APP_URL"),
			LLMProvider: provider,
		}
	})
	return appConfig
}

package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Stripe   *Stripe
	Gemini   *Gemini
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Stripe struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	APIBase   string `env:"STRIPE_API_BASE" envDefault:"https://api.stripe.com"`
	ClientURL string `env:"CLIENT_URL"`
}

type Gemini struct {
	APIKey      string `env:"GEMINI_API_KEY"`
	APIBase     string `env:"GEMINI_API_BASE" envDefault:"https://generativelanguage.googleapis.com"`
	Model       string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-lite"`
	MemoryLimit int    `env:"CHAT_MEMORY_LIMIT" envDefault:"5"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var stripe Stripe
	var gemini Gemini
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&stripe)
	if err != nil {
		return nil, fmt.Errorf("error parsing stripe config: %w", err)
	}
	err = env.Parse(&gemini)
	if err != nil {
		return nil, fmt.Errorf("error parsing gemini config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Stripe:   &stripe,
		Gemini:   &gemini,
		App:      &app,
	}

	return &config, nil
}

package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderFake   = "fake"
)

type Config struct {
	Port    string        `yaml:"port" validate:"required,startswith=:"`
	Env     string        `yaml:"env" validate:"required"`
	LLM     LLMConfig     `yaml:"llm"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	// CORSOrigins empty means any origin.
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`
}

type LLMConfig struct {
	Provider      string        `yaml:"provider" validate:"oneof=gemini fake"`
	APIKey        string        `yaml:"-" validate:"required_if=Provider gemini"`
	AnalysisModel string        `yaml:"analysis_model" validate:"required"`
	BridgeModel   string        `yaml:"bridge_model" validate:"required"`
	Language      string        `yaml:"language" validate:"required"`
	RPS           float64       `yaml:"rps" validate:"gte=0"`
	Burst         int           `yaml:"burst" validate:"gte=0"`
	Timeout       time.Duration `yaml:"timeout" validate:"gte=0"`
}

type SessionConfig struct {
	Max int           `yaml:"max" validate:"gte=0"`
	TTL time.Duration `yaml:"ttl" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func defaults() Config {
	return Config{
		Port: ":8081",
		Env:  "local",
		LLM: LLMConfig{
			AnalysisModel: "gemini-3-flash-preview",
			BridgeModel:   "gemini-3-pro-preview",
			Language:      "Arabic",
			Timeout:       2 * time.Minute,
		},
		Session: SessionConfig{
			Max: 1024,
			TTL: 2 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", "", "server port")
	flag.Parse()

	return build(*port)
}

// build layers defaults, the optional CONFIG_FILE, environment and the
// -port flag, in that order.
func build(portFlag string) (*Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(portFlag) != "" {
		cfg.Port = portFlag
	}
	cfg.Port = normalizePort(cfg.Port)
	cfg.LLM.Provider = resolveProvider(cfg)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
		if isLocal(cfg.Env) {
			cfg.Log.Format = "text"
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), cfg.Port)
	cfg.Env = firstNonEmpty(strings.TrimSpace(os.Getenv("APP_ENV")), cfg.Env)

	cfg.LLM.APIKey = firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_API_KEY")), strings.TrimSpace(os.Getenv("API_KEY")))
	cfg.LLM.Provider = firstNonEmpty(strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))), cfg.LLM.Provider)
	cfg.LLM.AnalysisModel = firstNonEmpty(strings.TrimSpace(os.Getenv("ANALYSIS_MODEL")), cfg.LLM.AnalysisModel)
	cfg.LLM.BridgeModel = firstNonEmpty(strings.TrimSpace(os.Getenv("BRIDGE_MODEL")), cfg.LLM.BridgeModel)
	cfg.LLM.Language = firstNonEmpty(strings.TrimSpace(os.Getenv("OUTPUT_LANGUAGE")), cfg.LLM.Language)

	cfg.Log.Level = firstNonEmpty(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))), cfg.Log.Level)
	cfg.Log.Format = firstNonEmpty(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))), cfg.Log.Format)

	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}

	var err error
	if cfg.LLM.RPS, err = envFloat("LLM_RPS", cfg.LLM.RPS); err != nil {
		return err
	}
	if cfg.LLM.Burst, err = envInt("LLM_BURST", cfg.LLM.Burst); err != nil {
		return err
	}
	if cfg.LLM.Timeout, err = envDuration("LLM_TIMEOUT", cfg.LLM.Timeout); err != nil {
		return err
	}
	if cfg.Session.Max, err = envInt("SESSION_MAX", cfg.Session.Max); err != nil {
		return err
	}
	if cfg.Session.TTL, err = envDuration("SESSION_TTL", cfg.Session.TTL); err != nil {
		return err
	}
	return nil
}

// resolveProvider falls back to the fake client locally when no key is set.
func resolveProvider(cfg Config) string {
	if cfg.LLM.Provider != "" {
		return cfg.LLM.Provider
	}
	if cfg.LLM.APIKey == "" && isLocal(cfg.Env) {
		return ProviderFake
	}
	return ProviderGemini
}

func (c *Config) IsLocal() bool {
	return isLocal(c.Env)
}

func isLocal(env string) bool {
	return strings.EqualFold(strings.TrimSpace(env), "local")
}

func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port != "" && !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

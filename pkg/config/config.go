package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// LLM backend (OpenAI-compatible). A missing key is not fatal at
	// startup: the first call that needs it reports a server error.
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMAppTitle string
	LLMReferer  string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	MaxUploadMB int

	// Seniority archetype thresholds, in years of experience.
	// <SeniorYears => Individual Contributor, <ExecYears => Technical
	// Leader, otherwise Executive. Kept out of prompt text so they can be
	// tuned without touching request construction.
	ArchetypeSeniorYears int
	ArchetypeExecYears   int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		LLMAPIKey:            getEnv("OPENAI_API_KEY", ""),
		LLMBaseURL:           getEnv("OPENAI_BASE_URL", ""),
		LLMModel:             getEnv("OPENAI_MODEL", "openai/gpt-4o"),
		LLMAppTitle:          getEnv("LLM_APP_TITLE", "me-inc-job-agent"),
		LLMReferer:           getEnv("LLM_REFERER", ""),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:            getEnv("JWT_ISSUER", "job-agent"),
		JWTTTLMinutes:        getEnvInt("JWT_TTL_MINUTES", 60),
		MaxUploadMB:          getEnvInt("MAX_UPLOAD_MB", 15),
		ArchetypeSeniorYears: getEnvInt("ARCHETYPE_SENIOR_YEARS", 5),
		ArchetypeExecYears:   getEnvInt("ARCHETYPE_EXEC_YEARS", 12),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

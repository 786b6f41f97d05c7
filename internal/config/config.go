package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	DataFile        string   // Path to the JSON document holding all day records
	UploadDir       string   // Directory uploaded photos are written to
	StaticDir       string   // Directory the public/admin pages are served from
	AllowedOrigins  []string // CORS: from ALLOWED_ORIGINS, comma-separated
	MaxPhotosPerDay int      // Cap on file parts accepted by one save call
	MaxUploadMB     int64    // Multipart memory limit in megabytes
	ChallengeStart  time.Time
	TotalDays       int
	Environment     string // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	start, err := time.ParseInLocation("2006-01-02", getEnv("CHALLENGE_START", "2025-04-29"), time.Local)
	if err != nil {
		start = time.Date(2025, time.April, 29, 0, 0, 0, 0, time.Local)
	}

	return &Config{
		Port:            getEnv("PORT", "3000"),
		DataFile:        getEnv("DATA_FILE", "data.json"),
		UploadDir:       getEnv("UPLOAD_DIR", "images"),
		StaticDir:       getEnv("STATIC_DIR", "."),
		AllowedOrigins:  allowedOrigins,
		MaxPhotosPerDay: getEnvInt("MAX_PHOTOS_PER_SAVE", 10),
		MaxUploadMB:     int64(getEnvInt("MAX_UPLOAD_MB", 32)),
		ChallengeStart:  start,
		TotalDays:       getEnvInt("TOTAL_DAYS", 75),
		Environment:     env,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

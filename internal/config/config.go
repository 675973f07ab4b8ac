package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Grading data locations
	KeyCacheDir    string
	SubmissionsDir string
	Course         string

	// Confidence policy (see grading engine defaults)
	ExtractionThreshold float64
	ComparisonThreshold float64
	NumericTolerance    float64

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	// External gradebook service; sync stays disabled while URL is empty.
	GradebookURL   string
	GradebookToken string

	CORSOrigins []string
}

// FromEnv loads configuration from the environment, honoring a local
// .env file when present.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		KeyCacheDir:    envOr("KEY_CACHE_DIR", "grading_data/keys"),
		SubmissionsDir: envOr("SUBMISSIONS_DIR", "grading_data/submissions"),
		Course:         envOr("COURSE", "CSCI-C241"),

		ExtractionThreshold: envFloat("EXTRACTION_THRESHOLD", 0.5),
		ComparisonThreshold: envFloat("COMPARISON_THRESHOLD", 0.7),
		NumericTolerance:    envFloat("NUMERIC_TOLERANCE", 1e-6),

		AuthSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:  envOr("ADMIN_USER", "admin"),
		// bcrypt of "admin"; replace in any real deployment
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		GradebookURL:   envOr("GRADEBOOK_URL", ""),
		GradebookToken: envOr("GRADEBOOK_TOKEN", ""),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

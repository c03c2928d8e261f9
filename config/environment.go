package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Environment struct {
	Port           string
	DBDriver       string
	DBURL          string
	AllowedOrigins []string
	JWTSecretKey   string
	LogMode        string

	TransformAPIKey  string
	TransformBaseURL string
	TransformModel   string
}

// Load reads the environment, after loading .env when running outside a
// hosted environment. A missing .env is reported but not fatal.
func Load() (Environment, error) {
	var dotenvErr error
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		dotenvErr = godotenv.Load()
	}

	v := viper.New()
	v.SetDefault("PORT", "8001")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_URL", "perplexitree.db")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("PERPLEXITY_API_KEY", "")
	v.SetDefault("TRANSFORM_BASE_URL", "https://api.perplexity.ai")
	v.SetDefault("TRANSFORM_MODEL", "sonar-pro")
	v.AutomaticEnv()

	env := Environment{
		Port:             v.GetString("PORT"),
		DBDriver:         strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBURL:            v.GetString("DB_URL"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		JWTSecretKey:     v.GetString("JWT_SECRET_KEY"),
		LogMode:          v.GetString("LOG_MODE"),
		TransformAPIKey:  v.GetString("PERPLEXITY_API_KEY"),
		TransformBaseURL: strings.TrimRight(v.GetString("TRANSFORM_BASE_URL"), "/"),
		TransformModel:   v.GetString("TRANSFORM_MODEL"),
	}
	return env, dotenvErr
}

func (e Environment) Addr() string {
	return "0.0.0.0:" + e.Port
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

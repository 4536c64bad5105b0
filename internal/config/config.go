package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"catalog-recon/internal/catalog/model"
)

type Config struct {
	Host           string
	Port           int
	AllowOrigins   []string
	LogLevel       string
	MaxUploadMB    int
	LogFile        string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool // take the client address from X-Forwarded-For / X-Real-IP

	NearThreshold    float64
	VariantThreshold float64
	FuzzyThreshold   float64
	FuzzyIDWeight    float64
	FuzzyNameWeight  float64
	ImageSuffix      string
}

// Load reads the environment; a .env in the working directory is applied
// first when present and never overrides variables already set.
func Load() Config {
	_ = godotenv.Load()

	d := model.DefaultOptions()
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           getint("PORT", 8082),
		AllowOrigins:   strings.Split(getenv("ALLOW_ORIGINS", "*"), ","),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    getint("MAX_UPLOAD_MB", 64),
		LogFile:        getenv("LOG_FILE", "logs/catalog-recon.log"),
		RateLimitRPS:   getfloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getint("RATE_LIMIT_BURST", 10),
		TrustProxy:     getbool("TRUST_PROXY", false),

		NearThreshold:    getfloat("NEAR_DUP_THRESHOLD", d.NearDuplicateThreshold),
		VariantThreshold: getfloat("VARIANT_THRESHOLD", d.VariantThreshold),
		FuzzyThreshold:   getfloat("FUZZY_THRESHOLD", d.FuzzyThreshold),
		FuzzyIDWeight:    getfloat("FUZZY_ID_WEIGHT", d.IDWeight),
		FuzzyNameWeight:  getfloat("FUZZY_NAME_WEIGHT", d.NameWeight),
		ImageSuffix:      getenv("IMAGE_SUFFIX", d.ImageSuffix),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// EngineOptions is the matcher/classifier configuration derived from env.
func (c Config) EngineOptions() model.Options {
	return model.Options{
		NearDuplicateThreshold: c.NearThreshold,
		VariantThreshold:       c.VariantThreshold,
		FuzzyThreshold:         c.FuzzyThreshold,
		IDWeight:               c.FuzzyIDWeight,
		NameWeight:             c.FuzzyNameWeight,
		ImageSuffix:            c.ImageSuffix,
	}.WithDefaults()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return v
}

func getbool(k string, def bool) bool {
	v, err := strconv.ParseBool(getenv(k, ""))
	if err != nil {
		return def
	}
	return v
}

func getfloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(getenv(k, ""), 64)
	if err != nil {
		return def
	}
	return v
}

package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kharcha-app/receipt-engine/constants"
)

// Config holds all application configuration
type Config struct {
	Upload     UploadConfig
	Preprocess PreprocessConfig
	OCR        OCRConfig
}

// UploadConfig holds the input validation policy for receipt images.
type UploadConfig struct {
	AllowedExtensions string // comma-separated, e.g. "jpg,jpeg,png"
	MaxUploadSize     string // human-readable, e.g. "5MB"
}

// PreprocessConfig holds the pixel pipeline configuration.
type PreprocessConfig struct {
	Enabled   bool
	MaxWidth  int
	MaxHeight int
}

// OCRConfig holds provider-related configuration.
type OCRConfig struct {
	Providers []string // provider names in failover order

	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
	TSVConfidence bool

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Upload: UploadConfig{
			AllowedExtensions: getEnv("RECEIPT_ALLOWED_EXTENSIONS", "jpg,jpeg,png,webp,bmp"),
			MaxUploadSize:     getEnv("RECEIPT_MAX_UPLOAD_SIZE", "5MB"),
		},
		Preprocess: PreprocessConfig{
			Enabled:   getEnvAsBool("PREPROCESS_ENABLED", true),
			MaxWidth:  getEnvAsInt("PREPROCESS_MAX_WIDTH", 2000),
			MaxHeight: getEnvAsInt("PREPROCESS_MAX_HEIGHT", 2000),
		},
		OCR: OCRConfig{
			Providers:     splitCSV(getEnv("OCR_PROVIDERS", "tesseract,gosseract,gemini")),
			Tesseract:     getEnv("TESSERACT_PATH", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			TSVConfidence: getEnvAsBool("OCR_TSV_CONFIDENCE", false),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			GeminiTimeout: getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if _, err := constants.ParseByteSize(c.Upload.MaxUploadSize); err != nil {
		return NewAppError(CodeConfigError, "RECEIPT_MAX_UPLOAD_SIZE is not a valid size", err)
	}
	if len(constants.ParseExtensions(c.Upload.AllowedExtensions)) == 0 {
		return NewAppError(CodeConfigError, "RECEIPT_ALLOWED_EXTENSIONS must not be empty", ErrInvalidInput)
	}
	if c.Preprocess.MaxWidth <= 0 || c.Preprocess.MaxHeight <= 0 {
		return NewAppError(CodeConfigError, "preprocess max dimensions must be positive", ErrInvalidInput)
	}
	if len(c.OCR.Providers) == 0 {
		return NewAppError(CodeConfigError, "OCR_PROVIDERS must name at least one provider", ErrInvalidInput)
	}
	return nil
}

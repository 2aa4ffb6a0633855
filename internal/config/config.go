package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr      string
	LogLevel        string
	LogFile         string
	LogFormat       string
	SheetBackend    string
	WorksheetName   string
	SpreadsheetURL  string
	XLSXPath        string
	DBPath          string
	PhotoBackend    string
	DriveFolderID   string
	GCSBucket       string
	S3Bucket        string
	PhotoPath       string
	PublicBaseURL   string
	StagingDir      string
	RateLimitRPS    float64
	RateLimitBurst  int
	CredentialsJSON string
	CredentialsFile string
}

func Load() *Config {
	port := getEnv("PORT", "5000")
	return &Config{
		ListenAddr:      ":" + port,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		SheetBackend:    getEnv("SHEET_BACKEND", "google"),
		WorksheetName:   getEnv("WORKSHEET_NAME", "Snake"),
		SpreadsheetURL:  getEnv("SPREADSHEET_URL", ""),
		XLSXPath:        getEnv("XLSX_PATH", "snakebite.xlsx"),
		DBPath:          getEnv("DB_PATH", "snakebite.db"),
		PhotoBackend:    getEnv("PHOTO_BACKEND", "drive"),
		DriveFolderID:   getEnv("DRIVE_FOLDER_ID", ""),
		GCSBucket:       getEnv("GCS_BUCKET", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		PhotoPath:       getEnv("PHOTO_LOCAL_PATH", "photos"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		StagingDir:      getEnv("STAGING_DIR", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
		CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultVal
}

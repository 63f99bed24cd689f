package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	// Confirmation-code issuance parameters. Injected into the generator
	// instead of living as process-wide state.
	Confirmation struct {
		Alphabet string `yaml:"alphabet"`
		Length   int    `yaml:"length"`
		Sentinel string `yaml:"sentinel"`
	} `yaml:"confirmation"`

	// Import holds settings for the offline CSV loader.
	Import struct {
		Dir string `yaml:"dir"`
	} `yaml:"import"`

	FirstAdminUsername string `yaml:"first_admin_username"`
	FirstAdminEmail    string `yaml:"first_admin_email"`
}

var AppConfig *Config

const (
	defaultConfirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	defaultConfirmationLength   = 16
	// The sentinel marks a consumed code. It uses a character outside the
	// alphabet so a generated code can never equal it.
	defaultConfirmationSentinel = "----------------"
)

// LoadConfig populates AppConfig from config.yaml, or entirely from
// environment variables when DATABASE_URL is set (test/CI mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@yamdb.test"

	cfg.Import.Dir = "static/data"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Confirmation.Alphabet == "" {
		cfg.Confirmation.Alphabet = defaultConfirmationAlphabet
	}
	if cfg.Confirmation.Length == 0 {
		cfg.Confirmation.Length = defaultConfirmationLength
	}
	if cfg.Confirmation.Sentinel == "" {
		cfg.Confirmation.Sentinel = defaultConfirmationSentinel
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	SessionTTL string `yaml:"session_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type LockoutConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	Duration    string `yaml:"duration"`
}

type TwilioConfig struct {
	AccountSID       string `yaml:"account_sid"`
	AuthToken        string `yaml:"auth_token"`
	VerifyServiceSID string `yaml:"verify_service_sid"`
}

type PhoneConfig struct {
	CountryCode      string `yaml:"country_code"`
	AllowSuffixMatch bool   `yaml:"allow_suffix_match"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Lockout  LockoutConfig  `yaml:"lockout"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Phone    PhoneConfig    `yaml:"phone"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	SessionTTL       time.Duration
	OTP_TTL          time.Duration
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	LockMaxAttempts  int
	LockDuration     time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioVerifySID  string
	CountryCode      string
	AllowSuffixMatch bool
	CasbinModelPath  string
	SweepInterval    time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads config/config.yml when present, otherwise falls back to
// environment variables (a .env file is picked up best-effort).
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile, err := loadConfigFile("config/config.yml")
	if err != nil {
		return loadFromEnv()
	}

	sessTTL, err := time.ParseDuration(defStr(configFile.JWT.SessionTTL, "3h"))
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(defStr(configFile.OTP.TTL, "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(defStr(configFile.OTP.ResendWindow, "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	lockDur, err := time.ParseDuration(defStr(configFile.Lockout.Duration, "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid lockout duration: %w", err)
	}

	cfg := &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              configFile.Database.DSN,
		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    configFile.Redis.Password,
		RedisDB:          configFile.Redis.DB,
		JWTSecret:        configFile.JWT.Secret,
		JWTIssuer:        configFile.JWT.Issuer,
		SessionTTL:       sessTTL,
		OTP_TTL:          otpTTL,
		OTP_MaxAttempts:  defInt(configFile.OTP.MaxAttempts, 3),
		OTP_ResendWindow: resWnd,
		LockMaxAttempts:  defInt(configFile.Lockout.MaxAttempts, 5),
		LockDuration:     lockDur,
		TwilioSID:        configFile.Twilio.AccountSID,
		TwilioToken:      configFile.Twilio.AuthToken,
		TwilioVerifySID:  configFile.Twilio.VerifyServiceSID,
		CountryCode:      defStr(configFile.Phone.CountryCode, "91"),
		AllowSuffixMatch: configFile.Phone.AllowSuffixMatch,
		CasbinModelPath:  defStr(configFile.Casbin.ModelPath, "config/rbac_model.conf"),
		SweepInterval:    15 * time.Minute,
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	sessTTL, err := time.ParseDuration(env("SESSION_TTL", "3h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(env("OTP_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}
	resWnd, err := time.ParseDuration(env("OTP_RESEND_WINDOW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_RESEND_WINDOW: %w", err)
	}
	lockDur, err := time.ParseDuration(env("LOCKOUT_DURATION", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCKOUT_DURATION: %w", err)
	}

	return &Config{
		Port:             env("PORT", "8080"),
		GinMode:          env("GIN_MODE", "release"),
		DSN:              os.Getenv("DATABASE_DSN"),
		RedisAddr:        env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        env("JWT_ISSUER", "expert-claims"),
		SessionTTL:       sessTTL,
		OTP_TTL:          otpTTL,
		OTP_MaxAttempts:  envInt("OTP_MAX_ATTEMPTS", 3),
		OTP_ResendWindow: resWnd,
		LockMaxAttempts:  envInt("LOCKOUT_MAX_ATTEMPTS", 5),
		LockDuration:     lockDur,
		TwilioSID:        os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioVerifySID:  os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
		CountryCode:      env("PHONE_COUNTRY_CODE", "91"),
		AllowSuffixMatch: env("PHONE_ALLOW_SUFFIX_MATCH", "false") == "true",
		CasbinModelPath:  env("CASBIN_MODEL_PATH", "config/rbac_model.conf"),
		SweepInterval:    15 * time.Minute,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func defStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Fraud    FraudConfig
}

type AppConfig struct {
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// FraudConfig concentra os limiares do motor de detecção de fraude.
// Valores explícitos injetados no construtor do motor, nunca globais.
type FraudConfig struct {
	DebitHighAmount    float64
	CreditHighAmount   float64
	PrepaidHighAmount  float64
	RapidChangeWindow  time.Duration
	BurstWindow        time.Duration
	BurstCount         int
	EscalationWarnings int
}

func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT inválido: %w", err)
	}

	jwtHours, err := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            dbPort,
			User:            getEnv("DB_USER", "watchdog"),
			Password:        getEnv("DB_PASSWORD", "watchdog"),
			DBName:          getEnv("DB_NAME", "card_watchdog"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			ExpirationHours: jwtHours,
		},
		Fraud: FraudConfig{
			DebitHighAmount:    getEnvFloat("FRAUD_DEBIT_HIGH_AMOUNT", 10000),
			CreditHighAmount:   getEnvFloat("FRAUD_CREDIT_HIGH_AMOUNT", 20000),
			PrepaidHighAmount:  getEnvFloat("FRAUD_PREPAID_HIGH_AMOUNT", 5000),
			RapidChangeWindow:  time.Duration(getEnvInt("FRAUD_RAPID_CHANGE_MINUTES", 10)) * time.Minute,
			BurstWindow:        time.Duration(getEnvInt("FRAUD_BURST_MINUTES", 2)) * time.Minute,
			BurstCount:         getEnvInt("FRAUD_BURST_COUNT", 3),
			EscalationWarnings: getEnvInt("FRAUD_ESCALATION_WARNINGS", 2),
		},
	}

	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	if cfg.JWT.Secret == "" {
		if cfg.App.Environment != "development" {
			return nil, fmt.Errorf("JWT_SECRET é obrigatório fora do ambiente de desenvolvimento")
		}
		cfg.JWT.Secret = "dev-secret-nao-usar-em-producao"
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

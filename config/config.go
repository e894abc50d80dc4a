package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	serverPortEnv           = "SERVER_PORT"
	logLevelEnv             = "LOG_LEVEL"
	logFormatEnv            = "LOG_FORMAT"
	storageDriverEnv        = "STORAGE_DRIVER"
	dbHostEnv               = "DB_HOST"
	dbPortEnv               = "DB_PORT"
	dbUserEnv               = "DB_USER"
	dbNameEnv               = "DB_NAME"
	dbPasswordEnv           = "DB_PASSWORD"
	dbSSLModeEnv            = "DB_SSLMODE"
	rosterFixtureEnv        = "ROSTER_FIXTURE"
	questionnaireFixtureEnv = "QUESTIONNAIRE_FIXTURE"
	maxReviewersEnv         = "MAX_REVIEWERS"
	uniqueReviewersEnv      = "UNIQUE_REVIEWERS"
	editorSessionTTLEnv     = "EDITOR_SESSION_TTL"
	shutdownTimeoutEnv      = "SHUTDOWN_TIMEOUT"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	ServerPort         string
	LogLevel           string
	LogFormat          string
	StorageDriver      string
	DBConnectionString string

	RosterFixturePath        string
	QuestionnaireFixturePath string

	MaxReviewers     int
	UniqueReviewers  bool
	EditorSessionTTL time.Duration
	ShutdownTimeout  time.Duration
}

func NewConfig() (Config, error) {
	cfg := Config{
		ServerPort:    fmt.Sprintf(":%s", getEnv(serverPortEnv, "8080")),
		LogLevel:      getEnv(logLevelEnv, "INFO"),
		LogFormat:     getEnv(logFormatEnv, "text"),
		StorageDriver: getEnv(storageDriverEnv, StorageMemory),
		DBConnectionString: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			os.Getenv(dbUserEnv), os.Getenv(dbPasswordEnv), getEnv(dbHostEnv, "localhost"),
			getEnv(dbPortEnv, "5432"), os.Getenv(dbNameEnv), getEnv(dbSSLModeEnv, "disable")),
		RosterFixturePath:        os.Getenv(rosterFixtureEnv),
		QuestionnaireFixturePath: os.Getenv(questionnaireFixtureEnv),
	}

	var err error

	if cfg.MaxReviewers, err = getInt(maxReviewersEnv, 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxReviewers < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", maxReviewersEnv)
	}

	if cfg.UniqueReviewers, err = getBool(uniqueReviewersEnv, false); err != nil {
		return Config{}, err
	}

	if cfg.EditorSessionTTL, err = getDuration(editorSessionTTLEnv, 30*time.Minute); err != nil {
		return Config{}, err
	}

	if cfg.ShutdownTimeout, err = getDuration(shutdownTimeoutEnv, 10*time.Second); err != nil {
		return Config{}, err
	}

	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("unknown %s %q", storageDriverEnv, cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}

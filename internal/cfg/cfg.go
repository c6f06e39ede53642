package cfg

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Api  *APIConfig
	Http *HTTPConfig
	Log  *LogCfg
}

// APIConfig описывает удалённый REST API с ресурсом Products.
type APIConfig struct {
	BaseURL            string        // Базовый адрес API без завершающего "/"
	Timeout            time.Duration // Таймаут одного HTTP-запроса
	InsecureSkipVerify bool          // Отключить проверку TLS (dev-сертификат на localhost)
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SessionTTL   time.Duration // Время жизни неактивной сессии представления
	MaxSessions  int           // Предел числа сессий; при переполнении вытесняется самая старая
}

type LogCfg struct {
	Level slog.Level
	File  string // Файл лога для терминального интерфейса
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	api, err := loadAPIConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	lg, err := loadLogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Api:  api,
		Http: http,
		Log:  lg,
	}, nil
}

func loadAPIConfig(log logger.Logger) (*APIConfig, error) {
	const (
		defaultBaseURL  = "https://localhost:7171"
		defaultTimeout  = 10 * time.Second
		defaultInsecure = false
	)

	baseURL := strings.TrimRight(getEnvOrDefault("API_BASE_URL", defaultBaseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		err = fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", baseURL)
		log.Errorf(err, "invalid API_BASE_URL")
		return nil, err
	}

	timeout, err := parseDurationEnv("API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid API_TIMEOUT")
		return nil, err
	}

	insecure, err := strconv.ParseBool(getEnvOrDefault("API_INSECURE_SKIP_VERIFY", strconv.FormatBool(defaultInsecure)))
	if err != nil {
		log.Errorf(err, "invalid API_INSECURE_SKIP_VERIFY")
		return nil, err
	}

	return &APIConfig{
		BaseURL:            baseURL,
		Timeout:            timeout,
		InsecureSkipVerify: insecure,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultSessionTTL   = 30 * time.Minute
		defaultMaxSessions  = 1000
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)
	if _, err := strconv.Atoi(port); err != nil {
		log.Errorf(err, "invalid HTTP_PORT")
		return nil, e.Wrap("HTTP_PORT", e.ErrIncorrectEnvVariable)
	}

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	maxSessions, err := strconv.Atoi(getEnvOrDefault("HTTP_MAX_SESSIONS", strconv.Itoa(defaultMaxSessions)))
	if err != nil || maxSessions <= 0 {
		log.Errorf(err, "invalid HTTP_MAX_SESSIONS")
		return nil, e.Wrap("HTTP_MAX_SESSIONS", e.ErrIncorrectEnvVariable)
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SessionTTL:   sessionTTL,
		MaxSessions:  maxSessions,
	}, nil
}

func loadLogCfg(log logger.Logger) (*LogCfg, error) {
	const defaultFile = "products-board.log"

	level, err := logger.ParseLevel(getEnv("LOG_LEVEL"))
	if err != nil {
		log.Errorf(err, "invalid LOG_LEVEL")
		return nil, e.Wrap("LOG_LEVEL", e.ErrIncorrectEnvVariable)
	}

	return &LogCfg{
		Level: level,
		File:  getEnvOrDefault("LOG_FILE", defaultFile),
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

// Config stores runtime configuration for the portal.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	LogLevel                     logging.Level
	LogFormat                    string
	CORSAllowedOrigins           []string
	BackendBaseURL               string
	BackendTimeout               time.Duration
	BackendCircuitEnabled        bool
	BackendCircuitFailureCount   int
	BackendCircuitOpenTimeout    time.Duration
	BackendCircuitHalfOpenMaxReq int
	FlagCDNBaseURL               string
	FlagCacheTTL                 time.Duration
	PriorityCacheTTL             time.Duration
	PriorityFallbackIDs          []int64
	ListInitialSize              int
	ListIncrement                int
	ListMaxSize                  int
	ListLoadMoreDelay            time.Duration
	SessionStore                 string
	SessionTTL                   time.Duration
	SessionCookieSecure          bool
	DBURL                        string
	DBDisablePreparedBinary      bool
	AuthRateLimitPerMinute       int
	AuthRateLimitBurst           int
	DefaultTimezone              string
	DefaultSeason                int
	UptraceEnabled               bool
	UptraceDSN                   string
	UptraceLogsEnabled           bool
	BetterStackEnabled           bool
	BetterStackEndpoint          string
	BetterStackToken             string
	BetterStackTimeout           time.Duration
	BetterStackMinLevel          logging.Level
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	PprofEnabled                 bool
	PprofAddr                    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormatDefault := logging.FormatConsole
	if appEnv != EnvDev {
		logFormatDefault = logging.FormatJSON
	}
	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logFormatDefault)))
	if logFormat != logging.FormatJSON && logFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatJSON, logging.FormatConsole)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	backendBaseURL := strings.TrimSpace(getEnv("BACKEND_BASE_URL", "http://localhost:8080/api/v1/"))
	if parsed, err := url.Parse(backendBaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("BACKEND_BASE_URL must be an absolute url, got %q", backendBaseURL)
	}
	backendTimeout, err := getEnvAsDuration("BACKEND_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	backendCircuitEnabled, err := strconv.ParseBool(getEnv("BACKEND_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_CIRCUIT_ENABLED: %w", err)
	}
	backendCircuitFailureCount, err := getEnvAsInt("BACKEND_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if backendCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("BACKEND_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	backendCircuitOpenTimeout, err := getEnvAsDuration("BACKEND_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	backendCircuitHalfOpenMaxReq, err := getEnvAsInt("BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if backendCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	flagCacheTTL, err := getEnvAsDuration("FLAG_CACHE_TTL", "24h")
	if err != nil {
		return Config{}, err
	}
	priorityCacheTTL, err := getEnvAsDuration("PRIORITY_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	priorityFallbackIDs, err := parseIDList(getEnv("PRIORITY_FALLBACK_IDS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRIORITY_FALLBACK_IDS: %w", err)
	}

	listInitialSize, err := getEnvAsInt("LIST_INITIAL_SIZE", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIST_INITIAL_SIZE: %w", err)
	}
	listIncrement, err := getEnvAsInt("LIST_INCREMENT", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIST_INCREMENT: %w", err)
	}
	listMaxSize, err := getEnvAsInt("LIST_MAX_SIZE", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIST_MAX_SIZE: %w", err)
	}
	if listInitialSize < 1 || listIncrement < 1 {
		return Config{}, fmt.Errorf("LIST_INITIAL_SIZE and LIST_INCREMENT must be >= 1")
	}
	if listMaxSize < listInitialSize {
		return Config{}, fmt.Errorf("LIST_MAX_SIZE must be >= LIST_INITIAL_SIZE")
	}
	listLoadMoreDelay, err := time.ParseDuration(getEnv("LIST_LOAD_MORE_DELAY", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIST_LOAD_MORE_DELAY: %w", err)
	}
	if listLoadMoreDelay < 0 {
		return Config{}, fmt.Errorf("LIST_LOAD_MORE_DELAY must be >= 0")
	}

	sessionStore := strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", SessionStoreMemory)))
	if sessionStore != SessionStoreMemory && sessionStore != SessionStorePostgres {
		return Config{}, fmt.Errorf("invalid SESSION_STORE %q: valid values are %s, %s", sessionStore, SessionStoreMemory, SessionStorePostgres)
	}
	sessionTTL, err := getEnvAsDuration("SESSION_TTL", "168h")
	if err != nil {
		return Config{}, err
	}
	sessionCookieSecure, err := strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", strconv.FormatBool(appEnv == EnvProd)))
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_COOKIE_SECURE: %w", err)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if sessionStore == SessionStorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when SESSION_STORE=%s", SessionStorePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	authRateLimitPerMinute, err := getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if authRateLimitPerMinute < 1 {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE must be >= 1")
	}
	authRateLimitBurst, err := getEnvAsInt("AUTH_RATE_LIMIT_BURST", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_RATE_LIMIT_BURST: %w", err)
	}
	if authRateLimitBurst < 1 {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT_BURST must be >= 1")
	}

	defaultTimezone := strings.TrimSpace(getEnv("DEFAULT_TIMEZONE", "UTC"))
	if _, err := time.LoadLocation(defaultTimezone); err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_TIMEZONE: %w", err)
	}
	defaultSeason, err := getEnvAsInt("DEFAULT_SEASON", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_SEASON: %w", err)
	}
	if defaultSeason < 0 {
		return Config{}, fmt.Errorf("DEFAULT_SEASON must be >= 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := getEnvAsDuration("BETTERSTACK_TIMEOUT", "3s")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "football-portal"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":3000"),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		LogLevel:                     logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                    logFormat,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		BackendBaseURL:               backendBaseURL,
		BackendTimeout:               backendTimeout,
		BackendCircuitEnabled:        backendCircuitEnabled,
		BackendCircuitFailureCount:   backendCircuitFailureCount,
		BackendCircuitOpenTimeout:    backendCircuitOpenTimeout,
		BackendCircuitHalfOpenMaxReq: backendCircuitHalfOpenMaxReq,
		FlagCDNBaseURL:               strings.TrimSpace(getEnv("FLAG_CDN_BASE_URL", "https://flagcdn.com")),
		FlagCacheTTL:                 flagCacheTTL,
		PriorityCacheTTL:             priorityCacheTTL,
		PriorityFallbackIDs:          priorityFallbackIDs,
		ListInitialSize:              listInitialSize,
		ListIncrement:                listIncrement,
		ListMaxSize:                  listMaxSize,
		ListLoadMoreDelay:            listLoadMoreDelay,
		SessionStore:                 sessionStore,
		SessionTTL:                   sessionTTL,
		SessionCookieSecure:          sessionCookieSecure,
		DBURL:                        dbURL,
		DBDisablePreparedBinary:      dbDisablePreparedBinary,
		AuthRateLimitPerMinute:       authRateLimitPerMinute,
		AuthRateLimitBurst:           authRateLimitBurst,
		DefaultTimezone:              defaultTimezone,
		DefaultSeason:                defaultSeason,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		UptraceLogsEnabled:           uptraceLogsEnabled,
		BetterStackEnabled:           betterStackEnabled,
		BetterStackEndpoint:          betterStackEndpoint,
		BetterStackToken:             strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:           betterStackTimeout,
		BetterStackMinLevel:          logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "warn")),
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses a strictly positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseIDList reads "39,140,135" into positive ids, keeping order.
func parseIDList(raw string) ([]int64, error) {
	items := splitCSV(raw)
	out := make([]int64, 0, len(items))
	for _, item := range items {
		value, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("id must be > 0, got %q", item)
		}
		out = append(out, value)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

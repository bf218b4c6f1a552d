package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/techverse/internal/datasets"
	"github.com/yungbote/techverse/internal/http/middleware"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/neo4jdb"
)

const (
	keyEnv             = "app_env"
	keyLogMode         = "log_mode"
	keyPort            = "port"
	keyDatabaseURL     = "database_url"
	keyDBMaxOpenConns  = "db_max_open_conns"
	keyDatasetSource   = "dataset_source"
	keyS3Region        = "s3_region"
	keyS3Endpoint      = "s3_endpoint"
	keyS3PathStyle     = "s3_path_style"
	keyGCSCredsJSON    = "gcs_credentials_json"
	keyGCSCredsFile    = "gcs_credentials_file"
	keyRedisAddr       = "redis_addr"
	keyRedisPassword   = "redis_password"
	keyRedisDB         = "redis_db"
	keyRedisChannel    = "redis_channel"
	keyNeo4jURI        = "neo4j_uri"
	keyNeo4jUser       = "neo4j_user"
	keyNeo4jPassword   = "neo4j_password"
	keyNeo4jDatabase   = "neo4j_database"
	keyAllowedOrigins  = "cors_allowed_origins"
	keyRequestTimeout  = "request_timeout"
	keyShutdownTimeout = "shutdown_timeout"
	keyOtelEnabled     = "otel_enabled"
	keyOtelService     = "otel_service_name"
	keyOtelEndpoint    = "otel_exporter_otlp_endpoint"
	keyOtelInsecure    = "otel_exporter_otlp_insecure"
	keyOtelHeaders     = "otel_exporter_otlp_headers"
	keyOtelSampleRatio = "otel_traces_sampler_ratio"

	// dotenvFile is merged when present in the working directory.
	dotenvFile = ".env"
)

type Config struct {
	Env             string
	LogMode         string
	Port            string
	DatabaseURL     string
	DBMaxOpenConns  int
	DatasetSource   string
	Cloud           datasets.CloudOptions
	Redis           RedisConfig
	Neo4j           neo4jdb.Config
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Otel            observability.OtelConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// SeedOnStart reports whether the server should seed an empty items table.
func (c Config) SeedOnStart() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "DEV")
}

func (c Config) Address() string {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// NewViper returns a viper instance with defaults and environment binding
// applied. Flags are bound onto it by the CLI before LoadConfig runs.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyEnv, "PROD")
	v.SetDefault(keyLogMode, "development")
	v.SetDefault(keyPort, "3000")
	v.SetDefault(keyDatabaseURL, "sqlite:data/app.db")
	v.SetDefault(keyDBMaxOpenConns, 0)
	v.SetDefault(keyDatasetSource, "data")
	v.SetDefault(keyS3PathStyle, false)
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyRedisChannel, "techverse:sse")
	v.SetDefault(keyAllowedOrigins, middleware.DefaultAllowedOrigins)
	v.SetDefault(keyRequestTimeout, 10*time.Second)
	v.SetDefault(keyShutdownTimeout, 15*time.Second)
	v.SetDefault(keyOtelEnabled, false)
	v.SetDefault(keyOtelService, "techverse")
	v.SetDefault(keyOtelSampleRatio, 1.0)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the optional config file (YAML, or a dotenv file when no
// path is given) into v and resolves the final Config.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = NewViper()
	}
	if err := readConfigFile(v, configFile); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:            v.GetString(keyEnv),
		LogMode:        v.GetString(keyLogMode),
		Port:           v.GetString(keyPort),
		DatabaseURL:    strings.TrimSpace(v.GetString(keyDatabaseURL)),
		DBMaxOpenConns: v.GetInt(keyDBMaxOpenConns),
		DatasetSource:  strings.TrimSpace(v.GetString(keyDatasetSource)),
		Cloud: datasets.CloudOptions{
			S3Region:     v.GetString(keyS3Region),
			S3Endpoint:   v.GetString(keyS3Endpoint),
			S3PathStyle:  v.GetBool(keyS3PathStyle),
			GCSCredsJSON: v.GetString(keyGCSCredsJSON),
			GCSCredsFile: v.GetString(keyGCSCredsFile),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString(keyRedisAddr)),
			Password: v.GetString(keyRedisPassword),
			DB:       v.GetInt(keyRedisDB),
			Channel:  v.GetString(keyRedisChannel),
		},
		Neo4j: neo4jdb.Config{
			URI:      strings.TrimSpace(v.GetString(keyNeo4jURI)),
			User:     v.GetString(keyNeo4jUser),
			Password: v.GetString(keyNeo4jPassword),
			Database: v.GetString(keyNeo4jDatabase),
		},
		AllowedOrigins:  splitList(v.GetStringSlice(keyAllowedOrigins)),
		RequestTimeout:  v.GetDuration(keyRequestTimeout),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),
		Otel: observability.OtelConfig{
			Enabled:     v.GetBool(keyOtelEnabled),
			ServiceName: v.GetString(keyOtelService),
			Endpoint:    v.GetString(keyOtelEndpoint),
			Insecure:    v.GetBool(keyOtelInsecure),
			Headers:     observability.ParseHeaders(v.GetString(keyOtelHeaders)),
			SampleRatio: v.GetFloat64(keyOtelSampleRatio),
		},
	}
	cfg.Otel.Environment = cfg.Env

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("%s is required", strings.ToUpper(keyDatabaseURL))
	}
	if cfg.DatasetSource == "" {
		return Config{}, fmt.Errorf("%s is required", strings.ToUpper(keyDatasetSource))
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return Config{}, fmt.Errorf("%s is required", strings.ToUpper(keyPort))
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if path := strings.TrimSpace(configFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(dotenvFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dotenvFile, err)
	}
	v.SetConfigFile(dotenvFile)
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", dotenvFile, err)
	}
	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/m04kA/SMC-TimberService/pkg/types"
)

const (
	NotificationDriverLog     = "log"
	NotificationDriverKafka   = "kafka"
	NotificationDriverAMQP    = "amqp"
	NotificationDriverWebhook = "webhook"
	NotificationDriverNone    = "none"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	Redis         RedisConfig         `toml:"redis"`
	Notifications NotificationsConfig `toml:"notifications"`
	Payments      PaymentsConfig      `toml:"payments"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Breaker       BreakerConfig       `toml:"breaker"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start" env:"DB_MIGRATE_ON_START"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled" env:"OTEL_ENABLED"`
	OTLPEndpoint string  `toml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio  float64 `toml:"sample_ratio" env:"OTEL_SAMPLING_RATIO"`
}

// RedisConfig кэш праздников и распределённая блокировка дат
// Если Enabled=false, используется кэш-заглушка и блокировка внутри процесса
type RedisConfig struct {
	Enabled         bool   `toml:"enabled" env:"REDIS_ENABLED"`
	Addr            string `toml:"addr" env:"REDIS_ADDR"`
	Password        string `toml:"password" env:"REDIS_PASSWORD"`
	DB              int    `toml:"db" env:"REDIS_DB"`
	HolidayCacheTTL int    `toml:"holiday_cache_ttl"`
	LockTTL         int    `toml:"lock_ttl"`
	LockWait        int    `toml:"lock_wait"`
}

type NotificationsConfig struct {
	Driver         string        `toml:"driver" env:"NOTIFICATIONS_DRIVER"`
	PublishTimeout int           `toml:"publish_timeout"`
	Kafka          KafkaConfig   `toml:"kafka"`
	AMQP           AMQPConfig    `toml:"amqp"`
	Webhook        WebhookConfig `toml:"webhook"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string   `toml:"topic" env:"KAFKA_TOPIC"`
}

type AMQPConfig struct {
	URL      string `toml:"url" env:"AMQP_URL"`
	Exchange string `toml:"exchange" env:"AMQP_EXCHANGE"`
}

type WebhookConfig struct {
	URL string `toml:"url" env:"NOTIFICATIONS_WEBHOOK_URL"`
}

type PaymentsConfig struct {
	Enabled         bool   `toml:"enabled" env:"PAYMENTS_ENABLED"`
	StripeSecretKey string `toml:"stripe_secret_key" env:"STRIPE_SECRET_KEY"`
}

// ScheduleConfig рабочие часы и длительности в минутах
type ScheduleConfig struct {
	WorkStart              string `toml:"work_start"`
	WorkEnd                string `toml:"work_end"`
	MinDurationMinutes     int    `toml:"min_duration_minutes"`
	DefaultEnquiryDuration int    `toml:"default_enquiry_duration"`
	HolidayRetryDelayMs    int    `toml:"holiday_retry_delay_ms"`
}

type BreakerConfig struct {
	MaxRequests      uint32 `toml:"max_requests"`
	Interval         int    `toml:"interval"`
	Timeout          int    `toml:"timeout"`
	FailureThreshold uint32 `toml:"failure_threshold"`
}

// Load читает TOML-файл и применяет переопределения из переменных окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "timber-service",
		},
		Tracing: TracingConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			HolidayCacheTTL: 300,
			LockTTL:         10,
			LockWait:        5,
		},
		Notifications: NotificationsConfig{
			Driver:         NotificationDriverLog,
			PublishTimeout: 5,
			Kafka: KafkaConfig{
				Topic: "timber.enquiries",
			},
			AMQP: AMQPConfig{
				Exchange: "timber.enquiries",
			},
		},
		Schedule: ScheduleConfig{
			WorkStart:              "09:00",
			WorkEnd:                "17:00",
			MinDurationMinutes:     15,
			DefaultEnquiryDuration: 120,
			HolidayRetryDelayMs:    100,
		},
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         60,
			Timeout:          30,
			FailureThreshold: 5,
		},
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}

	workStart, err := types.NewTimeStringFromString(c.Schedule.WorkStart)
	if err != nil {
		problems = append(problems, fmt.Sprintf("schedule.work_start: %v", err))
	}
	workEnd, err := types.NewTimeStringFromString(c.Schedule.WorkEnd)
	if err != nil {
		problems = append(problems, fmt.Sprintf("schedule.work_end: %v", err))
	}
	if !workStart.IsZero() && !workEnd.IsZero() && !workStart.IsBefore(workEnd) {
		problems = append(problems, "schedule.work_start must be before schedule.work_end")
	}
	if c.Schedule.MinDurationMinutes <= 0 {
		problems = append(problems, "schedule.min_duration_minutes must be positive")
	}
	if c.Schedule.DefaultEnquiryDuration <= 0 {
		problems = append(problems, "schedule.default_enquiry_duration must be positive")
	}

	switch c.Notifications.Driver {
	case NotificationDriverLog, NotificationDriverNone:
	case NotificationDriverKafka:
		if len(c.Notifications.Kafka.Brokers) == 0 {
			problems = append(problems, "notifications.kafka.brokers is required for kafka driver")
		}
	case NotificationDriverAMQP:
		if c.Notifications.AMQP.URL == "" {
			problems = append(problems, "notifications.amqp.url is required for amqp driver")
		}
	case NotificationDriverWebhook:
		if c.Notifications.Webhook.URL == "" {
			problems = append(problems, "notifications.webhook.url is required for webhook driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown notifications.driver %q", c.Notifications.Driver))
	}

	if c.Payments.Enabled && c.Payments.StripeSecretKey == "" {
		problems = append(problems, "payments.stripe_secret_key is required when payments are enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

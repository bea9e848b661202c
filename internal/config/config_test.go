package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "timber"
password = "secret"
dbname = "timber"

[schedule]
work_start = "08:00"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "08:00", cfg.Schedule.WorkStart)
	assert.Equal(t, "17:00", cfg.Schedule.WorkEnd)
	assert.Equal(t, 120, cfg.Schedule.DefaultEnquiryDuration)
	assert.Equal(t, NotificationDriverLog, cfg.Notifications.Driver)
	assert.Equal(t, "host=db port=5432 user=timber password=secret dbname=timber sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "from-file"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("NOTIFICATIONS_DRIVER", "kafka")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, NotificationDriverKafka, cfg.Notifications.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notifications.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{
			name:   "work hours reversed",
			modify: func(c *Config) { c.Schedule.WorkStart, c.Schedule.WorkEnd = "17:00", "09:00" },
		},
		{
			name:   "bad work end",
			modify: func(c *Config) { c.Schedule.WorkEnd = "5pm" },
		},
		{
			name:   "kafka without brokers",
			modify: func(c *Config) { c.Notifications.Driver = NotificationDriverKafka },
		},
		{
			name:   "webhook without url",
			modify: func(c *Config) { c.Notifications.Driver = NotificationDriverWebhook },
		},
		{
			name:   "unknown driver",
			modify: func(c *Config) { c.Notifications.Driver = "sms" },
		},
		{
			name:   "stripe without key",
			modify: func(c *Config) { c.Payments.Enabled = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, defaults().Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

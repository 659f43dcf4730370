package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Wger
		Overpass
		LibraryRefresh
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Wger struct {
		BaseURL string
	}
	Overpass struct {
		URL string
	}
	LibraryRefresh struct {
		Enabled       bool
		Schedule      string // Cron format: "0 3 * * *" = daily at 03:00
		MaxAge        time.Duration
		BatchSize     int
		RetentionDays int // Days to keep cache entries without a refetch
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8177)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("wger_base_url", DefaultWgerBaseURL)
	v.SetDefault("overpass_url", DefaultOverpassURL)

	// Exercise library refresh defaults
	v.SetDefault("library_refresh_enabled", true)
	v.SetDefault("library_refresh_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("library_refresh_max_age", "168h")       // 7 days
	v.SetDefault("library_refresh_batch_size", 50)
	v.SetDefault("library_retention_days", 90)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Wger: Wger{
			BaseURL: v.GetString("WGER_BASE_URL"),
		},
		Overpass: Overpass{
			URL: v.GetString("OVERPASS_URL"),
		},
		LibraryRefresh: LibraryRefresh{
			Enabled:       v.GetBool("LIBRARY_REFRESH_ENABLED"),
			Schedule:      v.GetString("LIBRARY_REFRESH_SCHEDULE"),
			MaxAge:        v.GetDuration("LIBRARY_REFRESH_MAX_AGE"),
			BatchSize:     v.GetInt("LIBRARY_REFRESH_BATCH_SIZE"),
			RetentionDays: v.GetInt("LIBRARY_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
	}
}

package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Gateway modes.
const (
	GatewayModeREST  = "rest"
	GatewayModeLocal = "local"
)

// GatewayConfig describes the hosted backend.
type GatewayConfig struct {
	// Mode is "rest" for the hosted backend or "local" for the SQLite file.
	Mode string `mapstructure:"mode" yaml:"mode"`

	// URL is the project endpoint, e.g. https://xyz.supabase.co.
	URL string `mapstructure:"url" yaml:"url"`

	// APIKey is the public (anon) key. When empty it is read from the
	// keyring at startup.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// Bucket is the storage bucket holding attachment blobs.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// TimeoutSec bounds each HTTP request. Zero disables the timeout.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// LocalConfig holds settings for the SQLite backend.
type LocalConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// RefreshIntervalSec reloads every collection on a timer. Zero turns
	// background refresh off.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`

	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

// UserConfig identifies the operator in comments and uploads.
type UserConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// TaskConfig holds task workflow settings.
type TaskConfig struct {
	// CompletedStatusID is the status that marks a task completed.
	CompletedStatusID string `mapstructure:"completed_status_id" yaml:"completed_status_id"`
}

// AttachmentConfig limits uploads and signed links.
type AttachmentConfig struct {
	MaxUploadBytes  int64 `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	SignedURLTTLSec int   `mapstructure:"signed_url_ttl_sec" yaml:"signed_url_ttl_sec"`
}

// MutationConfig holds write policy switches.
type MutationConfig struct {
	// CascadeDeletes removes comments and attachments of a deleted task,
	// handover or schedule. Off by default, which leaves them orphaned.
	CascadeDeletes bool `mapstructure:"cascade_deletes" yaml:"cascade_deletes"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Gateway     GatewayConfig    `mapstructure:"gateway" yaml:"gateway"`
	Local       LocalConfig      `mapstructure:"local" yaml:"local"`
	Display     DisplayConfig    `mapstructure:"display" yaml:"display"`
	User        UserConfig       `mapstructure:"user" yaml:"user"`
	Tasks       TaskConfig       `mapstructure:"tasks" yaml:"tasks"`
	Attachments AttachmentConfig `mapstructure:"attachments" yaml:"attachments"`
	Mutation    MutationConfig   `mapstructure:"mutation" yaml:"mutation"`
	Log         LogConfig        `mapstructure:"log" yaml:"log"`
}

// configDir returns ~/.config/handover, or "." when no home is available.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "handover")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/handover/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Gateway: GatewayConfig{
			Mode:       GatewayModeREST,
			Bucket:     "attachments",
			TimeoutSec: 30,
		},
		Local: LocalConfig{
			DBPath: filepath.Join(configDir(), "handover.db"),
		},
		Display: DisplayConfig{
			Theme:              "default",
			RefreshIntervalSec: 0,
			PageSize:           50,
		},
		User: UserConfig{
			Name: os.Getenv("USER"),
		},
		Tasks: TaskConfig{
			CompletedStatusID: StatusTaskCompleted,
		},
		Attachments: AttachmentConfig{
			MaxUploadBytes:  10 << 20,
			SignedURLTTLSec: 3600,
		},
		Log: LogConfig{
			File: filepath.Join(configDir(), "handover.log"),
		},
	}
}

// setDefaults mirrors defaultAppConfig into v so partially written files
// still resolve every key.
func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("gateway.mode", d.Gateway.Mode)
	v.SetDefault("gateway.bucket", d.Gateway.Bucket)
	v.SetDefault("gateway.timeout_sec", d.Gateway.TimeoutSec)
	v.SetDefault("local.db_path", d.Local.DBPath)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.refresh_interval_sec", d.Display.RefreshIntervalSec)
	v.SetDefault("display.page_size", d.Display.PageSize)
	v.SetDefault("user.name", d.User.Name)
	v.SetDefault("tasks.completed_status_id", d.Tasks.CompletedStatusID)
	v.SetDefault("attachments.max_upload_bytes", d.Attachments.MaxUploadBytes)
	v.SetDefault("attachments.signed_url_ttl_sec", d.Attachments.SignedURLTTLSec)
	v.SetDefault("mutation.cascade_deletes", d.Mutation.CascadeDeletes)
	v.SetDefault("log.file", d.Log.File)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. SUPABASE_URL and
// SUPABASE_ANON_KEY override the gateway endpoint and key in both cases.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v, defaultAppConfig())
	_ = v.BindEnv("gateway.url", "SUPABASE_URL")
	_ = v.BindEnv("gateway.api_key", "SUPABASE_ANON_KEY")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &pathErr), errors.As(err, &notFound):
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.PageSize <= 0 {
		cfg.Display.PageSize = 50
	}
	if cfg.Tasks.CompletedStatusID == "" {
		cfg.Tasks.CompletedStatusID = StatusTaskCompleted
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. The API key is never written;
// it belongs in the keyring.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	gw := cfg.Gateway
	gw.APIKey = ""
	v.Set("gateway", gw)
	v.Set("local", cfg.Local)
	v.Set("display", cfg.Display)
	v.Set("user", cfg.User)
	v.Set("tasks", cfg.Tasks)
	v.Set("attachments", cfg.Attachments)
	v.Set("mutation", cfg.Mutation)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

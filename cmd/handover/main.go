package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/shift-handover/internal/app"
	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/credential"
	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/gateway/rest"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/mutation"
	"github.com/nhle/shift-handover/internal/store"
	appsync "github.com/nhle/shift-handover/internal/sync"
	"github.com/nhle/shift-handover/internal/ui/detail"
)

var (
	configPath string
	forceLocal bool
)

var rootCmd = &cobra.Command{
	Use:           "handover",
	Short:         "Fire department shift handover dashboard",
	Long:          `handover shows today's schedules, per-department handovers and tasks, and a monthly calendar in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.Log.File != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
			f, err := tea.LogToFile(cfg.Log.File, "handover")
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
		}

		backend, closeFn, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		c := cache.New(backend)
		if err := c.LoadAll(cmd.Context()); err != nil {
			log.Printf("initial load: %v", err)
		}

		ctrl := mutation.New(backend, c, mutation.OptionsFromConfig(cfg))

		var refresher *appsync.Refresher
		if cfg.Display.RefreshIntervalSec > 0 {
			refresher = appsync.New(c,
				time.Duration(cfg.Display.RefreshIntervalSec)*time.Second,
				time.Duration(cfg.Gateway.TimeoutSec)*time.Second)
		}

		downloadDir, err := os.Getwd()
		if err != nil {
			downloadDir = "."
		}

		m := app.New(ctrl, refresher, app.Config{
			PageSize:      cfg.Display.PageSize,
			UserName:      cfg.User.Name,
			MarkdownStyle: detail.MarkdownStyle(cfg.Display.Theme),
			DownloadDir:   downloadDir,
			Backend:       backendLabel(cfg),
		})

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty local database with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := openLocal(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		seeded, err := s.Seed(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Println("Database already has data; nothing seeded.")
			return nil
		}
		fmt.Printf("Seeded sample data into %s\n", cfg.Local.DBPath)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [api-key]",
	Short: "Store the backend API key in the OS keyring",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			err := huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("API key is required")
					}
					return nil
				}).
				Value(&key).
				Run()
			if err != nil {
				return err
			}
		}

		if err := credential.Set(credential.APIKey, strings.TrimSpace(key)); err != nil {
			return err
		}
		fmt.Println("API key saved to keyring.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the backend API key from the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Delete(credential.APIKey); err != nil {
			return err
		}
		fmt.Println("API key removed from keyring.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&forceLocal, "local", false, "use the local SQLite database instead of the hosted backend")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if forceLocal {
		cfg.Gateway.Mode = model.GatewayModeLocal
	}
	return cfg, nil
}

func openLocal(cfg *model.AppConfig) (*store.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Local.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return store.NewSQLiteStore(cfg.Local.DBPath)
}

func openBackend(cfg *model.AppConfig) (gateway.Backend, func(), error) {
	switch cfg.Gateway.Mode {
	case model.GatewayModeLocal:
		s, err := openLocal(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case model.GatewayModeREST:
		if cfg.Gateway.URL == "" {
			return nil, nil, errors.New("gateway.url is not set; set it in the config file or SUPABASE_URL, or run with --local")
		}
		key, err := credential.ResolveAPIKey(cfg.Gateway.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("reading API key: %w", err)
		}
		if key == "" {
			return nil, nil, errors.New("no API key; run `handover login` or set SUPABASE_ANON_KEY")
		}
		timeout := time.Duration(cfg.Gateway.TimeoutSec) * time.Second
		return rest.NewClient(cfg.Gateway.URL, key, cfg.Gateway.Bucket, timeout), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown gateway mode %q", cfg.Gateway.Mode)
}

func backendLabel(cfg *model.AppConfig) string {
	if cfg.Gateway.Mode == model.GatewayModeLocal {
		return "local"
	}
	return "online"
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

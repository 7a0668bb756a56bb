package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindberry/teplo/bot"
	"github.com/mindberry/teplo/core/bootstrap"
	"github.com/mindberry/teplo/core/buildinfo"
	corecmd "github.com/mindberry/teplo/core/cmd"
	"github.com/mindberry/teplo/core/config"
	coredatabase "github.com/mindberry/teplo/core/database"
)

const appName = "teplo"

func main() {
	if err := buildRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCommand() *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Emotional support Telegram bot with a therapy session engine",
		Long: strings.TrimSpace(`teplo is a Telegram bot that holds supportive conversations:
it tracks the emotional state of each chat, walks a short therapy arc,
remembers significant moments and sends weekly emotion digests.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			_ = cmd.Help()
			return fmt.Errorf("a subcommand is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show build/version metadata")

	root.AddCommand(newRunCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newRunCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		Long:  "Load configuration, connect storage if configured, and start the Telegram runtime.",
		Example: strings.Join([]string{
			"  teplo run",
			"  teplo run --config ./config.yaml",
			"  CONFIG_PATH=./config.yaml teplo run",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(configPath) != "" {
				if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
					return fmt.Errorf("set CONFIG_PATH: %w", err)
				}
			}
			return corecmd.Run(corecmd.Options{
				DefaultConfigPath: "config.yaml",
				LoadConfig:        loadConfig,
				Bootstrap:         bootstrapApp,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config (overrides CONFIG_PATH)")

	return cmd
}

func loadConfig(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return configCarrier{cfg: cfg}, nil
}

func bootstrapApp(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()

	res, err := bootstrap.Run(bootstrap.Options{
		Config: cfg,
		Database: coredatabase.Config{
			Host:           cfg.Database.Host,
			Port:           cfg.Database.Port,
			User:           cfg.Database.User,
			Password:       cfg.Database.Password,
			Name:           cfg.Database.Name,
			SSLMode:        cfg.Database.SSLMode,
			MaxConnections: cfg.Database.MaxConnections,
		},
		SkipDatabase: cfg.Sessions.Backend != config.SessionsPostgres,
	})
	if err != nil {
		return nil, err
	}

	app, err := bot.New(cfg, res.DB)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// configCarrier adapts the loaded config to the shared runner contract.
type configCarrier struct {
	cfg *config.Config
}

func (c configCarrier) CoreConfig() *config.Config { return c.cfg }

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion()
		},
	}
}

func printVersion() {
	fmt.Printf("%s %s (commit %s)\n", appName, buildinfo.Version, buildinfo.Commit)
	if buildinfo.Date != "" {
		fmt.Printf("  Build: %s\n", buildinfo.Date)
	}
	fmt.Printf("  Go: %s\n", runtime.Version())
}

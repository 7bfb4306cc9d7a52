package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cds-go/internal/app"
	"cds-go/internal/cds"
	"cds-go/internal/config"
	"cds-go/internal/shell"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it does not exist.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := defaults.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp creates a CDSApp over dir, or the configured monitor directory when
// dir is empty. The caller must defer app.Close().
// With bootstrap set, a missing directory is created first.
func newApp(cfg *config.Config, dir string, bootstrap bool) (*app.CDSApp, error) {
	if dir == "" {
		dir = cfg.MonitorDir
	}
	if bootstrap {
		if err := app.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	a, err := app.NewCDSApp(cfg, dir, verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:          "cds [DIR]",
	Short:        "Detect changes to the files of one directory",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell [DIR]",
	Short: "Start the interactive shell",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, dirArg(args), true)
	if err != nil {
		return err
	}
	defer a.Close()

	var renderer *lipgloss.Renderer
	if cfg.Display.Color {
		renderer = lipgloss.NewRenderer(os.Stdout)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		in := shell.NewPromptReader(os.Stdin, os.Stdout, shell.Prompt)
		return shell.New(a, in, os.Stdout, renderer).Run()
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, shell.Prompt)
	return shell.New(a, t, t, renderer).Run()
}

var statusCmd = &cobra.Command{
	Use:   "status [DIR]",
	Short: "Show the status of every file",
	Long:  "Scan DIR and report each file's status. Without an earlier commit in the same process every file is compared against the scan time.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(cfg, dirArg(args), false)
		if err != nil {
			return err
		}
		defer a.Close()

		statuses, err := a.Status()
		if err != nil {
			return err
		}

		if len(statuses) == 0 {
			fmt.Println("No files found.")
			return nil
		}
		for _, s := range statuses {
			fmt.Printf("%s: %s\n", s.Name, s.Status)
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info DIR FILE",
	Short: "Show metadata for one file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(cfg, args[0], false)
		if err != nil {
			return err
		}
		defer a.Close()

		fields, err := a.Info(args[1])
		if errors.Is(err, cds.ErrNotFound) {
			return fmt.Errorf("file '%s' not found in %s", args[1], a.RootPath())
		}
		if err != nil {
			return err
		}

		for _, f := range fields {
			fmt.Println(f)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := defaults.NewConfig()
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Monitor Dir: %s\n", cfg.MonitorDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := defaults.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Monitor Dir: %s\n", cfg.MonitorDir)
		fmt.Printf("Journal:     %s\n", journalDescription(cfg.Database))
		fmt.Printf("Ignore:      %s\n", strings.Join(cfg.Filesystem.Ignore, ", "))
		fmt.Printf("Color:       %t\n", cfg.Display.Color)
		return nil
	},
}

func journalDescription(db config.DatabaseConfig) string {
	if db.Type == "sqlite" {
		return "sqlite (" + db.DataDir + ")"
	}
	return "memory"
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configCmd)
}

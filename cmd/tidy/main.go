package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tidy-go/internal/app"
	"tidy-go/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a TidyApp. The caller must defer
// app.Close(). operation identifies the CLI command being run.
func newApp(operation string) (*app.TidyApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewTidyApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "tidy",
	Short: "Rule-driven file organizer",
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

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
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

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Database: %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		return nil
	},
}

// dir command
var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Manage watched directories",
}

var dirAddCmd = &cobra.Command{
	Use:   "add [PATH]",
	Short: "Watch a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddWatchedDirectory")
		if err != nil {
			return err
		}
		defer a.Close()

		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		if err := a.AddWatchedDirectory(target); err != nil {
			return fmt.Errorf("watching directory: %w", err)
		}

		fmt.Printf("Watching directory: %s\n", target)
		return nil
	},
}

var dirRemoveCmd = &cobra.Command{
	Use:   "remove PATH",
	Short: "Stop watching a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveWatchedDirectory")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveWatchedDirectory(args[0]); err != nil {
			return fmt.Errorf("unwatching directory: %w", err)
		}

		fmt.Printf("Stopped watching: %s\n", args[0])
		return nil
	},
}

var dirListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("WatchedDirectories")
		if err != nil {
			return err
		}
		defer a.Close()

		dirs := a.WatchedDirectories()
		if len(dirs) == 0 {
			fmt.Println("No watched directories.")
			return nil
		}
		for _, d := range dirs {
			fmt.Println(d)
		}
		return nil
	},
}

// rule command
var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage organization rules",
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organization rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Rules")
		if err != nil {
			return err
		}
		defer a.Close()

		rules := a.Rules()
		if len(rules) == 0 {
			fmt.Println("No rules configured.")
			return nil
		}
		for _, r := range rules {
			state := "enabled"
			if !r.Enabled {
				state = "disabled"
			}
			fmt.Printf("%-36s  p%-3d  %-8s  %s  (%d conditions, %d actions)\n",
				r.ID, r.Priority, state, r.Name, len(r.Conditions), len(r.Actions))
		}
		return nil
	},
}

// organize command
var organizeCmd = &cobra.Command{
	Use:   "organize [PATH]",
	Short: "Run one organize pass",
	Long:  "Run one organize pass over every watched directory, or over PATH only when given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Organize")
		if err != nil {
			return err
		}
		defer a.Close()

		var count int
		if len(args) > 0 {
			count = a.OrganizeDirectory(cmd.Context(), args[0])
		} else {
			count = a.OrganizeAll(cmd.Context())
		}

		fmt.Printf("Recorded %d operation(s)\n", count)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent file operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("RecentOperations")
		if err != nil {
			return err
		}
		defer a.Close()

		ops := a.RecentOperations(limit)
		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			status := "ok"
			if !op.Success {
				status = "FAILED: " + op.ErrorMessage
			}
			dest := op.DestinationPath
			if dest == "" {
				dest = "-"
			}
			fmt.Printf("%s  %-6s  %s -> %s  %s\n",
				op.Timestamp.Format("2006-01-02 15:04:05"),
				op.Type,
				op.SourcePath,
				dest,
				status,
			)
		}
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View organization statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")

		a, err := newApp("Statistics")
		if err != nil {
			return err
		}
		defer a.Close()

		if reset {
			if err := a.ResetStatistics(); err != nil {
				return fmt.Errorf("resetting statistics: %w", err)
			}
			fmt.Println("Statistics reset.")
			return nil
		}

		stats := a.Statistics()
		fmt.Printf("Files organized: %d\n", stats.FilesOrganized)
		fmt.Printf("Errors:          %d\n", stats.Errors)
		if stats.LastOrganizedAt != nil {
			fmt.Printf("Last pass:       %s\n", stats.LastOrganizedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch directories and organize on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Watch")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching. Press Ctrl+C to stop.")
		return a.Watch(ctx)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	dirCmd.AddCommand(dirAddCmd)
	dirCmd.AddCommand(dirRemoveCmd)
	dirCmd.AddCommand(dirListCmd)

	ruleCmd.AddCommand(ruleListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dirCmd)
	rootCmd.AddCommand(ruleCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("reset", false, "Reset counters to zero")
	rootCmd.AddCommand(watchCmd)
}

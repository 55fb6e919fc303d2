// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package cmd implements the CLI for asyncgit, grounded on the teacher's
// cmd/gz-git/cmd/root.go (persistent flags, colorized usage template,
// SilenceUsage/SilenceErrors propagation): the root command runs the TUI
// driver, and a few single-repository subcommands (commit, fetch, push,
// push-tags) sit beside it rather than a bulk-operation command tree
// (spec §6 "External Interfaces").
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
	"github.com/gizzahub/asyncgit/pkg/cliutil"
	"github.com/gizzahub/asyncgit/pkg/config"
	"github.com/gizzahub/asyncgit/pkg/tui"
	"github.com/gizzahub/asyncgit/pkg/watch"
	"github.com/gizzahub/asyncgit/pkg/wizard"
)

var (
	appVersion string

	themeFlag     string
	directoryFlag string
	workdirFlag   string
	loggingFlag   bool
	logfileFlag   string
	watcherFlag   bool
	bugreportFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "asyncgit",
	Short: "Asynchronous git status/diff/blame/log driver for a terminal UI",
	Long: `asyncgit drives a terminal UI from an async facade over a git working tree:
single-flight status/diff/blame/log jobs, a notification bus, and a guarded commit pipeline.
` + cliutil.QuickStartHelp(`  # Open the current directory
  asyncgit

  # Point at a specific git directory and enable the filesystem watcher
  asyncgit -d /path/to/repo --watcher`),
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "theme.yaml", "theme file, relative to the app config directory")
	rootCmd.PersistentFlags().StringVarP(&directoryFlag, "directory", "d", ".", "git directory (env GIT_DIR)")
	rootCmd.PersistentFlags().StringVarP(&workdirFlag, "workdir", "w", "", "working directory (env GIT_WORK_TREE)")
	rootCmd.PersistentFlags().BoolVarP(&loggingFlag, "logging", "l", false, "enable trace logging to <cache_dir>/asyncgit.log")
	rootCmd.PersistentFlags().StringVar(&logfileFlag, "logfile", "", "trace log path (implies --logging)")
	rootCmd.PersistentFlags().BoolVar(&watcherFlag, "watcher", false, "use filesystem notifications instead of periodic polling")
	rootCmd.PersistentFlags().BoolVar(&bugreportFlag, "bugreport", false, "emit a diagnostic bundle and exit")

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.AddCommand(commitCmd)
}

// commitCmd runs the interactive commit wizard (pkg/wizard) instead of the
// TUI, for terminals that only want the commit step (spec §5
// "Commit message prettify" supplemented feature).
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Prompt for a commit message and run the commit pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		openPath := directoryFlag
		if workdirFlag != "" {
			openPath = workdirFlag
		}
		repo, err := gitadapt.Open(openPath)
		if err != nil {
			return fmt.Errorf("open repository at %q: %w", openPath, err)
		}

		result, err := wizard.NewCommitWizard(repo).Run(cmd.Context())
		if err != nil {
			return err
		}
		if result.CommitHash == "" {
			fmt.Println("commit cancelled")
			return nil
		}
		fmt.Printf("created commit %s\n", result.CommitHash)
		if result.PostCommitWarn != nil {
			fmt.Fprintln(os.Stderr, result.PostCommitWarn)
		}
		return nil
	},
}

// Execute runs the root command. It is called once by main.main.
func Execute(version string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetUsageTemplate(usageTemplate)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRoot wires spec §6's external interfaces together: config/cache
// directory resolution, an opened repository, the async core (Bus,
// Dispatcher, Generation), an optional filesystem watcher, and the
// Bubble Tea program built on top of pkg/tui.
func runRoot(cmd *cobra.Command, args []string) error {
	if envDir := os.Getenv("GIT_DIR"); envDir != "" && !cmd.Flags().Changed("directory") {
		directoryFlag = envDir
	}
	if envWork := os.Getenv("GIT_WORK_TREE"); envWork != "" && !cmd.Flags().Changed("workdir") {
		workdirFlag = envWork
	}

	paths, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolve config directories: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("create config directories: %w", err)
	}

	if bugreportFlag {
		return writeBugreport(paths)
	}

	logger, closeLog, err := setupLogging(paths)
	if err != nil {
		return err
	}
	defer closeLog()

	openPath := directoryFlag
	if workdirFlag != "" {
		openPath = workdirFlag
	}
	repo, err := gitadapt.Open(openPath)
	if err != nil {
		return fmt.Errorf("open repository at %q: %w", openPath, err)
	}

	if _, err := config.LoadTheme(filepath.Join(paths.ConfigDir, themeFlag)); err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	keyConfig, err := config.LoadKeyConfig(paths.KeyConfigFile())
	if err != nil {
		return fmt.Errorf("load key config: %w", err)
	}
	if _, err := config.LoadCommitHelpers(paths.CommitHelpersFile()); err != nil {
		return fmt.Errorf("load commit helpers: %w", err)
	}

	bus := asyncjob.NewBus()
	generation := &asyncjob.Generation{}
	repo.SetGeneration(generation)

	if watcherFlag {
		watcher, err := watch.New(bus, generation, watch.Options{
			Interval:         2 * time.Second,
			DebounceDuration: 500 * time.Millisecond,
			Logger:           slogWatchLogger{logger},
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := watcher.Start(ctx, []string{openPath}); err != nil {
			return fmt.Errorf("watch %q: %w", openPath, err)
		}
		defer func() { _ = watcher.Stop() }()
	}

	model := tui.NewModel(bus, repo)
	model.SetKeyConfig(keyConfig)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// setupLogging opens the trace log when -l/--logging or --logfile was
// given, returning a no-op logger and closer otherwise.
func setupLogging(paths config.Paths) (*slog.Logger, func(), error) {
	if !loggingFlag && logfileFlag == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})), func() {}, nil
	}

	path := logfileFlag
	if path == "" {
		path = paths.LogFile()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %q: %w", path, err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

// slogWatchLogger adapts a *slog.Logger to pkg/watch.Logger.
type slogWatchLogger struct{ logger *slog.Logger }

func (l slogWatchLogger) Debug(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l slogWatchLogger) Info(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l slogWatchLogger) Warn(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l slogWatchLogger) Error(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// writeBugreport emits a diagnostic bundle to stdout and exits 0 (spec §6
// "--bugreport: emit a diagnostic bundle and exit 0").
func writeBugreport(paths config.Paths) error {
	fmt.Printf("asyncgit version: %s\n", appVersion)
	fmt.Printf("go version: %s\n", runtime.Version())
	fmt.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("config dir: %s\n", paths.ConfigDir)
	fmt.Printf("cache dir: %s\n", paths.CacheDir)
	fmt.Printf("directory: %s\n", directoryFlag)
	fmt.Printf("workdir: %s\n", workdirFlag)
	fmt.Printf("watcher: %t\n", watcherFlag)
	return nil
}

const usageTemplate = `{{if .Runnable}}` + cliutil.ColorGreenBold + `Usage:` + cliutil.ColorReset + `
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}` + cliutil.ColorGreenBold + `Usage:` + cliutil.ColorReset + `
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

` + cliutil.ColorGreenBold + `Examples:` + cliutil.ColorReset + `
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

` + cliutil.ColorGreenBold + `Flags:` + cliutil.ColorReset + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

` + cliutil.ColorGreenBold + `Global Flags:` + cliutil.ColorReset + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

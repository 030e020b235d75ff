package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattjoyce/webhookd/internal/config"
	"github.com/mattjoyce/webhookd/internal/lock"
	"github.com/mattjoyce/webhookd/internal/log"
	"github.com/mattjoyce/webhookd/internal/server"
	"github.com/mattjoyce/webhookd/internal/webhook"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return 1
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "config":
		return runConfigNoun(rest)
	case "start":
		if hasHelpFlag(rest) {
			printStartHelp()
			return 0
		}
		return runStart(rest)
	case "version":
		fmt.Printf("webhookd version %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(os.Stderr)
		return 1
	}
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `webhookd - single-route webhook receiver

Usage:
  webhookd <command> [flags]

Commands:
  start                 Serve the webhook in the foreground
  config check          Validate the configuration file
  config lock           Record the configuration hash in .checksums
  version               Print the version
  help                  Show this help

Run 'webhookd <command> --help' for command flags.
`)
}

func runConfigNoun(args []string) int {
	if len(args) < 1 {
		printConfigNounHelp(os.Stderr)
		return 1
	}

	if isHelpToken(args[0]) {
		printConfigNounHelp(os.Stdout)
		return 0
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "lock":
		if hasHelpFlag(actionArgs) {
			printConfigLockHelp()
			return 0
		}
		return runConfigLock(actionArgs)
	case "check":
		if hasHelpFlag(actionArgs) {
			printConfigCheckHelp()
			return 0
		}
		return runConfigCheck(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config action: %s\n", action)
		return 1
	}
}

func isHelpToken(token string) bool {
	return token == "help" || token == "--help" || token == "-h"
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

func printConfigNounHelp(w *os.File) {
	fmt.Fprintln(w, "Usage: webhookd config <action> [flags]")
	fmt.Fprintln(w, "Actions: check, lock")
}

func printStartHelp() {
	fmt.Println("Usage: webhookd start [--config PATH]")
	fmt.Println("Serve the webhook in the foreground until SIGINT or SIGTERM.")
}

func printConfigLockHelp() {
	fmt.Println("Usage: webhookd config lock [--config PATH] [-v|--verbose] [--dry-run]")
	fmt.Println("Authorize the current configuration by recording its BLAKE3 hash.")
}

func printConfigCheckHelp() {
	fmt.Println("Usage: webhookd config check [--config PATH]")
	fmt.Println("Validate configuration syntax, integrity and webhook options.")
}

// resolveConfigPath returns the explicit path or the discovered one.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return config.Discover()
}

func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	return cfg, nil
}

// buildOptions turns the webhook section into registrar options.
func buildOptions(cfg *config.Config, logger *slog.Logger) (webhook.Options, error) {
	opts, err := webhook.FromConfig(&cfg.Webhook, logger)
	if err != nil {
		return webhook.Options{}, fmt.Errorf("webhook options error: %w", err)
	}
	return opts, nil
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file or directory")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	path, err := resolveConfigPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to discover config: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	// Setup runs once; nothing may log before the configured level is known.
	log.Setup(cfg.Service.LogLevel, cfg.Service.LogFormat)
	logger := log.WithComponent("main")

	opts, err := buildOptions(cfg, log.WithComponent("webhook"))
	if err != nil {
		logger.Error("invalid webhook options", "error", err)
		return 1
	}

	logger.Info("webhookd starting",
		"version", version,
		"config", path,
		"name", cfg.Service.Name,
		"url", opts.URL,
	)

	if cfg.Service.PIDFile != "" {
		pidFile, err := lock.Acquire(cfg.Service.PIDFile)
		if err != nil {
			logger.Error("failed to acquire pid file", "error", err)
			return 1
		}
		defer func() {
			if err := pidFile.Release(); err != nil {
				logger.Warn("failed to release pid file", "path", pidFile.Path(), "error", err)
			}
		}()
		logger.Info("pid file acquired", "path", pidFile.Path())
	}

	srv, err := server.New(server.Config{Listen: cfg.Service.Listen}, opts, log.WithComponent("server"))
	if err != nil {
		logger.Error("failed to create server", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "error", err)
		return 1
	}

	logger.Info("webhookd stopped")
	return 0
}

func runConfigCheck(args []string) int {
	var configPath string

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to configuration")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	path, err := resolveConfigPath(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to discover config: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	quiet := slog.New(slog.DiscardHandler)
	opts, err := buildOptions(cfg, quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	// Registering against a throwaway server catches invalid routes too.
	if _, err := server.New(server.Config{Listen: cfg.Service.Listen}, opts, quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Webhook registration error: %v\n", err)
		return 1
	}

	fmt.Printf("Configuration OK: %s\n", path)
	fmt.Printf("  listen:   %s\n", cfg.Service.Listen)
	if cfg.Webhook.DisableWebhook {
		fmt.Println("  webhook:  disabled")
		return 0
	}
	fmt.Printf("  webhook:  POST %s -> %s\n", opts.URL, cfg.Webhook.Handler)
	if cfg.Webhook.EnableGetPlaceholder {
		fmt.Printf("  webhook:  GET %s -> 405 placeholder\n", opts.URL)
	}
	if cfg.Webhook.PreHandlers == nil {
		fmt.Printf("  gates:    default (%s)\n", webhook.PreHandlerSecretKey)
	} else {
		fmt.Printf("  gates:    %d\n", len(opts.PreHandlers))
	}
	return 0
}

func runConfigLock(args []string) int {
	var configPath string
	var verbose, verboseShort, dryRun bool

	fs := flag.NewFlagSet("lock", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to configuration")
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&verboseShort, "v", false, "Verbose output")
	fs.BoolVar(&dryRun, "dry-run", false, "Dry run")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	path, err := resolveConfigPath(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to discover config: %v\n", err)
		return 1
	}

	report, err := config.Lock(path, dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to lock config: %v\n", err)
		return 1
	}

	if verbose || verboseShort {
		fmt.Printf("HASH %s: %s\n", report.ConfigPath, report.Hash)
	}
	if dryRun {
		fmt.Printf("DRY-RUN %s: %s (not written)\n", config.ChecksumFilename, report.ChecksumPath)
		return 0
	}
	fmt.Printf("Successfully locked configuration: %s\n", report.ChecksumPath)
	return 0
}

// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package cmd provides the root command for the go2web CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/defenseunicorns/go2web"
	"github.com/defenseunicorns/go2web/config"
	"github.com/defenseunicorns/go2web/extract"
	"github.com/defenseunicorns/go2web/rawhttp"
	"github.com/defenseunicorns/go2web/search"
	"github.com/defenseunicorns/go2web/store"
)

// ErrNoArguments is returned when go2web is called without an action
var ErrNoArguments = errors.New(`please input an argument, consider typing "go2web -h"`)

// NewRootCmd creates the root command for the go2web CLI.
func NewRootCmd() *cobra.Command {
	var (
		u          string
		term       string
		previous   string
		level      string
		ver        bool
		policy     = config.DefaultFetchPolicy // VarP does not allow you to set a default value
		engine     string
		format     = extract.DefaultFormat
		cacheDir   string
		timeout    time.Duration
		configPath string
		clearCache bool
	)

	var cfg *config.Config // cfg is not set via CLI flag

	loadConfig := func(cmd *cobra.Command) error {
		path := ""
		switch {
		case cmd.Flags().Changed("config"):
			path = configPath
		case os.Getenv("GO2WEB_CONFIG") != "":
			path = os.Getenv("GO2WEB_CONFIG")
		}

		if path == "" {
			var err error
			cfg, err = config.LoadDefaultConfig()
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()
		cfg, err = config.LoadConfig(f)
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		return nil
	}

	root := &cobra.Command{
		Use:   "go2web",
		Short: "Fetch web pages and search the web from the terminal",
		Example: `
go2web -u example.com

go2web -s golang http client

go2web -p 2
`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}

			// default < cfg < flags
			if !cmd.Flags().Changed("fetch-policy") && cfg.FetchPolicy != "" && cfg.FetchPolicy != policy {
				if err := policy.Set(cfg.FetchPolicy.String()); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				if err := format.Set(cfg.Format.String()); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("engine") && cfg.SearchEngine != "" {
				engine = cfg.SearchEngine
			}
			if !cmd.Flags().Changed("cache-dir") && cfg.CacheDir != "" {
				cacheDir = cfg.CacheDir
			}

			return nil
		},
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := log.ParseLevel(level)
			if err != nil {
				return err
			}
			logger := log.FromContext(cmd.Context())
			logger.SetLevel(l)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			out := cmd.OutOrStdout()
			color := !termenv.EnvNoColor() && xterm.IsTerminal(int(os.Stdout.Fd()))

			if ver {
				bi, ok := debug.ReadBuildInfo()
				if !ok {
					return fmt.Errorf("version information not available")
				}
				fmt.Fprintln(out, bi.Main.Version)
				return nil
			}

			searching := cmd.Flags().Changed("search")
			if len(args) > 0 && !searching {
				return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
			}

			fs := afero.NewOsFs()

			dir := filepath.Clean(os.ExpandEnv(cacheDir))
			if err := fs.MkdirAll(dir, 0o744); err != nil {
				return fmt.Errorf("failed to create cache directory: %w", err)
			}
			base := afero.NewBasePathFs(fs, dir)

			cache, err := store.NewLocalStore(base)
			if err != nil {
				return fmt.Errorf("failed to initialize cache: %w", err)
			}

			if clearCache {
				n, err := cache.Clean()
				if err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
				logger.Info("cleared cache", "entries", n, "dir", dir)

				if u == "" && !searching && previous == "" {
					return nil
				}
			}

			if u == "" && !searching && previous == "" {
				return ErrNoArguments
			}

			e, err := search.Get(engine)
			if err != nil {
				return err
			}

			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
				cmd.SetContext(ctx)
			}

			svc, err := go2web.NewService(
				go2web.WithClient(rawhttp.NewClient()),
				go2web.WithCache(cache),
				go2web.WithFS(base),
				go2web.WithFetchPolicy(policy),
				go2web.WithSearchEngine(e),
				go2web.WithFormat(format),
			)
			if err != nil {
				return fmt.Errorf("failed to initialize service: %w", err)
			}

			switch {
			case searching:
				results, err := svc.Search(ctx, strings.Join(append([]string{term}, args...), " "))
				if err != nil {
					return err
				}
				return go2web.RenderResults(out, results, color)
			case previous != "":
				page, err := svc.Previous(ctx, previous)
				if err != nil {
					return err
				}
				return go2web.Render(out, page, color)
			default:
				page, err := svc.Display(ctx, u)
				if err != nil {
					return err
				}
				return go2web.Render(out, page, color)
			}
		},
	}

	root.Flags().StringVarP(&u, "url", "u", "", "Make an HTTP request to the specified URL and print the response")
	root.Flags().StringVarP(&term, "search", "s", "", "Make an HTTP request to search the term using your favorite search engine and print top 10 results")
	root.Flags().StringVarP(&previous, "previous", "p", "", "Access the n-th result from the last search")
	root.MarkFlagsMutuallyExclusive("url", "search", "previous")
	root.Flags().StringVarP(&level, "log-level", "l", "info", "Set log level")
	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{log.DebugLevel.String(), log.InfoLevel.String(), log.WarnLevel.String(), log.ErrorLevel.String(), log.FatalLevel.String()}, cobra.ShellCompDirectiveNoFileComp
	})
	root.Flags().BoolVarP(&ver, "version", "V", false, "Print version number and exit")
	root.Flags().DurationVarP(&timeout, "timeout", "t", time.Minute, "Maximum time allowed for a request, redirects included")
	root.Flags().StringVarP(&configPath, "config", "", "${HOME}/.go2web/config.yaml", "Path to go2web config file") // mirrors config.DefaultDirectory
	_ = root.MarkFlagFilename("config", "yaml", "yml")
	root.Flags().Var(&policy, "fetch-policy", fmt.Sprintf(`Set fetch policy ("%s")`, strings.Join(config.AvailablePolicies(), `", "`)))
	_ = root.RegisterFlagCompletionFunc("fetch-policy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.AvailablePolicies(), cobra.ShellCompDirectiveNoFileComp
	})
	root.Flags().Var(&format, "format", fmt.Sprintf(`Set how HTML pages are printed ("%s")`, strings.Join(extract.AvailableFormats(), `", "`)))
	_ = root.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return extract.AvailableFormats(), cobra.ShellCompDirectiveNoFileComp
	})
	root.Flags().StringVar(&engine, "engine", search.DefaultEngine, fmt.Sprintf(`Set search engine ("%s")`, strings.Join(search.Names(), `", "`)))
	_ = root.RegisterFlagCompletionFunc("engine", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return search.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	root.Flags().StringVar(&cacheDir, "cache-dir", "${HOME}/.go2web/cache", "Set cache directory")
	_ = root.MarkFlagDirname("cache-dir")
	root.Flags().BoolVar(&clearCache, "clear-cache", false, "Remove every cached page")

	return root
}

// Main executes the root command for the go2web CLI.
//
// It returns 0 on success, 1 on failure and logs any errors.
func Main() int {
	cli := NewRootCmd()

	ctx := context.Background()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	logger.SetStyles(DefaultStyles())

	ctx = log.WithContext(ctx, logger)
	cmd, err := cli.ExecuteContextC(ctx)
	if err != nil {
		if errors.Is(cmd.Context().Err(), context.DeadlineExceeded) {
			logger.Error("request timed out")
		}
		logger.Error(err)
	}
	return ParseExitCode(err)
}

// ParseExitCode calculates the exit code from a given error
//
// 0 - the error was nil
// 130 - the request was interrupted
// 1 - there was some other error
func ParseExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}

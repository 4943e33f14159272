// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/HCRitter/PSCommandShortener/internal/config"
	"github.com/HCRitter/PSCommandShortener/pkg/registry"
	"github.com/HCRitter/PSCommandShortener/pkg/shortener"
)

var (
	// cfgFile allows specifying a custom config file
	cfgFile string
	// verbose enables debug logging
	verbose bool
	// writeInPlace rewrites input files instead of printing to stdout
	writeInPlace bool
	// showStats renders the per-invocation savings report
	showStats bool
	// lineEndingFlag overrides the configured line-ending style
	lineEndingFlag string
	// registryFlags are extra alias table files layered over the defaults
	registryFlags []string

	rootCmd = &cobra.Command{
		Use:   "psshort [file...]",
		Short: "Shorten commands to their briefest known aliases",
		Long: TitleStyle.Render("psshort") + SubtitleStyle.Render(" - command alias shortener") + `

psshort rewrites each command invocation in its input to the shortest
equivalent spelling: registered aliases for commands and parameters,
or the verb-stripped short form for retrieval commands with no alias.
Statement structure (pipes, semicolons, newlines) is preserved.

Reads from stdin when no files are given.

` + SubtitleStyle.Render("Examples:") + `
  echo 'Get-ChildItem -Recurse' | psshort
  psshort script.ps1
  psshort --write --stats script.ps1
  psshort --registry my-aliases.toml script.ps1`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/psshort/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "rewrite files in place instead of printing")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "print a per-invocation savings report to stderr")
	rootCmd.Flags().StringVar(&lineEndingFlag, "line-ending", "", `output line-ending style: "crlf" or "lf"`)
	rootCmd.Flags().StringArrayVar(&registryFlags, "registry", nil, "extra alias table file, layered over the built-in table (repeatable)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		return err
	}
	applyFlags(cfg)

	logger := newLogger(cfg.Verbose)

	reg, err := buildRegistry(cfg.RegistryPaths)
	if err != nil {
		return err
	}

	s, err := shortener.New(
		shortener.WithRegistry(reg),
		shortener.WithImpliedPrefixes(cfg.ImpliedPrefixes),
		shortener.WithLineEnding(cfg.LineEnding.Sequence()),
		shortener.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if writeInPlace {
			return fmt.Errorf("--write requires file arguments")
		}
		return shortenStream(s, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return shortenFiles(s, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// applyFlags layers explicit CLI flags over the loaded configuration.
func applyFlags(cfg *config.Config) {
	if verbose {
		cfg.Verbose = true
	}
	if lineEndingFlag != "" {
		cfg.LineEnding = config.LineEndingStyle(lineEndingFlag)
	}
	cfg.RegistryPaths = append(cfg.RegistryPaths, registryFlags...)
}

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "psshort",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// buildRegistry layers the alias tables from paths, in order, over the
// embedded default table.
func buildRegistry(paths []string) (*registry.InMemory, error) {
	commands, common, err := registry.DefaultTable()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		extraCommands, extraCommon, err := registry.LoadTOML(path)
		if err != nil {
			return nil, err
		}
		commands = registry.Override(commands, extraCommands)
		common = registry.OverrideParameters(common, extraCommon)
	}
	return registry.NewInMemory(commands, common)
}

func shortenStream(s *shortener.Shortener, in io.Reader, out, errOut io.Writer) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	result, err := s.Report(string(source))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, result.Shortened); err != nil {
		return err
	}
	if showStats {
		renderStats(errOut, "<stdin>", result)
	}
	return nil
}

func shortenFiles(s *shortener.Shortener, paths []string, out, errOut io.Writer) error {
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result, err := s.Report(string(source))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if writeInPlace {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(result.Shortened), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		} else {
			if _, err := io.WriteString(out, result.Shortened); err != nil {
				return err
			}
		}

		if showStats {
			renderStats(errOut, path, result)
		}
	}
	return nil
}

package controllers

import (
	"context"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rios0rios0/cargo-outdated/internal/domain/commands"
	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	infraRepos "github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories"
)

const outputFileMode = 0o644

// OutdatedController handles the root command: scan the project and print the report.
type OutdatedController struct {
	command   commands.Outdated
	renderers *infraRepos.RendererRegistry
}

// NewOutdatedController creates a new OutdatedController.
func NewOutdatedController(
	command commands.Outdated,
	renderers *infraRepos.RendererRegistry,
) *OutdatedController {
	return &OutdatedController{command: command, renderers: renderers}
}

// GetBind returns the Cobra command metadata for the outdated controller.
func (it *OutdatedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "cargo-outdated",
		Short: "Find outdated dependencies in a Cargo project",
		Long: `Reads Cargo.toml (and every workspace member), asks the registry for the
latest release of each dependency, and lists those whose declared
requirement does not accept it.

Examples:
  cargo-outdated                              Scan the project in the current directory
  cargo-outdated --manifest-path ./Cargo.toml Scan a specific manifest
  cargo-outdated -f json -o report.json       Write a JSON report`,
	}
}

// Execute runs one scan and writes the rendered report.
func (it *OutdatedController) Execute(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	if verbose, _ := flags.GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	applyFlagOverrides(flags, settings)
	if validateErr := settings.Validate(); validateErr != nil {
		return fmt.Errorf("invalid settings: %w", validateErr)
	}

	renderer, err := it.renderers.Get(settings.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	manifestPath, _ := flags.GetString("manifest-path")
	report, err := it.command.Execute(ctx, settings, commands.OutdatedOptions{ManifestPath: manifestPath})
	if err != nil {
		return err
	}

	output, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	outputPath, _ := flags.GetString("output")
	if outputPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return err
	}
	if writeErr := os.WriteFile(outputPath, append(output, '\n'), outputFileMode); writeErr != nil {
		return fmt.Errorf("failed to write report to %q: %w", outputPath, writeErr)
	}
	logger.Infof("Report written to %s", outputPath)
	return nil
}

// AddFlags adds the scan flags to the given Cobra command.
func (it *OutdatedController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("manifest-path", "", "Path to Cargo.toml (default: search from the current directory)")
	cmd.Flags().StringP("format", "f", "",
		fmt.Sprintf("Output format (%s)", strings.Join(it.renderers.Names(), ", ")))
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().IntP("concurrency", "j", 0, "Maximum number of registry requests in flight (default: number of CPUs)")
	cmd.Flags().String("registry-url", "", "Base URL of the package registry")
	cmd.Flags().Bool("match-release-channel", false,
		"Ignore pre-releases unless the declared requirement targets one")
}

// loadSettings reads the explicit config file, or the first one found in the
// default locations, falling back to built-in defaults.
func loadSettings(flags *pflag.FlagSet) (*entities.Settings, error) {
	configPath, _ := flags.GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.NewDefaultSettings(), nil
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// applyFlagOverrides copies every flag the user actually set over the loaded settings.
func applyFlagOverrides(flags *pflag.FlagSet, settings *entities.Settings) {
	if flags.Changed("format") {
		settings.Format, _ = flags.GetString("format")
	}
	if flags.Changed("concurrency") {
		settings.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("registry-url") {
		settings.Registry.URL, _ = flags.GetString("registry-url")
	}
	if flags.Changed("match-release-channel") {
		settings.MatchReleaseChannel, _ = flags.GetBool("match-release-channel")
	}
}

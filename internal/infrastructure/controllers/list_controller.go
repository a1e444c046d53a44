package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	infraRepos "github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories"
)

// ListController handles the "list" subcommand.
type ListController struct {
	registries *infraRepos.RegistryFactories
	renderers  *infraRepos.RendererRegistry
}

// NewListController creates a new ListController.
func NewListController(
	registries *infraRepos.RegistryFactories,
	renderers *infraRepos.RendererRegistry,
) *ListController {
	return &ListController{registries: registries, renderers: renderers}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List supported registries and output formats",
	}
}

// Execute prints the registered registry types and output formats.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Registries:")
	for _, name := range it.registries.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}

	fmt.Fprintln(out, "Output formats:")
	for _, name := range it.renderers.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

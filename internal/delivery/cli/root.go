package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/catalog-scraper/internal/usecase"
)

// UseCases are the wired use cases the commands operate on.
type UseCases struct {
	Catalog  *usecase.CatalogUseCase
	Exporter *usecase.ExportUseCase
	Batch    *usecase.BatchUseCase
}

// Deps holds command defaults and the hook that wires the use cases.
// Setup runs only once a command is about to do work, so help output and
// argument errors never need the database.
type Deps struct {
	Setup func(ctx context.Context) (*UseCases, error)

	Genres        []string
	ItemsPerGenre int

	Out io.Writer
}

type app struct {
	deps *Deps
	uc   *UseCases
}

// NewRootCommand builds the scraper command tree.
func NewRootCommand(deps *Deps) *cobra.Command {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	a := &app{deps: deps}

	root := &cobra.Command{
		Use:           "scraper",
		Short:         "scraper collects the clone.nl in-stock catalog into PostgreSQL and CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if deps.Setup == nil {
				return errors.New("no use cases configured")
			}
			uc, err := deps.Setup(cmd.Context())
			if err != nil {
				return err
			}
			a.uc = uc
			return nil
		},
	}
	root.SetOut(deps.Out)

	root.AddCommand(
		newRunCmd(a),
		newResetCmd(a),
		newInitCmd(a),
		newFetchCmd(a),
		newExportCmd(a),
	)
	return root
}

// ExecuteContext runs the command line in args against deps.
func ExecuteContext(ctx context.Context, deps *Deps, args []string) error {
	root := NewRootCommand(deps)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

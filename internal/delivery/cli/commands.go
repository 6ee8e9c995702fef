package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/catalog-scraper/internal/scraper"
	"github.com/user/catalog-scraper/internal/usecase"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		genres []string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "run [--genres a,b] [--count N]",
		Short: "Drops and recreates the catalog, imports every genre, then exports a CSV.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.uc.Batch.Run(cmd.Context(), genres, count)
			if summary != nil && len(summary.Genres) > 0 {
				renderSummary(a.deps.Out, summary.Genres)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.deps.Out, "exported %d items to %s in %s\n",
				summary.TotalItems(), summary.ExportPath, summary.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&genres, "genres", a.deps.Genres, "Genres to import.")
	cmd.Flags().IntVar(&count, "count", a.deps.ItemsPerGenre, "Minimum number of listings per genre.")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drops the catalog tables. All stored listings are lost.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.Catalog.ResetSchema(cmd.Context())
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Creates the catalog tables if they do not exist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.Catalog.CreateSchema(cmd.Context())
		},
	}
}

func newFetchCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "fetch <genre> [--count N]",
		Short: "Fetches one genre and stores it in the catalog.",
		Long: "Fetches one genre and stores it in the catalog. Run init first.\n\n" +
			"Supported genres: " + strings.Join(scraper.SupportedGenres(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.uc.Catalog.ImportGenre(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			renderSummary(a.deps.Out, []usecase.GenreSummary{summary})
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", a.deps.ItemsPerGenre, "Minimum number of listings to fetch.")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Writes the stored catalog to a timestamped CSV file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.uc.Exporter.ExportCatalog(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.deps.Out, path)
			return nil
		},
	}
}

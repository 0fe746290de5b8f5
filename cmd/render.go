package cmd

import (
	"fmt"

	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/gateway/cover"
	"movie-watchlist/internal/render"
	"movie-watchlist/internal/usecase"
	"movie-watchlist/internal/wire"

	"github.com/spf13/cobra"
)

const cliViewer = "cli"

var (
	renderMode    string
	renderField   string
	renderSort    string
	renderFilter  string
	renderOffline bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the watch list table markup",
	Long: `Run one render pass over the stored list and print the table rows.

With --offline every row uses the fallback cover and no lookups are made.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderMode, "mode", "list", "View mode: list or group")
	renderCmd.Flags().StringVar(&renderField, "field", "", "Grouping field in group mode")
	renderCmd.Flags().StringVar(&renderSort, "sort", "", "Sort field")
	renderCmd.Flags().StringVar(&renderFilter, "filter", "", "Only movies whose title or director contains this text")
	renderCmd.Flags().BoolVar(&renderOffline, "offline", false, "Skip cover lookups")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	resolver := wire.NewCoverResolver(rt.config, rt.logger)
	if renderOffline {
		resolver = cover.Static(rt.config.Cover.Fallback)
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	service := usecase.NewService(rt.repo, resolver, renderer, rt.logger)
	result, err := service.Render.Render(ctx, cliViewer, &request.ViewRequest{
		Filter: renderFilter,
		Mode:   renderMode,
		Field:  renderField,
		Sort:   renderSort,
	})
	if err != nil {
		return fmt.Errorf("render watch list: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Markup)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rubicon-docs/docsite/internal/config"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/progress"
	"github.com/rubicon-docs/docsite/internal/site"
)

var (
	buildOutput string
	buildQuiet  bool
	buildStrict bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the content directory into a static site",
	Long: `Walks the content directory, renders every markdown page with the sidebar,
pagination and "On this page" outline, writes the static site and refreshes
the SQLite page index used by the server and the MCP tools.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "override the output directory")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "disable the progress bar")
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "fail when a navigation entry has no page")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildOutput != "" {
		cfg.OutputDir = buildOutput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := buildSite(ctx, cfg, buildQuiet)
	if err != nil {
		return err
	}

	fmt.Printf("Site built: %s (%d pages, %d rendered, %d unchanged, %d removed)\n",
		cfg.OutputDir, res.Pages, res.Rendered, res.Skipped, res.Removed)
	if len(res.Missing) > 0 {
		fmt.Printf("%d navigation entries have no page:\n", len(res.Missing))
		for _, href := range res.Missing {
			fmt.Printf("  %s\n", href)
		}
		if buildStrict {
			return fmt.Errorf("%d navigation entries have no page", len(res.Missing))
		}
	}
	return nil
}

// buildSite runs one full build against the configured index.
func buildSite(ctx context.Context, cfg *config.Config, quiet bool) (*site.Result, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer log.Sync()

	tree, err := loadNavigation(cfg)
	if err != nil {
		return nil, err
	}

	database, err := openIndex(cfg)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	builder, err := site.NewBuilder(cfg, tree, pages.NewStore(database), log)
	if err != nil {
		return nil, err
	}
	builder.Progress = progress.NewReporter(quiet)

	res, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("building site: %w", err)
	}
	return res, nil
}

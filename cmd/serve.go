package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rubicon-docs/docsite/internal/live"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/server"
	"github.com/rubicon-docs/docsite/internal/site"
)

var (
	servePort  int
	serveBuild bool
	serveDev   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation site over HTTP",
	Long: `Starts the documentation server. Pages are served from the SQLite page index
written by ` + "`docsite build`" + `, alongside the navigation and page APIs and the
/ws/scroll websocket that keeps the "On this page" outline in sync.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveBuild, "build", false, "build the site before serving")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveBuild {
		if _, err := buildSite(ctx, cfg, true); err != nil {
			return err
		}
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	tree, err := loadNavigation(cfg)
	if err != nil {
		return err
	}

	database, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	store := pages.NewStore(database)
	if n, err := store.Count(ctx); err == nil && n == 0 {
		log.Warn("page index is empty, run `docsite build` first", zap.String("database", cfg.DatabasePath))
	}

	layout, err := site.NewLayout(tree, site.LayoutOptions{
		SiteName:      cfg.SiteName,
		RepositoryURL: cfg.Repository,
		ContentDir:    cfg.ContentDir,
	})
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins || serveDev,
		Timeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}, database, log)

	srv.RegisterDocs(server.Docs{
		Tree:     tree,
		Pages:    store,
		Layout:   layout,
		Live:     live.NewHandler(tree, store, log),
		HomePath: cfg.HomePath,
	})

	return srv.Run(ctx)
}

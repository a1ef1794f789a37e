package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gologme/log"
	"github.com/slonm/tableprinter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thanhnp/chain-dns-dashboard/internal/api"
	"github.com/thanhnp/chain-dns-dashboard/internal/config"
	"github.com/thanhnp/chain-dns-dashboard/internal/dashboard"
	"github.com/thanhnp/chain-dns-dashboard/internal/notifier"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
	"github.com/thanhnp/chain-dns-dashboard/internal/watch"
)

// version is set at build time
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "dashboard",
		Short:        "Web dashboard for a ledger-backed DNS registry",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "snapshot",
		Short: "Load the dashboard once and print its tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	})
	return root
}

// app is everything a command needs
type app struct {
	cfg    *config.Config
	log    *log.Logger
	client *rpc.Client
	dash   *dashboard.Dashboard
}

// setup loads the configuration and builds a dashboard on a fresh page
func setup(ctx context.Context, configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(logOut, cfg.Log.Level)

	page := view.NewPage()
	sink := notifier.NewSink(page, logger)
	client := rpc.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Timeout())
	d := dashboard.New(ctx, page, client, sink, logger, dashboard.OptionsFromConfig(cfg.Dashboard))
	return &app{cfg: cfg, log: logger, client: client, dash: d}, nil
}

func runServe(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, configPath, os.Stdout)
	if err != nil {
		return err
	}
	cfg, logger, d := a.cfg, a.log, a.dash

	logger.Infof("Starting ledger DNS dashboard %s against %s", version, cfg.Ledger.BaseURL)
	d.Init()

	if interval := cfg.Dashboard.PollInterval(); interval > 0 {
		watcher := watch.NewWatcher(a.client, interval, logger)
		watcher.OnChange(func(int) {
			d.LoadDomains()
			d.LoadBlockchain()
		})
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	router := api.NewDashboardRouter(d, api.DashboardOptions{
		Version:         version,
		DomainSuffix:    cfg.Dashboard.DomainSuffix,
		SettleTimeout:   cfg.Dashboard.SettleTimeout(),
		EventBufferSize: cfg.Dashboard.EventBufferSize,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     router.Engine(),
		ReadTimeout: 30 * time.Second,
		// no WriteTimeout: /events streams for as long as the browser stays
		IdleTimeout: 120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infoln("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("%v", err)
		return err
	}
	logger.Infoln("Server stopped")
	return nil
}

type domainRow struct {
	Domain     string `header:"domain"`
	IPAddress  string `header:"ip address"`
	Owner      string `header:"owner"`
	Registered string `header:"registered"`
}

type blockRow struct {
	Block    string `header:"block"`
	Time     string `header:"timestamp"`
	Hash     string `header:"hash"`
	Previous string `header:"previous"`
	Domains  string `header:"domains"`
}

func runSnapshot(ctx context.Context, configPath string, out io.Writer) error {
	a, err := setup(ctx, configPath, os.Stderr)
	if err != nil {
		return err
	}
	cfg, d := a.cfg, a.dash

	d.Init()
	settleCtx, cancel := context.WithTimeout(ctx, cfg.Ledger.Timeout()+cfg.Dashboard.SettleTimeout())
	defer cancel()
	if err := d.Settle(settleCtx); err != nil {
		return fmt.Errorf("dashboard did not finish loading: %w", err)
	}

	printSnapshot(out, d.Snapshot())
	return nil
}

func printSnapshot(out io.Writer, p view.Page) {
	fmt.Fprintf(out, "%s\nChain length: %s  Status: %s\n\n", p.Connection.Text, p.ChainLength.Text, p.ChainStatus.Text)

	printer := tableprinter.New(out)
	printer.RowLengthTitle = func(int) bool { return false }

	domains := make([]domainRow, 0, len(p.Domains.Rows))
	for _, r := range p.Domains.Rows {
		if r.Note != "" {
			fmt.Fprintln(out, r.Note)
			continue
		}
		domains = append(domains, domainRow{r.Cells[0], r.Cells[1], r.Cells[2], r.Cells[3]})
	}
	if len(domains) > 0 {
		printer.Print(domains)
	}
	fmt.Fprintln(out)

	if p.Chain.Note != "" {
		fmt.Fprintln(out, p.Chain.Note)
	}
	blocks := make([]blockRow, 0, len(p.Chain.Blocks))
	for _, b := range p.Chain.Blocks {
		blocks = append(blocks, blockRow{b.Title, b.Timestamp, b.Hash, b.PrevHash, strings.Join(b.Entries, "; ")})
	}
	if len(blocks) > 0 {
		printer.Print(blocks)
	}

	fmt.Fprintln(out)
	for _, line := range p.Terminal.Lines {
		fmt.Fprintln(out, line.String())
	}
}

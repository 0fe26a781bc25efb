package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-autofill/internal/autofill"
	"github.com/spigell/job-autofill/internal/browser"
	"github.com/spigell/job-autofill/internal/dom/rodpage"
	"github.com/spigell/job-autofill/internal/logger"
	"github.com/spigell/job-autofill/internal/messaging"
	"github.com/spigell/job-autofill/internal/metrics"
	"github.com/spigell/job-autofill/internal/overlay"
	"github.com/spigell/job-autofill/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve [url]",
	Short: "Keep a Chrome tab with the autofill button open and serve the local relay",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		serve(args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "relay address, loopback only (default is "+messaging.DefaultListen+")")

	viper.BindPFlag("relay.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if err := runServe(ctx, firstArg(args), logger); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "interrupted"))
}

func runServe(ctx context.Context, url string, logger *zap.Logger) error {
	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	logger.Info("starting the job-autofill relay", zap.String("version", version))

	p, err := loadProfile(config, logger)
	if err != nil {
		return err
	}

	site, err := newSite(config)
	if err != nil {
		return err
	}

	token, err := resolveToken(config)
	if err != nil {
		return fmt.Errorf("loading relay token: %w", err)
	}
	if token == "" {
		logger.Warn("relay token is not configured, any local process can start a fill",
			zap.String("hint", "set AUTOFILL_RELAY_TOKEN_FILE or relay.token-file"),
		)
	}

	mgr := browser.NewManager(config.Browser, logger)
	if err := mgr.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			logger.Warn("closing the browser", zap.Error(err))
		}
	}()

	page, err := mgr.OpenPage(ctx, url)
	if err != nil {
		return err
	}

	rp := rodpage.New(page)

	// New documents of the tab get the helper on their own; the one already
	// loaded is injected on demand.
	unpersist, err := rp.Persist()
	if err != nil {
		return err
	}
	defer unpersist()

	m := metrics.New()
	hub := messaging.NewHub(logger, messaging.Origins(config.Relay.AllowedOrigins))

	runner := autofill.New(p, config.Timing, logger,
		autofill.WithNotifier(overlay.NewNotifier(rp)),
		autofill.WithReporter(m),
		autofill.WithReporter(hub),
	)

	sess := session.New(ctx, rp, site, runner, logger)
	defer sess.Wait()

	if err := sess.Inject(); err != nil {
		return err
	}

	trigger := overlay.NewTrigger(rp, site, logger)
	unbind, err := trigger.Bind(ctx, func(ctx context.Context) error {
		_, err := sess.Run(ctx)
		return err
	})
	if err != nil {
		return err
	}
	defer unbind()

	relay := messaging.NewRelay(sess, hub, token, m.Handler(), logger)
	watcher := overlay.NewWatcher(rp.URL, site, trigger, overlay.WatchInterval, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return relay.Serve(gctx, config.Relay.Listen)
	})
	g.Go(func() error {
		return watcher.Run(gctx)
	})

	return g.Wait()
}

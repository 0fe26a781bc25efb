package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/autofill"
	"github.com/spigell/job-autofill/internal/browser"
	"github.com/spigell/job-autofill/internal/dom/rodpage"
	"github.com/spigell/job-autofill/internal/logger"
	"github.com/spigell/job-autofill/internal/overlay"
	"github.com/spigell/job-autofill/internal/session"
)

const (
	PromptFill   = "Fill the page"
	PromptReport = "Report fields"
	PromptExit   = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Navigate to the application form, then choose",
	Items: []string{PromptFill, PromptReport, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Open a careers page in Chrome and fill its application form",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "fill the page right after it loads without asking")
}

// run is the one-shot fill command.
func run(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if err := runFill(ctx, cmd, args, logger); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func runFill(ctx context.Context, cmd *cobra.Command, args []string, logger *zap.Logger) error {
	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	logger.Info("starting the job-autofill", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	p, err := loadProfile(config, logger)
	if err != nil {
		return err
	}

	site, err := newSite(config)
	if err != nil {
		return err
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

	page, err := mgr.OpenPage(ctx, firstArg(args))
	if err != nil {
		return err
	}

	rp := rodpage.New(page)
	runner := autofill.New(p, config.Timing, logger, autofill.WithNotifier(overlay.NewNotifier(rp)))
	sess := session.New(ctx, rp, site, runner, logger)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := fillPage(ctx, sess, logger); err != nil {
			return err
		}

		if config.Browser.RemoteURL == "" {
			logger.Info("leaving the browser open for review", zap.String("hint", "press Ctrl+C to close it"))
			<-ctx.Done()
		}
		return nil
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(ctx, action, sess, runner, rp, logger); err != nil {
			return err
		}
	}
}

func handleAction(ctx context.Context, action string, sess *session.Session, runner *autofill.Runner, page *rodpage.Page, logger *zap.Logger) error {
	switch action {
	case PromptFill:
		return fillPage(ctx, sess, logger)
	case PromptReport:
		if err := sess.EnsureHelper(); err != nil {
			return fmt.Errorf("preparing the page: %w", err)
		}
		findings, err := runner.Inspect(page)
		if err != nil {
			return fmt.Errorf("inspecting the page: %w", err)
		}
		report(logger, page.URL(), findings)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// fillPage runs once. Page-level refusals are reported and do not end the
// command: the user may still navigate to the right page.
func fillPage(ctx context.Context, sess *session.Session, logger *zap.Logger) error {
	stats, err := sess.Run(ctx)
	switch {
	case errors.Is(err, overlay.ErrNotApplicationPage):
		logger.Warn("skipping the fill", zap.Error(err), zap.String("hint", "open the application form of the job first"))
		return nil
	case errors.Is(err, context.Canceled):
		return errExit
	case err != nil:
		logger.Warn("autofill failed", zap.Error(err))
		return nil
	}

	logger.Info("please review the filled fields before submitting",
		zap.Int("found", stats.Found),
		zap.Int("filled", stats.Filled),
	)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/autofill"
	"github.com/spigell/job-autofill/internal/dom/htmldoc"
	"github.com/spigell/job-autofill/internal/logger"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.html>",
	Short: "Report how a saved application page would be filled, without a browser",
	Long: "Classify every control of a saved page (use - for stdin) and print the answer " +
		"a run would write. Nothing is filled.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("url", "u", "", "the address the page was saved from, checked against the site pattern")
}

func inspect(cmd *cobra.Command, path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	p, err := loadProfile(config, logger)
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	url := cmd.Flag("url").Value.String()
	if url != "" {
		site, err := newSite(config)
		if err != nil {
			logger.Fatal("building the site", zap.Error(err))
		}
		if err := site.Check(url); err != nil {
			logger.Warn("a run would be refused on this page", zap.Error(err))
		}
	}

	doc, err := readPage(path, url)
	if err != nil {
		logger.Fatal("reading the page", zap.Error(err))
	}

	findings, err := autofill.New(p, config.Timing, logger).Inspect(doc)
	if err != nil {
		logger.Fatal("inspecting the page", zap.Error(err))
	}

	report(logger, url, findings)
}

func readPage(path, url string) (*htmldoc.Document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	return htmldoc.Parse(r, url)
}

// report prints findings and a per-verdict summary.
func report(logger *zap.Logger, url string, findings []autofill.Finding) {
	answered := 0
	for _, f := range findings {
		if f.Answer != "" {
			answered++
		}
	}

	// do not bother error since findings are plain strings
	pretty, _ := json.MarshalIndent(findings, "", "  ")
	logger.Info(fmt.Sprintf("page report: \n %s", pretty),
		zap.String("page_url", url),
		zap.Int("controls", len(findings)),
		zap.Int("answered", answered),
	)
}

package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/browser"
	"github.com/spigell/job-autofill/internal/fill"
	"github.com/spigell/job-autofill/internal/messaging"
	"github.com/spigell/job-autofill/internal/overlay"
	"github.com/spigell/job-autofill/internal/profile"
	"github.com/spigell/job-autofill/internal/secrets"
)

const (
	app        = "job-autofill"
	configName = "autofill"
)

type Config struct {
	Profile map[string]any `mapstructure:"profile"`
	Site    SiteConfig     `mapstructure:"site"`
	Browser browser.Config `mapstructure:"browser"`
	Timing  fill.Timing    `mapstructure:"timing"`
	Relay   RelayConfig    `mapstructure:"relay"`
}

type SiteConfig struct {
	Pattern string `mapstructure:"pattern"`
	Host    string `mapstructure:"host"`
}

type RelayConfig struct {
	Listen    string `mapstructure:"listen"`
	TokenFile string `mapstructure:"token-file"`
	// AllowedOrigins are the browser origins (e.g. an extension) that may
	// call the relay. Other web pages are refused.
	AllowedOrigins []string `mapstructure:"allowed-origins"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-autofill fills job application forms on careers pages from your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("relay.token-file", "AUTOFILL_RELAY_TOKEN_FILE"); err != nil {
		log.Fatalf("binding AUTOFILL_RELAY_TOKEN_FILE environment variable: %v", err)
	}

	viper.SetDefault("site.pattern", overlay.DefaultPattern)
	viper.SetDefault("site.host", overlay.DefaultHost)
	viper.SetDefault("relay.listen", messaging.DefaultListen)
	viper.SetDefault("browser.stealth", true)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is autofill.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// version does not need a config.
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Without a config file the built-in sample profile is used.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{Timing: fill.DefaultTiming()}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadProfile decodes the profile section. An absent section falls back to
// the built-in sample, which is only good for trying the tool out.
func loadProfile(config *Config, logger *zap.Logger) (*profile.Profile, error) {
	if len(config.Profile) == 0 {
		logger.Warn("no profile configured, using the built-in sample profile",
			zap.String("hint", "add a 'profile' section to autofill.yaml"),
		)
	}

	p, err := profile.Decode(config.Profile)
	if err != nil {
		return nil, err
	}

	logger.Debug("profile loaded", zap.String("name", p.DisplayName()))
	return p, nil
}

func newSite(config *Config) (*overlay.Site, error) {
	site, err := overlay.NewSite(config.Site.Pattern, config.Site.Host)
	if err != nil {
		return nil, fmt.Errorf("site pattern: %w", err)
	}
	return site, nil
}

// resolveToken returns the relay bearer token. No token file means the
// relay accepts unauthenticated requests from the loopback interface.
func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.Relay.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("relay.token-file"))
	}

	return secrets.LoadOptional(secrets.Source{
		Name: "relay token",
		File: tokenFile,
	})
}

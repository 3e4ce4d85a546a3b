package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/logging"
	"github.com/eringen/deckengine/present"
)

// settings is the merged result of defaults, config file, DECK_* env vars
// and flags, in increasing precedence.
type settings struct {
	Addr              string `mapstructure:"addr"`
	SiteURL           string `mapstructure:"site_url"`
	Deck              string `mapstructure:"deck"`
	HistoryPath       string `mapstructure:"history_path"`
	PresenterPassword string `mapstructure:"presenter_password"`
	SessionSecret     string `mapstructure:"session_secret"`
	CookieSecure      bool   `mapstructure:"cookie_secure"`
	Locale            string `mapstructure:"locale"`
	LogLevel          string `mapstructure:"log_level"`
	LogFormat         string `mapstructure:"log_format"`
	Watch             bool   `mapstructure:"watch"`
	Strict            bool   `mapstructure:"strict"`
	Slide             int    `mapstructure:"slide"`
}

var defaults = map[string]any{
	"addr":       ":3000",
	"site_url":   "http://localhost:3000",
	"locale":     "en",
	"log_level":  "info",
	"log_format": "json",
}

// flagKeys maps flag names to config keys. The presenter password and
// session secret are only read from the config file or the environment.
var flagKeys = map[string]string{
	"addr":          "addr",
	"site-url":      "site_url",
	"deck":          "deck",
	"history":       "history_path",
	"cookie-secure": "cookie_secure",
	"locale":        "locale",
	"log-level":     "log_level",
	"log-format":    "log_format",
	"watch":         "watch",
	"strict":        "strict",
	"slide":         "slide",
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deckengine",
		Short: "Present a slide deck in the browser or the terminal",
		Long: `deckengine loads a YAML slide deck, validates it and presents it.

serve    runs the web presenter; the audience follows over a websocket.
present  runs the same deck in the terminal.
init     writes the sample deck to start from.`,
		Version:      version,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (YAML)")
	pf.String("deck", "", "deck YAML file (default: built-in sample)")
	pf.Bool("strict", false, "reject unknown slide types instead of showing them as cards")
	pf.String("locale", "en", "fallback UI language")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "json", "log format (json, console)")

	cmd.AddCommand(
		newServeCmd(),
		newPresentCmd(),
		newValidateCmd(),
		newExportCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loadSettings reads configuration for cmd into a fresh viper instance.
func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return s, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("DECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"history_path", "presenter_password", "session_secret", "cookie_secure", "watch"} {
		if err := v.BindEnv(key); err != nil {
			return s, err
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			bindErr = errors.Join(bindErr, v.BindPFlag(key, f))
		}
	})
	if bindErr != nil {
		return s, bindErr
	}

	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("parse config: %w", err)
	}
	return s, nil
}

func (s settings) logger() (*zap.Logger, error) {
	return logging.New(s.LogLevel, s.LogFormat)
}

func (s settings) parseOptions() []deck.ParseOption {
	if s.Strict {
		return []deck.ParseOption{deck.Strict()}
	}
	return nil
}

// loadDeck reads the configured deck, or the built-in sample when none is
// configured.
func (s settings) loadDeck() (*deck.Deck, error) {
	if s.Deck == "" {
		return deck.Sample(), nil
	}
	return deck.Load(s.Deck, s.parseOptions()...)
}

// controller starts presenting d at the configured slide id, if any.
func (s settings) controller(d *deck.Deck) (*present.Controller, error) {
	ctrl := present.NewController(d)
	if s.Slide == 0 {
		return ctrl, nil
	}
	i := d.Index(s.Slide)
	if i < 0 {
		return nil, fmt.Errorf("no slide with id %d", s.Slide)
	}
	ctrl.Goto(i)
	return ctrl, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the deckengine version and UI languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := locale.New()
			if err != nil {
				return err
			}
			langs := b.Languages()
			slices.Sort(langs)
			fmt.Fprintf(cmd.OutOrStdout(), "deckengine %s\nlocales: %s\n", version, strings.Join(langs, ", "))
			return nil
		},
	}
}

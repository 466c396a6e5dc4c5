package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind             string
	countdownDelay   time.Duration
	hostPassword     string
	hostUsername     string
	port             int
	prefix           string
	profile          bool
	questionDuration int
	questionFile     string
	requireBothTeams bool
	teamPassword     string
	tlsCert          string
	tlsKey           string
	verbose          bool
	version          bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.hostUsername == "" || c.hostPassword == "" {
		return errors.New("host credentials must not be empty")
	}
	if c.teamPassword == "" {
		return errors.New("team password must not be empty")
	}
	if c.questionDuration < 1 {
		return fmt.Errorf("invalid question duration (must be at least 1 second): %d", c.questionDuration)
	}
	if c.countdownDelay < 0 {
		return fmt.Errorf("invalid countdown delay: %s", c.countdownDelay)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FEUD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "feud",
		Short:         "A self-hosted Family Feud-style trivia server for two competing teams.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: FEUD_BIND)")
	fs.DurationVar(&cfg.countdownDelay, "countdown-delay", 4*time.Second, "delay between game start and the first question (env: FEUD_COUNTDOWN_DELAY)")
	fs.StringVar(&cfg.hostPassword, "host-password", "host123", "password for the game host (env: FEUD_HOST_PASSWORD)")
	fs.StringVar(&cfg.hostUsername, "host-username", "gamehost", "username for the game host (env: FEUD_HOST_USERNAME)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: FEUD_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: FEUD_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: FEUD_PROFILE)")
	fs.IntVar(&cfg.questionDuration, "question-duration", 40, "seconds allotted to each question (env: FEUD_QUESTION_DURATION)")
	fs.StringVar(&cfg.questionFile, "questions", "", "path to a YAML question bank, overriding the built-in set (env: FEUD_QUESTIONS)")
	fs.BoolVar(&cfg.requireBothTeams, "require-both-teams", true, "require at least one participant per team before starting (env: FEUD_REQUIRE_BOTH_TEAMS)")
	fs.StringVar(&cfg.teamPassword, "team-password", "team123", "shared password for all participants (env: FEUD_TEAM_PASSWORD)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: FEUD_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: FEUD_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: FEUD_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: FEUD_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("feud v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

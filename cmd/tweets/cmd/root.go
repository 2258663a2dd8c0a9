package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tweetboard/internal/client"
	"tweetboard/internal/config"
	"tweetboard/internal/logging"
)

// options are shared by every subcommand.
type options struct {
	cfg      config.Config
	apiURL   string
	timeout  time.Duration
	format   string
	logLevel string

	logger *slog.Logger
}

func (o *options) client() *client.Client {
	return client.New(o.apiURL, client.WithTimeout(o.timeout), client.WithLogger(o.logger))
}

// NewRootCmd builds the command tree. Flag defaults come from the environment.
func NewRootCmd() *cobra.Command {
	o := &options{cfg: config.Load()}

	rootCmd := &cobra.Command{
		Use:   "tweets",
		Short: "Tweetboard client",
		Long: `tweets talks to the tweet REST API.

Lists are shown most recent first; tweets posted in the same minute are
sorted by author.

Examples:
  tweets list
  tweets post --author Alice --message "Hello"
  tweets search coffee --format json
  tweets web --port 4200`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch o.format {
			case "table", "json":
			default:
				return fmt.Errorf("unsupported output format %q. Use 'table' or 'json'", o.format)
			}
			// ログは標準エラーへ
			o.logger = logging.NewWithWriter(cmd.ErrOrStderr(), o.cfg.LogFormat, o.logLevel)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.apiURL, "api-url", o.cfg.APIBaseURL, "Base URL of the tweets resource")
	flags.DurationVar(&o.timeout, "timeout", o.cfg.ClientTimeout, "Per-request timeout")
	flags.StringVarP(&o.format, "format", "f", "table", "Output format (table, json)")
	flags.StringVar(&o.logLevel, "log-level", o.cfg.LogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newListCmd(o),
		newGetCmd(o),
		newPostCmd(o),
		newUpdateCmd(o),
		newDeleteCmd(o),
		newAuthorCmd(o),
		newSearchCmd(o),
		newWebCmd(o),
	)
	return rootCmd
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package cmd provides the command-line interface for jit.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danielolaszy/jit/internal/config"
	"github.com/danielolaszy/jit/internal/jira"
	"github.com/danielolaszy/jit/internal/logging"
	"github.com/danielolaszy/jit/internal/present"
	"github.com/danielolaszy/jit/internal/ticket"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is reported by --version.
var Version = "0.1.0"

// defaultLimit caps --my-tickets results when --limit is not given.
const defaultLimit = 10

type options struct {
	json      bool
	text      bool
	show      bool
	myTickets bool
	limit     int
	envFile   string
	noColor   bool
}

// mode picks the single-ticket view; --json wins over --text, which wins
// over --show.
func (o *options) mode() present.Mode {
	switch {
	case o.json:
		return present.ModeJSON
	case o.text:
		return present.ModeText
	case o.show:
		return present.ModeDetailed
	default:
		return present.ModeBrief
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "jit [ticket]",
		Short: "Look up JIRA tickets from the terminal",
		Long: `jit prints a JIRA ticket's key and summary, a detailed view of the ticket,
or a table of your tickets in the active sprint.

The ticket may be a key or a browse URL:
  jit RW-1931
  jit https://company.atlassian.net/browse/RW-1931 --show
  jit --my-tickets --limit 20

Credentials are read from JIRA_BASE_URL, JIRA_USER_EMAIL and JIRA_API_TOKEN
(or JIRA_PAT), taken from the environment, --env-file, ./.env,
~/.config/jit/.env or ~/.config/jit/config.yaml.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	addOutputFlags(cmd.Flags(), opts)
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a custom .env file")
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func addOutputFlags(fs *pflag.FlagSet, opts *options) {
	fs.BoolVar(&opts.json, "json", false, "output in JSON format")
	fs.BoolVar(&opts.text, "text", false, `output as plain text in format "KEY: Summary"`)
	fs.BoolVar(&opts.show, "show", false, "show detailed information about a ticket")
	fs.BoolVar(&opts.myTickets, "my-tickets", false, "display your current sprint tickets in a table")
	fs.IntVar(&opts.limit, "limit", defaultLimit, "maximum number of tickets to retrieve")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.noColor {
		color.NoColor = true
	}

	if !opts.myTickets && len(args) == 0 {
		return errors.New("either provide a ticket ID or use --my-tickets")
	}
	if opts.myTickets && opts.limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", opts.limit)
	}

	var key string
	if !opts.myTickets {
		var err error
		key, err = ticket.Resolve(args[0])
		if err != nil {
			return err
		}
		logging.Debug("resolved ticket", "input", args[0], "key", key)
	}

	cfg, err := loadConfig(opts.envFile, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	client, err := jira.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize jira client: %w", err)
	}

	presenter := present.New(cmd.OutOrStdout())
	ctx := cmd.Context()

	if opts.myTickets {
		issues, err := client.SearchMyActiveSprintIssues(ctx, opts.limit)
		if err != nil {
			return err
		}
		logging.Info("fetched sprint tickets", "count", len(issues))
		return presenter.SprintTable(issues)
	}

	issue, err := client.FetchIssue(ctx, key)
	if err != nil {
		return err
	}
	logging.Info("fetched ticket", "key", issue.Key, "mode", opts.mode())
	return presenter.Issue(opts.mode(), issue)
}

// loadConfig resolves and validates configuration. On a first run without a
// config directory it creates ~/.config/jit and explains what to put there.
func loadConfig(envFile string, stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			if created, dirErr := config.EnsureDir(home); dirErr == nil && created {
				printSetupHint(stderr, config.Dir(home))
			}
		}
		return nil, fmt.Errorf("invalid config: %w\nRun 'jit config' to set up credentials", err)
	}

	return cfg, nil
}

func printSetupHint(w io.Writer, dir string) {
	fmt.Fprintf(w, "No configuration found. Created directory at: %s\n", dir)
	fmt.Fprintln(w, "Please create a .env file in this directory with your JIRA credentials:")
	fmt.Fprintln(w, "  JIRA_BASE_URL=https://your-company.atlassian.net")
	fmt.Fprintln(w, "  JIRA_API_TOKEN=your_api_token_here")
	fmt.Fprintln(w, "  JIRA_USER_EMAIL=your_email@example.com")
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

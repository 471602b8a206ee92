package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njt/zermelo/internal/dateparse"
	"github.com/njt/zermelo/internal/logging"
	"github.com/njt/zermelo/internal/output"
	"github.com/njt/zermelo/internal/plugin"
	"github.com/njt/zermelo/internal/session"
	"github.com/njt/zermelo/internal/settings"
	"github.com/njt/zermelo/libzermelo"
)

const version = "0.3.0"

// app holds the process-level collaborators of a run.
type app struct {
	stdout       io.Writer
	stderr       io.Writer
	now          func() time.Time
	loadSettings func() (settings.Settings, error)
	newLogger    func(env string, verbose bool) (*zap.Logger, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:       stdout,
		stderr:       stderr,
		now:          time.Now,
		loadSettings: settings.Load,
		newLogger:    logging.New,
	}
}

// options are the values of the root command's flags.
type options struct {
	authCode    string
	accessToken string
	school      string
	configPath  string

	hideCancelled bool
	showInvalid   bool

	tomorrow  bool
	yesterday bool
	future    string
	past      string
	date      string

	json    bool
	noColor bool
	verbose bool
	timeout time.Duration
}

func (o *options) credentials() session.Input {
	return session.Input{
		ConfigPath:  o.configPath,
		AuthCode:    o.authCode,
		AccessToken: o.accessToken,
		School:      o.school,
	}
}

func (o *options) selector() dateparse.Selector {
	return dateparse.Selector{
		Tomorrow:  o.tomorrow,
		Yesterday: o.yesterday,
		Future:    o.future,
		Past:      o.past,
		Date:      o.date,
	}
}

func (o *options) filter() output.Filter {
	return output.Filter{
		HideCancelled: o.hideCancelled,
		ShowInvalid:   o.showInvalid,
	}
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "zermelo",
		Short: "Show your schedule from Zermelo",
		Long: `zermelo is a command line application that shows you your schedule from Zermelo.

Authenticate once with the code found in the Zermelo Portal (Koppelingen -> Koppel App)
and your school identifier, or keep both in a config file:

  school = "myschool"

  [temp]
  auth_code = "123456789012"

The code is exchanged for an access token on first use and the token is stored in the file.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("timeout") && opts.timeout <= 0 {
				return fmt.Errorf("--timeout must be positive")
			}
			return a.run(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.authCode, "auth", "u", "", "Authenticate with your code found in the Zermelo Portal (Koppelingen -> Koppel App). School has to be set.")
	flags.StringVarP(&opts.accessToken, "access_token", "a", "", "The access token retrieved with your authentication code.")
	flags.StringVarP(&opts.school, "school", "s", "", "The school identifier found in the Zermelo Portal (Koppelingen -> Koppel App).")
	flags.StringVarP(&opts.configPath, "config", "c", "", "The location of the config file.")
	flags.BoolVarP(&opts.hideCancelled, "hide_cancelled", "h", false, "Do not display cancelled appointments.")
	flags.BoolVarP(&opts.showInvalid, "show_invalid", "i", false, "Show invalid appointments. These will be displayed in red.")
	flags.BoolVarP(&opts.tomorrow, "tomorrow", "t", false, "Display tomorrow's schedule.")
	flags.BoolVarP(&opts.yesterday, "yesterday", "y", false, "Display yesterday's schedule.")
	flags.StringVarP(&opts.future, "future", "f", "", "Display schedule from n days in the future.")
	flags.StringVarP(&opts.past, "past", "p", "", "Display schedule from n days in the past.")
	flags.StringVarP(&opts.date, "date", "d", "", "Display the schedule of a date (e.g. 2025-01-20, monday, in 3 days).")
	flags.BoolVar(&opts.json, "json", false, "Output as JSON")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Timeout for each request to the portal (default from ZERMELO_TIMEOUT or 30s)")

	rootCmd.AddCommand(newPluginsCmd(a))

	return rootCmd
}

func newPluginsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List available plugins",
		Long:  `List all available ` + plugin.Prefix + `* plugins in PATH`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugins, err := plugin.ListPlugins()
			if err != nil {
				return fmt.Errorf("failed to list plugins: %w", err)
			}

			if len(plugins) == 0 {
				fmt.Fprintln(a.stdout, "No plugins found in PATH")
				return nil
			}

			fmt.Fprintln(a.stdout, "Available plugins:")
			for _, p := range plugins {
				fmt.Fprintf(a.stdout, "  - %s\n", p)
			}

			return nil
		},
	}
}

// run resolves credentials, fetches the selected day and prints it.
func (a *app) run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := a.loadSettings()
	if err != nil {
		return err
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}

	logger, err := a.newLogger(cfg.Environment, opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	creds, err := session.Resolve(opts.credentials())
	if err != nil {
		return err
	}
	logger.Debug("resolved credentials",
		zap.Stringer("source", creds.Source),
		zap.String("school", creds.School))

	client := libzermelo.NewClient(
		libzermelo.WithBaseURL(cfg.APIURL),
		libzermelo.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)

	authCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	sess, err := session.NewBootstrapper(client, a.stdout, logger).Session(authCtx, creds)
	cancel()
	if err != nil {
		return err
	}

	start, end, err := dateparse.Range(a.now(), opts.selector())
	if err != nil {
		return err
	}
	logger.Debug("fetching appointments",
		zap.Time("start", start),
		zap.Time("end", end))

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	appointments, err := client.Appointments(fetchCtx, sess, start, end)
	if err != nil {
		return err
	}
	logger.Debug("fetched appointments", zap.Int("count", len(appointments)))

	if opts.json {
		return output.WriteJSON(a.stdout, output.FormatScheduleResponse(start, end, appointments, opts.filter()))
	}

	if len(appointments) == 0 {
		fmt.Fprintln(a.stdout, "No appointments found. Go have some fun!")
		return nil
	}

	printer := output.NewPrinter(a.stdout, output.PrinterOptions{
		Filter:  opts.filter(),
		NoColor: opts.noColor,
	}, logger)
	printed := printer.PrintAll(appointments)
	logger.Debug("printed appointments", zap.Int("printed", printed), zap.Int("hidden_or_failed", len(appointments)-printed))

	return nil
}

// Package cli implements the semantria command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kroma-labs/semantria-go/httpclient"
	"github.com/kroma-labs/semantria-go/semantria"
)

var (
	okLabel    = color.New(color.FgGreen)
	errorLabel = color.New(color.FgRed)
	keyLabel   = color.New(color.FgCyan)
)

// rootOptions holds the global flags and the environment lookup shared by
// every command.
type rootOptions struct {
	format     string
	app        string
	host       string
	debug      bool
	jsonOutput bool

	getenv func(string) string
	// extra is appended to the session options; tests use it to inject a
	// mock transport.
	extra []semantria.Option
}

// NewRootCommand builds the command tree. Credentials come from
// SEMANTRIA_KEY and SEMANTRIA_SECRET, read after loading .env from the
// working directory.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{getenv: os.Getenv})
}

func newRootCommand(o *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "semantria [command] [flags]",
		Short: "Semantria CLI - queue text for analysis and read the results",
		Long: `Semantria CLI is a thin command line front end for the Semantria
text analytics API.

Credentials are read from SEMANTRIA_KEY and SEMANTRIA_SECRET. A .env file in
the working directory is loaded first if present.

Examples:
  # Check the service
  semantria status

  # Queue a document and wait for its analysis
  semantria queue-document --text "The food was great" --wait

  # Fetch results in XML
  semantria get-document 42 --format xml`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			loadDotEnv()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.format, "format", "", "Wire format: json or xml (default $SEMANTRIA_FORMAT or json)")
	flags.StringVar(&o.app, "app", "", "Application name sent in x-app-name (default $SEMANTRIA_APP)")
	flags.StringVar(&o.host, "host", "", "API host (default $SEMANTRIA_HOST or "+semantria.DefaultHost+")")
	flags.BoolVar(&o.debug, "debug", false, "Log requests and responses to stderr")
	flags.BoolVarP(&o.jsonOutput, "json", "j", false, "Print the response as JSON")

	root.AddCommand(
		newVersionCmd(),
		newStatusCmd(o),
		newFeaturesCmd(o),
		newSubscriptionCmd(o),
		newStatisticsCmd(o),
		newConfigurationsCmd(o),
		newQueueDocumentCmd(o),
		newGetDocumentCmd(o),
		newCancelDocumentCmd(o),
		newProcessedDocumentsCmd(o),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// printError writes err in red, with the response status for API errors.
func printError(w io.Writer, err error) {
	var apiErr *semantria.APIError
	if errors.As(err, &apiErr) {
		errorLabel.Fprintf(w, "Error: %s failed with HTTP %d %s\n",
			apiErr.Op, apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
		if len(apiErr.Body) > 0 {
			fmt.Fprintln(w, string(apiErr.Body))
		}
		return
	}
	errorLabel.Fprintf(w, "Error: %v\n", err)
}

// session builds a Session from flags and environment. Flags win over the
// environment.
func (o *rootOptions) session(cmd *cobra.Command) (*semantria.Session, error) {
	formatName := o.format
	if formatName == "" {
		formatName = o.getenv(envFormat)
	}
	format, err := semantria.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	app := o.app
	if app == "" {
		app = o.getenv(envApp)
	}
	host := o.host
	if host == "" {
		host = o.getenv(envHost)
	}

	opts := []semantria.Option{
		semantria.WithFormat(format),
		semantria.WithApplicationName(app),
	}
	if host != "" {
		opts = append(opts, semantria.WithHost(host))
	}
	if o.debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		opts = append(opts,
			semantria.WithLogger(logger),
			semantria.WithHTTPOptions(
				httpclient.WithDebug(true),
				httpclient.WithLogger(logger),
			),
		)
	}
	opts = append(opts, o.extra...)

	return semantria.New(o.getenv(envKey), o.getenv(envSecret), opts...)
}

// run builds a session, executes the call returned by build and prints the
// result.
func (o *rootOptions) run(cmd *cobra.Command, build func(*semantria.Session) *semantria.Call) error {
	s, err := o.session(cmd)
	if err != nil {
		return err
	}

	res, err := build(s).Do(cmd.Context())
	if err != nil {
		return err
	}
	return o.print(cmd.OutOrStdout(), res)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "semantria CLI %s (API %s)\n",
				semantria.SDKVersion, semantria.DefaultAPIVersion)
		},
	}
}

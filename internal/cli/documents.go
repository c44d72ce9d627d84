package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kroma-labs/semantria-go/semantria"
)

// Document states reported by the service.
const (
	statusProcessed = "PROCESSED"
	statusFailed    = "FAILED"
)

var errDocumentFailed = errors.New("document analysis failed")

func newQueueDocumentCmd(o *rootOptions) *cobra.Command {
	var (
		doc      semantria.Document
		configID string
		wait     bool
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "queue-document",
		Short: "Queue a document for analysis",
		Long: `Queue a single document for analysis. Without --id a random id is used.
With --wait the command polls until the document is processed.

Examples:
  semantria queue-document --text "The food was great"
  semantria queue-document --id 42 --text "Slow service" --config my-config --wait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if doc.ID == "" {
				doc.ID = uuid.NewString()
			}
			if wait && interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			s, err := o.session(cmd)
			if err != nil {
				return err
			}

			res, err := s.QueueDocument(doc, configID).Do(cmd.Context())
			if err != nil {
				return err
			}
			if !wait {
				okLabel.Fprintf(cmd.OutOrStdout(), "Queued document %s (%d)\n", doc.ID, res.StatusCode)
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			processed, err := pollDocument(ctx, s, doc.ID, configID, interval)
			if err != nil {
				return err
			}
			return o.print(cmd.OutOrStdout(), processed)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&doc.ID, "id", "", "Document id (default random)")
	flags.StringVarP(&doc.Text, "text", "t", "", "Text to analyze")
	flags.StringVar(&doc.Tag, "tag", "", "Tag stored with the document")
	flags.StringVarP(&configID, "config", "c", "", "Configuration id")
	flags.BoolVarP(&wait, "wait", "w", false, "Wait for the analysis and print it")
	flags.DurationVar(&interval, "interval", 2*time.Second, "Polling interval for --wait")
	flags.DurationVar(&timeout, "timeout", 2*time.Minute, "Give up waiting after this long")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

// pollDocument fetches the document until the service reports it processed
// or failed, or ctx ends.
func pollDocument(
	ctx context.Context,
	s *semantria.Session,
	id, configID string,
	interval time.Duration,
) (*semantria.Result, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := s.GetDocument(id, configID).Do(ctx)
		if err != nil {
			return nil, err
		}

		status, _ := res.Map()["status"].(string)
		switch strings.ToUpper(status) {
		case statusProcessed:
			return res, nil
		case statusFailed:
			return nil, fmt.Errorf("%w: %s", errDocumentFailed, id)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for document %s: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}

func newGetDocumentCmd(o *rootOptions) *cobra.Command {
	var configID string

	cmd := &cobra.Command{
		Use:   "get-document <id>",
		Short: "Show the analysis of one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(s *semantria.Session) *semantria.Call {
				return s.GetDocument(args[0], configID)
			})
		},
	}
	cmd.Flags().StringVarP(&configID, "config", "c", "", "Configuration id")

	return cmd
}

func newCancelDocumentCmd(o *rootOptions) *cobra.Command {
	var configID string

	cmd := &cobra.Command{
		Use:   "cancel-document <id>",
		Short: "Cancel a queued document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(s *semantria.Session) *semantria.Call {
				return s.CancelDocument(args[0], configID)
			})
		},
	}
	cmd.Flags().StringVarP(&configID, "config", "c", "", "Configuration id")

	return cmd
}

func newProcessedDocumentsCmd(o *rootOptions) *cobra.Command {
	var configID, jobID string

	cmd := &cobra.Command{
		Use:   "processed-documents",
		Short: "Fetch documents whose analysis is ready",
		Long: `Fetch documents whose analysis is ready. The service hands out each
result once.

Examples:
  semantria processed-documents --config my-config
  semantria processed-documents --job nightly-import`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, func(s *semantria.Session) *semantria.Call {
				if jobID != "" {
					return s.GetProcessedDocumentsByJobID(jobID)
				}
				return s.GetProcessedDocuments(configID)
			})
		},
	}
	cmd.Flags().StringVarP(&configID, "config", "c", "", "Configuration id")
	cmd.Flags().StringVar(&jobID, "job", "", "Job id")
	cmd.MarkFlagsMutuallyExclusive("config", "job")

	return cmd
}

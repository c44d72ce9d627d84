package cli

import (
	"github.com/spf13/cobra"

	"github.com/kroma-labs/semantria-go/semantria"
)

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show service status",
		Long: `Show the service status, including the API version and the languages
available for analysis.

Examples:
  semantria status
  semantria status -j`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, (*semantria.Session).GetStatus)
		},
	}
}

func newFeaturesCmd(o *rootOptions) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List supported features per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, func(s *semantria.Session) *semantria.Call {
				return s.GetSupportedFeatures(language)
			})
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "Restrict the list to one language")

	return cmd
}

func newSubscriptionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "subscription",
		Short: "Show subscription limits and billing settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, (*semantria.Session).GetSubscription)
		},
	}
}

func newStatisticsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "statistics",
		Short: "Show usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, (*semantria.Session).GetStatistics)
		},
	}
}

func newConfigurationsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "configurations",
		Aliases: []string{"configs"},
		Short:   "List analysis configurations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, (*semantria.Session).GetConfigurations)
		},
	}
}

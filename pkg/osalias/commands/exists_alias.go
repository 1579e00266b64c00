package commands

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rancher/opni-osalias/pkg/metrics"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch/api"
	"github.com/spf13/cobra"
)

// ErrAliasMissing is returned by exists-alias --exit-code when the alias
// does not exist.
var ErrAliasMissing = errors.New("alias does not exist")

func BuildExistsAliasCmd(clientFlags *ClientFlags) *cobra.Command {
	var (
		indices           []string
		names             []string
		ignoreUnavailable bool
		allowNoIndices    bool
		expandWildcards   []string
		ignoreIndices     string
		printMetrics      bool
		exitCode          bool
	)
	existsAliasCmd := &cobra.Command{
		Use:   "exists-alias",
		Short: "Check whether one or more index aliases exist",
		Long: `Sends HEAD /{index}/_alias/{name} and prints "true" if the cluster
reports the aliases exist, "false" otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker := metrics.NewAliasCheckTracker(nil)
			registry := prometheus.NewRegistry()
			registry.MustRegister(tracker.MetricsCollectors()...)

			client, lg, err := clientFlags.NewClient(cmd, opensearch.WithAliasObserver(tracker))
			if err != nil {
				return err
			}
			defer lg.Sync()

			options := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("ignore-unavailable") {
				options["ignore_unavailable"] = ignoreUnavailable
			}
			if flags.Changed("allow-no-indices") {
				options["allow_no_indices"] = allowNoIndices
			}
			if flags.Changed("expand-wildcards") {
				options["expand_wildcards"] = expandWildcards
			}
			if flags.Changed("ignore-indices") {
				lg.Warn("--ignore-indices is deprecated, use --ignore-unavailable")
				options["ignore_indices"] = ignoreIndices
			}

			exists, err := client.Indices.ExistsAlias(cmd.Context(), api.ExistsAliasRequest{
				Index:   indices,
				Name:    names,
				Options: options,
			})
			if printMetrics {
				if merr := writeMetrics(cmd, registry); merr != nil {
					lg.With("error", merr).Warn("failed to write metrics")
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), exists)
			if exitCode && !exists {
				return ErrAliasMissing
			}
			return nil
		},
	}
	existsAliasCmd.Flags().StringSliceVarP(&indices, "index", "i", nil, "Index names to filter aliases")
	existsAliasCmd.Flags().StringSliceVarP(&names, "name", "n", nil, "Alias names to check (required)")
	existsAliasCmd.Flags().BoolVar(&ignoreUnavailable, "ignore-unavailable", false, "Ignore unavailable (missing or closed) indices")
	existsAliasCmd.Flags().BoolVar(&allowNoIndices, "allow-no-indices", false, "Ignore wildcard expressions that resolve to no concrete indices")
	existsAliasCmd.Flags().StringSliceVar(&expandWildcards, "expand-wildcards", nil, "Expand wildcards to open and/or closed indices (open|closed)")
	existsAliasCmd.Flags().StringVar(&ignoreIndices, "ignore-indices", "", "Deprecated: ignore missing indices (none|missing)")
	existsAliasCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print collected metrics to stderr")
	existsAliasCmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 if the alias does not exist")
	return existsAliasCmd
}

func writeMetrics(cmd *cobra.Command, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(cmd.ErrOrStderr(), expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

package commands

import (
	"fmt"
	"io"
	"os"

	"emperror.dev/errors"
	"github.com/spf13/cobra"
)

func BuildUpdateAliasCmd(clientFlags *ClientFlags) *cobra.Command {
	var file string
	updateAliasCmd := &cobra.Command{
		Use:   "update-alias",
		Short: "Apply alias actions with POST /_aliases",
		Long: `Reads a JSON body of alias actions from a file, or stdin when the
file is "-", and posts it to /_aliases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body io.Reader
			if file == "-" {
				body = cmd.InOrStdin()
			} else {
				f, err := os.Open(file)
				if err != nil {
					return errors.Wrap(err, "failed to read alias actions")
				}
				defer f.Close()
				body = f
			}

			client, lg, err := clientFlags.NewClient(cmd)
			if err != nil {
				return err
			}
			defer lg.Sync()

			resp, err := client.Indices.UpdateAlias(cmd.Context(), body)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.IsError() {
				return fmt.Errorf("failed to update aliases: %s", resp.String())
			}
			lg.Infow("aliases updated", "status", resp.StatusCode)
			return nil
		},
	}
	updateAliasCmd.Flags().StringVarP(&file, "file", "f", "-", "File containing the alias actions, or - for stdin")
	return updateAliasCmd
}

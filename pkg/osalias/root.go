package osalias

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"
	"github.com/rancher/opni-osalias/pkg/osalias/commands"
	"github.com/spf13/cobra"
)

func BuildRootCmd() *cobra.Command {
	clientFlags := &commands.ClientFlags{}
	rootCmd := &cobra.Command{
		Use:           "opni-osalias",
		Short:         "Query index aliases on an Opensearch cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.ConfigureClientCommand(rootCmd, clientFlags)

	rootCmd.AddCommand(commands.BuildExistsAliasCmd(clientFlags))
	rootCmd.AddCommand(commands.BuildUpdateAliasCmd(clientFlags))
	rootCmd.AddCommand(commands.BuildVersionCmd())

	return rootCmd
}

func Execute() {
	ctx, ca := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := BuildRootCmd().ExecuteContext(ctx)
	ca()
	if err != nil {
		if !errors.Is(err, commands.ErrAliasMissing) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

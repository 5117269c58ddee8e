// Command enwctl runs operational tasks against the ENW storage: seeding,
// index maintenance, duplicate reports, admin credentials and exports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "enwctl",
		Short:         "Operations CLI for the ENW backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("driver", "", "Storage driver override (mongo, postgres, memory)")

	root.AddCommand(
		newSeedCmd(),
		newIndexesCmd(),
		newDuplicatesCmd(),
		newTokenCmd(),
		newHashKeyCmd(),
		newExportCmd(),
	)
	return root
}

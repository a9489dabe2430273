package commands

import "github.com/spf13/cobra"

// verboseFlag reads the value of the root --verbose flag from any command.
func verboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}

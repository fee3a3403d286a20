package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a configuration binds cleanly",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := bind()
		if err != nil {
			return err
		}
		defer rt.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d stores, %d validation operators\n",
			rt.Registry.Len(), len(rt.Operators))
		return nil
	},
}

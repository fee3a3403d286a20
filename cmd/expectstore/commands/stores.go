package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List the registered stores and their layouts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := bind()
		if err != nil {
			return err
		}
		defer rt.Close()

		for _, name := range rt.Registry.Names() {
			s, err := rt.Registry.Resolve(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tarity=%d\tpolicy=%s\n", name, s.Arity(), s.Policy())
		}
		return nil
	},
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/expectstore/core"
)

var showCmd = &cobra.Command{
	Use:   "show STORE SEGMENT...",
	Short: "Load and print one artifact by store name and key segments",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bind()
		if err != nil {
			return err
		}
		defer rt.Close()

		s, err := rt.Registry.Resolve(args[0])
		if err != nil {
			return err
		}

		key := core.NewStoreKey(args[1:]...)
		var doc map[string]any
		if err := s.Load(cmd.Context(), key, &doc); err != nil {
			return err
		}

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

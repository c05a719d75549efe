package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serenity-circle/serenity/internal/wellness"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default support groups and announcements",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SeedDefaults(ctx, wellness.GroupSeeds()); err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}
		groups, err := st.Groups().List(ctx)
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		for _, g := range groups {
			fmt.Fprintf(cmd.OutOrStdout(), "%-4d %-8s %s\n", g.ID, g.Category, g.Name)
		}
		return nil
	},
}

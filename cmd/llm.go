package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/serenity-circle/serenity/internal/llm"
	"github.com/serenity-circle/serenity/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.LLMRequests(cmd.Context(), purpose, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM calls recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-5s  %-19s  %-12s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(w, strings.Repeat("─", 110))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Fprintf(w, "%-5d  %-19s  %-12s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Provider,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of calls to show")
	llmListCmd.Flags().String("purpose", "", "Only show calls with this purpose, e.g. "+llm.PurposeAffirmation)
	llmCmd.AddCommand(llmListCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/serenity-circle/serenity/internal/assessment"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questionnaire",
	Run: func(cmd *cobra.Command, args []string) {
		weights, _ := cmd.Flags().GetBool("weights")
		w := cmd.OutOrStdout()

		for _, q := range assessment.Questions() {
			fmt.Fprintf(w, "%d. %s\n", q.ID, q.Prompt)
			for i, o := range q.Options {
				fmt.Fprintf(w, "   [%d] %s", i, o.Text)
				if weights {
					parts := make([]string, len(o.Weights))
					for j, wt := range o.Weights {
						parts[j] = fmt.Sprintf("%s+%d", wt.Category, wt.Points)
					}
					fmt.Fprintf(w, "  (%s)", strings.Join(parts, " "))
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w)
		}
	},
}

func init() {
	questionsCmd.Flags().Bool("weights", false, "Show the category weights of each option")
}

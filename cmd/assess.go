package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/tui"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take the questionnaire in the terminal",
	Long: "Take the questionnaire and see which community you match.\n" +
		"With --answers the questionnaire is skipped, e.g. --answers 0,2,1,3,0,0,2,1.",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("answers")

		var responses []assessment.Response
		if raw != "" {
			var err error
			if responses, err = parseAnswers(raw); err != nil {
				return err
			}
		} else {
			res, err := tui.Run(cmd.Context())
			if err != nil {
				return err
			}
			if !res.Completed {
				fmt.Fprintln(cmd.ErrOrStderr(), "Questionnaire not finished.")
				return nil
			}
			responses = res.Responses()
		}

		printOutcome(cmd.OutOrStdout(), assessment.Classify(responses))
		return nil
	},
}

func init() {
	assessCmd.Flags().String("answers", "", "Comma-separated option indexes (0-based), one per question in order")
}

// parseAnswers reads one option index per question, in bank order.
func parseAnswers(raw string) ([]assessment.Response, error) {
	parts := strings.Split(raw, ",")
	qs := assessment.Questions()
	if len(parts) != len(qs) {
		return nil, fmt.Errorf("--answers: got %d answers, want %d", len(parts), len(qs))
	}
	out := make([]assessment.Response, len(qs))
	for i, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("--answers: answer %d: %w", i+1, err)
		}
		out[i] = assessment.Response{QuestionID: qs[i].ID, SelectedOption: idx}
	}
	return out, nil
}

func printOutcome(w io.Writer, c assessment.Category) {
	p := assessment.Profile(c)
	in := assessment.Insight(c)

	fmt.Fprintf(w, "%s  %s (%s)\n\n", p.Emoji, p.Name, p.Category)
	fmt.Fprintf(w, "%s\n\n", p.Description)
	fmt.Fprintf(w, "Traits:        %s\n", strings.Join(p.Traits, ", "))
	fmt.Fprintf(w, "Support focus: %s\n", p.SupportFocus)
	fmt.Fprintf(w, "Group:         %s\n", assessment.GroupName(c))

	fmt.Fprintln(w, "\nThings to watch for:")
	for _, s := range in.PotentialConcerns {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	fmt.Fprintln(w, "\nResources:")
	for _, s := range in.RecommendedResources {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	fmt.Fprintf(w, "\nReach out for help if: %s\n", in.WarningSigns)
}

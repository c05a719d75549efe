package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/llm"
	"github.com/serenity-circle/serenity/internal/store"
)

// execute runs the command tree with args against an isolated working and
// config directory and returns what it printed.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERENITY_DB", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "serenity.db")
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"0,1,2,3,0,1,2,3", false},
		{" 2, 2 ,2,2,2,2,2,2", false},
		{"0,1,2", true},
		{"0,1,2,3,0,1,2,x", true},
	}
	for _, tt := range tests {
		got, err := parseAnswers(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAnswers(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && len(got) != assessment.QuestionCount() {
			t.Errorf("parseAnswers(%q) returned %d responses", tt.raw, len(got))
		}
	}
}

func TestAssessWithAnswers(t *testing.T) {
	got := execute(t, "assess", "--db", tempDB(t), "--answers", "2,2,2,2,2,2,2,2")
	if want := assessment.GroupName(assessment.CategoryGreen); !strings.Contains(got, want) {
		t.Errorf("output missing %q:\n%s", want, got)
	}
	if want := assessment.Profile(assessment.CategoryGreen).Name; !strings.Contains(got, want) {
		t.Errorf("output missing %q", want)
	}
}

func TestQuestions(t *testing.T) {
	first := assessment.Questions()[0]
	weight := first.Options[0].Weights[0]
	tagged := string(weight.Category) + "+" + strconv.Itoa(weight.Points)

	tests := []struct {
		name        string
		args        []string
		wantWeights bool
	}{
		{"plain", []string{"questions", "--weights=false"}, false},
		{"weights", []string{"questions", "--weights"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := execute(t, tt.args...)
			for _, q := range assessment.Questions() {
				if !strings.Contains(got, q.Prompt) {
					t.Errorf("output missing question %d", q.ID)
				}
			}
			if !strings.Contains(got, first.Options[3].Text) {
				t.Errorf("output missing option %q", first.Options[3].Text)
			}
			if has := strings.Contains(got, tagged); has != tt.wantWeights {
				t.Errorf("weights shown = %v, want %v", has, tt.wantWeights)
			}
		})
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := tempDB(t)
	first := execute(t, "seed", "--db", db)
	second := execute(t, "seed", "--db", db)

	for _, c := range assessment.AllCategories() {
		if want := assessment.GroupName(c); !strings.Contains(second, want) {
			t.Errorf("output missing group %q", want)
		}
	}
	if first != second {
		t.Errorf("second seed changed the groups:\n%s\nvs\n%s", first, second)
	}

	st, err := store.Open(db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()
	groups, err := st.Groups().List(context.Background())
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != len(assessment.AllCategories()) {
		t.Errorf("got %d groups, want %d", len(groups), len(assessment.AllCategories()))
	}
	n, err := st.Announcements().Count(context.Background())
	if err != nil {
		t.Fatalf("count announcements: %v", err)
	}
	if n != 3 {
		t.Errorf("got %d announcements, want 3", n)
	}
}

func TestLLMList(t *testing.T) {
	db := tempDB(t)
	st, err := store.Open(db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	events := []store.LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku", Purpose: llm.PurposeAffirmation, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := st.EventRepo().AppendLLMRequest(context.Background(), e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	st.Close()

	tests := []struct {
		name    string
		purpose string
		want    []string
		notWant []string
	}{
		{"all", "", []string{"claude-haiku", "gpt-4o-mini", "rate limited"}, nil},
		{"affirmation", llm.PurposeAffirmation, []string{"claude-haiku"}, []string{"gpt-4o-mini"}},
		{"unknown", "nothing", []string{"No LLM calls recorded."}, []string{"claude-haiku"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := execute(t, "llm", "list", "--db", db, "--purpose", tt.purpose)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

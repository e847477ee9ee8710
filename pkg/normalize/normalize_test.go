package normalize

import (
	"reflect"
	"testing"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTokens []string
	}{
		{
			name:       "command shaped strips verb",
			input:      "open the links panel",
			wantTokens: []string{"links", "panel"},
		},
		{
			name:       "plain noun keeps everything",
			input:      "links panel",
			wantTokens: []string{"links", "panel"},
		},
		{
			name:       "lone verb survives",
			input:      "open",
			wantTokens: []string{"open"},
		},
		{
			name:       "stopwords and punctuation dropped",
			input:      "Can you open my Settings, please?",
			wantTokens: []string{"settings"},
		},
		{
			name:       "question keeps nouns",
			input:      "what is workspace",
			wantTokens: []string{"workspace"},
		},
		{
			name:       "verb mid-sentence stripped when others present",
			input:      "please show settings",
			wantTokens: []string{"settings"},
		},
		{
			name:       "empty input",
			input:      "   ",
			wantTokens: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(tt.input)
			if !reflect.DeepEqual(got.Tokens, tt.wantTokens) {
				t.Errorf("Query(%q).Tokens = %v, want %v", tt.input, got.Tokens, tt.wantTokens)
			}
			if got.Raw != tt.input {
				t.Errorf("Query(%q).Raw = %q, want original input", tt.input, got.Raw)
			}
		})
	}
}

func TestLabelKeepsVerbs(t *testing.T) {
	got := Label("Launch Settings")
	want := []string{"launch", "settings"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Label = %v, want %v", got, want)
	}
}

func TestStartsWithVerb(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"open links", true},
		{"Open the workspace", true},
		{"workspace", false},
		{"what is workspace", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := StartsWithVerb(tt.input); got != tt.want {
			t.Errorf("StartsWithVerb(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHasTrailingQuestion(t *testing.T) {
	if !HasTrailingQuestion("workspace?  ") {
		t.Error("expected trailing question detected")
	}
	if HasTrailingQuestion("workspace") {
		t.Error("expected no trailing question")
	}
}

func TestIsQuestionFramed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"what is workspace", true},
		{"What's the links panel", true},
		{"how does the workspace work", true},
		{"tell me about badges", true},
		{"workspace?", false},
		{"open workspace", false},
	}
	for _, tt := range tests {
		if got := IsQuestionFramed(tt.input); got != tt.want {
			t.Errorf("IsQuestionFramed(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{name: "plain answer", input: "value\n", want: "value"},
		{name: "answer is trimmed", input: "  value  \n", want: "value"},
		{name: "empty answer keeps nothing", input: "\n", want: ""},
		{name: "answer without trailing newline", input: "value", want: "value"},
		{name: "current value shown but not forced", input: "other\n", current: "existing", want: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Ask("Key", tt.current)
			if err != nil {
				t.Fatalf("Ask() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Ask() = %q, want %q", got, tt.want)
			}
			if tt.current != "" && !strings.Contains(out.String(), tt.current) {
				t.Errorf("prompt output %q does not show current value", out.String())
			}
		})
	}
}

func TestAskMaskedWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("sk-secret\n"), &out)

	got, err := p.AskMasked("API key", "sk-...23")
	if err != nil {
		t.Fatalf("AskMasked() failed: %v", err)
	}
	if got != "sk-secret" {
		t.Errorf("AskMasked() = %q, want %q", got, "sk-secret")
	}
	// The full secret must never appear in the prompt itself
	if strings.Contains(out.String(), "sk-secret") {
		t.Error("prompt output leaked the entered secret")
	}
}

func TestAskList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two values then terminator",
			input: "https://github.com/a/one.git\nhttps://github.com/a/two.git\n\n",
			want:  []string{"https://github.com/a/one.git", "https://github.com/a/two.git"},
		},
		{
			name:  "immediate empty line yields nothing",
			input: "\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.AskList("Repositories")
			if err != nil {
				t.Fatalf("AskList() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("AskList() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("value %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMenu(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("2\n"), &out)

	answer, err := p.Menu("Choose a repository", []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Menu() failed: %v", err)
	}
	if answer != "2" {
		t.Errorf("Menu() = %q, want %q", answer, "2")
	}

	rendered := out.String()
	for _, want := range []string{"1) alpha", "2) beta", "Choose a repository"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("menu output missing %q:\n%s", want, rendered)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "explicit yes", input: "y\n", want: true},
		{name: "explicit no", input: "no\n", defaultYes: true, want: false},
		{name: "empty uses default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty uses default no", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Continue", tt.defaultYes)
			if err != nil {
				t.Fatalf("Confirm() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

package cli

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// complete runs the hidden completion request command and returns the
// offered values without the trailing directive line.
func complete(t *testing.T, args ...string) []string {
	t.Helper()
	root := New(io.Discard, log.InfoLevel).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("complete %v: %v", args, err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	return lines[:len(lines)-1]
}

func TestFlagCompletions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"render backend", []string{"render", "--backend", ""}, []string{"canvas", "html", "svg"}},
		{"render style", []string{"render", "--style", ""}, []string{"basic", "enhanced"}},
		{"render type", []string{"render", "--type", ""}, []string{"Single", "Couple", "Family", "Friends"}},
		{"layout style", []string{"layout", "--style", ""}, []string{"basic", "enhanced"}},
		{"backend list", []string{"conformance", "--backends", ""}, []string{"canvas", "html", "svg"}},
		{"backend list continues", []string{"conformance", "--backends", "canvas,"}, []string{"canvas,html", "canvas,svg"}},
		{"backend list exhausted", []string{"conformance", "--backends", "canvas,html,svg,"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := complete(t, tt.args...)
			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("completions %v missing %q", got, w)
				}
			}
			if tt.want == nil && len(got) != 0 {
				t.Errorf("completions = %v, want none", got)
			}
		})
	}
}

func TestGuestFlagFileFilter(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	render, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	got := render.Flags().Lookup("guest").Annotations[cobra.BashCompFilenameExt]
	if !slices.Equal(got, []string{"json", "toml"}) {
		t.Errorf("--guest extensions = %v, want [json toml]", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, log.InfoLevel).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "welcomescreen") {
				t.Errorf("%s script does not mention the program name", shell)
			}
		})
	}

	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}

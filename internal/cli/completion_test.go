package cli

import (
	"strings"
	"testing"
)

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runRoot(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}

	if _, err := runRoot(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestFlagCompletion(t *testing.T) {
	isolate(t)

	out, err := runRoot(t, "__complete", "--format", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"graphml", "dot2", "json", "svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("format completion missing %q:\n%s", want, out)
		}
	}

	out, err = runRoot(t, "__complete", "--include", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "descendants") {
		t.Errorf("include completion:\n%s", out)
	}
}

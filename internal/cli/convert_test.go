package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/pipeline"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

const sampleGEDCOM = `0 HEAD
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 REFN 1001
1 BIRT
2 DATE 1850
1 FAMS @F1@
0 @I2@ INDI
1 NAME Ann /Lind/
1 SEX F
1 FAMS @F1@
0 @I3@ INDI
1 NAME Tom /Smith/
1 FAMC @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
0 TRLR
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.ged")
	if err := os.WriteFile(path, []byte(sampleGEDCOM), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// captureStatus redirects status lines to a buffer for the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := statusOut
	buf := &bytes.Buffer{}
	statusOut = buf
	t.Cleanup(func() { statusOut = old })
	return buf
}

// isolate points cache and config lookups at empty temp directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Convert(t *testing.T) {
	isolate(t)
	captureStatus(t)
	input := writeSample(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"graphml default", nil, []string{`<graph id="G" edgedefault="directed">`, "<data key=\"d0\">John Smith</data>"}},
		{"dot descendants", []string{"--format", "dot", "--include", "desc", "--personid", "1"}, []string{"<h>John Smith|<u>|<w>Ann Lind", "edge [penwidth=1];"}},
		{"dot2 thick", []string{"--format", "dot2", "--thick", "--thick"}, []string{`<u>John Smith\nAnn Lind`, "edge [penwidth=3];"}},
		{"json by refn", []string{"--format", "json", "--include", "descendants", "--personid", "1001", "--iditem", "REFN", "--dates"}, []string{`"I1": {`, `"name": "John Smith\n(1850-)"`}},
		{"reverse", []string{"--format", "dot", "--reverse"}, []string{"f0:u -> i1:i;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out")
			args := append([]string{input, "-o", output}, tt.args...)
			if _, err := runRoot(t, args...); err != nil {
				t.Fatalf("run %v: %v", args, err)
			}
			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(data), want) {
					t.Errorf("output missing %q:\n%s", want, data)
				}
			}
		})
	}
}

func TestRootCommand_Errors(t *testing.T) {
	isolate(t)
	captureStatus(t)
	input := writeSample(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"json with all", []string{input, "--format", "json"}, errors.ErrCodeConfiguration},
		{"missing personid", []string{input, "--include", "anc"}, errors.ErrCodeConfiguration},
		{"bad include", []string{input, "--include", "cousins"}, errors.ErrCodeConfiguration},
		{"bad format", []string{input, "--format", "pdf"}, errors.ErrCodeUnknownFormat},
		{"unknown person", []string{input, "--include", "anc", "--personid", "I9"}, errors.ErrCodePersonNotFound},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.ged")}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out")
			_, err := runRoot(t, append(tt.args, "-o", output)...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
				t.Error("no output file should be created on error")
			}
		})
	}
}

func TestRootCommand_Config(t *testing.T) {
	isolate(t)
	captureStatus(t)
	input := writeSample(t)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := "format = \"dot\"\nthickness = 4\ndates = true\nflavour = \"x\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(t.TempDir(), "out")
	if _, err := runRoot(t, input, "--config", cfgPath, "-o", output); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(output)
	if !strings.Contains(string(data), "edge [penwidth=4];") || !strings.Contains(string(data), `John Smith\n(1850-)`) {
		t.Errorf("config defaults not applied:\n%s", data)
	}

	// explicit flags win over the config file
	if _, err := runRoot(t, input, "--config", cfgPath, "--format", "graphml", "--thick", "-o", output); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(output)
	if !strings.Contains(string(data), "<graphml") {
		t.Errorf("--format should override config:\n%.200s", data)
	}

	_, err := runRoot(t, input, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("missing explicit config error = %v", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	o := defaultConvertOpts()
	o.thick = 2
	o.include = "anc"
	o.personID = "I1"

	opts, err := o.pipelineOptions("in.ged")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Thickness != 3 {
		t.Errorf("Thickness = %d, want 3", opts.Thickness)
	}
	if opts.Mode != selection.ModeAncestors || opts.Format != pipeline.FormatGraphML {
		t.Errorf("mode/format = %v/%v", opts.Mode, opts.Format)
	}
	if opts.IDItem != "xref" {
		t.Errorf("IDItem = %q", opts.IDItem)
	}
}

func TestApplyConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	o := defaultConvertOpts()
	o.register(cmd)
	if err := cmd.Flags().Parse([]string{"--include", "desc"}); err != nil {
		t.Fatal(err)
	}

	o.applyConfig(cmd.Flags(), Config{Format: "dot2", Include: "anc", Thickness: 2})

	if o.format != "dot2" {
		t.Errorf("format = %q, want dot2 from config", o.format)
	}
	if o.include != "desc" {
		t.Errorf("include = %q, the flag should win", o.include)
	}
	if o.thickness != 2 {
		t.Errorf("thickness = %d", o.thickness)
	}
}

func TestRootCommand_NoArgsShowsHelp(t *testing.T) {
	isolate(t)
	out, err := runRoot(t)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "gedgraph [file]") {
		t.Errorf("help output = %.200s", out)
	}
}

func TestReportError(t *testing.T) {
	status := captureStatus(t)
	ReportError(errors.New(errors.ErrCodePersonNotFound, "no person with xref %q", "I9"))
	if !strings.Contains(status.String(), `no person with xref "I9"`) || strings.Contains(status.String(), "PERSON_NOT_FOUND") {
		t.Errorf("ReportError output = %q", status.String())
	}
}

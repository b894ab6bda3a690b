package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/gedgraph/pkg/gedcom"
)

func TestMatchPeople(t *testing.T) {
	rs, err := gedcom.Read(strings.NewReader(sampleGEDCOM))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"I1", "I2", "I3"}},
		{"smith", []string{"I1", "I3"}},
		{"  LIND ", []string{"I2"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		var got []string
		for _, i := range matchPeople(rs, tt.search) {
			got = append(got, string(i.ID))
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("matchPeople(%q) = %v, want %v", tt.search, got, tt.want)
		}
	}
}

func TestListPeople(t *testing.T) {
	rs, err := gedcom.Read(strings.NewReader(sampleGEDCOM))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	listPeople(&buf, rs, peopleOpts{limit: 2})
	out := buf.String()

	for _, want := range []string{"John Smith", "Ann Lind", "(1850-)", "refn=1001", "2 of 3 individuals"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Tom Smith") {
		t.Error("limit should cut the third row")
	}
}

func TestPeopleCommand(t *testing.T) {
	isolate(t)
	input := writeSample(t)

	out, err := runRoot(t, "people", input, "--search", "tom")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Tom Smith") || strings.Contains(out, "Ann Lind") {
		t.Errorf("people output:\n%s", out)
	}
}

func TestFormatFields(t *testing.T) {
	got := formatFields(map[string]string{"refn": "7", "_uid": "ab", "exid": "x"})
	if got != "_uid=ab exid=x refn=7" {
		t.Errorf("formatFields = %q", got)
	}
	if formatFields(nil) != "" {
		t.Error("empty fields should format as empty string")
	}
}

package gedcom

import (
	"strings"
	"testing"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/records"
)

const sample = "\ufeff0 HEAD\r\n" +
	"1 CHAR UTF-8\r\n" +
	"0 @I1@ INDI\r\n" +
	"1 NAME John /Smith/\r\n" +
	"1 SEX M\r\n" +
	"1 BIRT\r\n" +
	"2 DATE ABT 1850\r\n" +
	"1 DEAT\r\n" +
	"2 DATE 3 MAR 1920\r\n" +
	"1 FAMS @F1@\r\n" +
	"1 REFN 1001\r\n" +
	"0 @I2@ INDI\r\n" +
	"1 NAME Zoë /Brown/\r\n" +
	"1 FAMS @F1@\r\n" +
	"1 _UID abc-123\r\n" +
	"0 @I3@ INDI\r\n" +
	"1 NAME Tom /Smith/ Jr\r\n" +
	"1 BIRT\r\n" +
	"2 PLAC Somewhere\r\n" +
	"1 BIRT\r\n" +
	"2 DATE 1880\r\n" +
	"1 FAMC @F1@\r\n" +
	"0 @I4@ INDI\r\n" +
	"1 NAME //\r\n" +
	"0 @F1@ FAM\r\n" +
	"1 HUSB @I1@\r\n" +
	"1 WIFE @I2@\r\n" +
	"1 CHIL @I3@\r\n" +
	"0 @N1@ NOTE A note\r\n" +
	"1 CONT second line\r\n" +
	"0 TRLR\r\n"

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.IndividualCount() != 4 {
		t.Fatalf("IndividualCount() = %d, want 4", s.IndividualCount())
	}
	if s.UnionCount() != 1 {
		t.Fatalf("UnionCount() = %d, want 1", s.UnionCount())
	}

	i1, ok := s.Individual("I1")
	if !ok {
		t.Fatal("I1 missing")
	}
	if i1.Xref != "@I1@" {
		t.Errorf("Xref = %q, want @I1@", i1.Xref)
	}
	if i1.Sex != "M" {
		t.Errorf("Sex = %q, want M", i1.Sex)
	}
	if y, ok := i1.BirthYear(); !ok || y != 1850 {
		t.Errorf("BirthYear() = %d,%v, want 1850,true", y, ok)
	}
	if y, ok := i1.DeathYear(); !ok || y != 1920 {
		t.Errorf("DeathYear() = %d,%v, want 1920,true", y, ok)
	}
	if v, _ := i1.Field("refn"); v != "1001" {
		t.Errorf("Field(refn) = %q, want 1001", v)
	}
	if len(i1.SpouseIn) != 1 || i1.SpouseIn[0] != "F1" {
		t.Errorf("SpouseIn = %v, want [F1]", i1.SpouseIn)
	}

	i2, _ := s.Individual("I2")
	if got := i2.Names[0].Markup; got != "Zo&#235; /Brown/" {
		t.Errorf("Markup = %q, want numeric reference", got)
	}
	if v, _ := i2.Field("_UID"); v != "abc-123" {
		t.Errorf("Field(_UID) = %q, want abc-123", v)
	}

	i3, _ := s.Individual("I3")
	if i3.BestBirth != 1 {
		t.Errorf("BestBirth = %d, want 1 (first dated event)", i3.BestBirth)
	}
	if u, ok := i3.ParentUnion(); !ok || u != "F1" {
		t.Errorf("ParentUnion() = %q,%v, want F1,true", u, ok)
	}

	i4, _ := s.Individual("I4")
	if i4.Names[0].Plain != records.UnknownName {
		t.Errorf("empty name = %q, want sentinel", i4.Names[0].Plain)
	}

	f1, _ := s.Union("F1")
	if f1.Husband != "I1" || f1.Wife != "I2" || len(f1.Children) != 1 {
		t.Errorf("F1 = %+v", f1)
	}
}

func TestRead_Continuation(t *testing.T) {
	input := "0 @I1@ INDI\n1 NAME Anna Maria\n2 CONC  /Lind/\n"
	s, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	i1, _ := s.Individual("I1")
	if got := i1.Names[0].Plain; got != "Anna Maria /Lind/" {
		t.Errorf("Plain = %q", got)
	}
}

func TestRead_NoName(t *testing.T) {
	s, err := Read(strings.NewReader("0 @I7@ INDI\n1 SEX F\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	i7, _ := s.Individual("I7")
	if len(i7.Names) != 1 || i7.Names[0].Plain != records.UnknownName {
		t.Errorf("Names = %v, want sentinel", i7.Names)
	}
	if i7.BestBirth != -1 {
		t.Errorf("BestBirth = %d, want -1", i7.BestBirth)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad level", "0 HEAD\nX NAME foo\n"},
		{"missing tag", "0 HEAD\n1\n"},
		{"unterminated xref", "0 @I1 INDI\n"},
		{"duplicate individual", "0 @I1@ INDI\n0 @I1@ INDI\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInputShape) {
				t.Errorf("Read() error = %v, want INPUT_SHAPE", err)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"1850", 1850},
		{"ABT 1850", 1850},
		{"3 MAR 1920", 1920},
		{"BET 1850 AND 1860", 1850},
		{"UNKNOWN", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseYear(tt.date); got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile("does-not-exist.ged")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

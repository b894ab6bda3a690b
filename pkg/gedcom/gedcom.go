package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/records"
)

// maxLineSize bounds a single GEDCOM line. Long NOTE lines are split with
// CONC by conforming writers, but some exporters do not bother.
const maxLineSize = 1 << 20

var yearRE = regexp.MustCompile(`\b(\d{3,4})\b`)

// line is one parsed GEDCOM line: "level [@xref@] TAG [value]".
type line struct {
	level int
	xref  string
	tag   string
	value string
}

// ReadFile parses the GEDCOM file at path.
func ReadFile(path string) (*records.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a GEDCOM stream into a record set.
//
// Only INDI and FAM records are kept; everything else is skipped. Lines with a
// missing or non-numeric level are reported as INPUT_SHAPE errors carrying
// the 1-based line number. Read does not close r.
func Read(r io.Reader) (*records.Set, error) {
	p := &parser{set: records.NewSet()}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		if n == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		ln, err := parseLine(text)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputShape, err, "line %d", n)
		}
		if err := p.handle(ln); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputShape, err, "line %d", n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputShape, err, "scan")
	}
	if err := p.flush(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputShape, err, "end of file")
	}
	return p.set, nil
}

func parseLine(text string) (line, error) {
	fields := strings.SplitN(text, " ", 2)
	level, err := strconv.Atoi(fields[0])
	if err != nil || level < 0 {
		return line{}, fmt.Errorf("invalid level %q", fields[0])
	}
	if len(fields) < 2 {
		return line{}, fmt.Errorf("missing tag")
	}

	ln := line{level: level}
	rest := strings.TrimLeft(fields[1], " ")
	if strings.HasPrefix(rest, "@") {
		end := strings.Index(rest[1:], "@")
		if end < 0 {
			return line{}, fmt.Errorf("unterminated xref %q", rest)
		}
		ln.xref = rest[:end+2]
		rest = strings.TrimLeft(rest[end+2:], " ")
	}

	tag, value, _ := strings.Cut(rest, " ")
	if tag == "" {
		return line{}, fmt.Errorf("missing tag")
	}
	ln.tag = strings.ToUpper(tag)
	ln.value = value
	return ln, nil
}

// parser accumulates the record currently being read. Level-0 lines close the
// previous record.
type parser struct {
	set *records.Set

	indi *records.Individual
	fam  *records.Union

	// open BIRT/DEAT event receiving level-2 DATE lines
	event *records.Event
	// last value-bearing line, target of CONC/CONT
	cont *string
}

func (p *parser) handle(ln line) error {
	switch {
	case ln.tag == "CONC" && p.cont != nil:
		*p.cont += ln.value
		return nil
	case ln.tag == "CONT" && p.cont != nil:
		*p.cont += "\n" + ln.value
		return nil
	}
	p.cont = nil

	if ln.level == 0 {
		if err := p.flush(); err != nil {
			return err
		}
		switch ln.tag {
		case "INDI":
			p.indi = &records.Individual{
				ID:     xrefID(ln.xref),
				Xref:   ln.xref,
				Fields: map[string]string{},
			}
		case "FAM":
			p.fam = &records.Union{ID: xrefID(ln.xref), Xref: ln.xref}
		}
		return nil
	}

	switch {
	case p.indi != nil:
		p.individualLine(ln)
	case p.fam != nil:
		p.familyLine(ln)
	}
	return nil
}

func (p *parser) individualLine(ln line) {
	i := p.indi
	if ln.level == 1 {
		p.event = nil
		switch ln.tag {
		case "NAME":
			i.Names = append(i.Names, records.Name{Plain: ln.value})
			p.cont = &i.Names[len(i.Names)-1].Plain
		case "SEX":
			i.Sex = strings.TrimSpace(ln.value)
		case "FAMC":
			i.ChildOf = append(i.ChildOf, xrefID(ln.value))
		case "FAMS":
			i.SpouseIn = append(i.SpouseIn, xrefID(ln.value))
		case "BIRT":
			i.Births = append(i.Births, records.Event{})
			p.event = &i.Births[len(i.Births)-1]
		case "DEAT":
			i.Deaths = append(i.Deaths, records.Event{})
			p.event = &i.Deaths[len(i.Deaths)-1]
		default:
			key := strings.ToLower(ln.tag)
			if ln.value != "" {
				if _, seen := i.Fields[key]; !seen {
					i.Fields[key] = ln.value
				}
			}
		}
		return
	}

	if ln.level == 2 && ln.tag == "DATE" && p.event != nil {
		p.event.Date = ln.value
		p.event.Year = parseYear(ln.value)
	}
}

func (p *parser) familyLine(ln line) {
	if ln.level != 1 {
		return
	}
	u := p.fam
	switch ln.tag {
	case "HUSB":
		if u.Husband == "" {
			u.Husband = xrefID(ln.value)
		}
	case "WIFE":
		if u.Wife == "" {
			u.Wife = xrefID(ln.value)
		}
	case "CHIL":
		u.Children = append(u.Children, xrefID(ln.value))
	}
}

// flush completes the open record and adds it to the set.
func (p *parser) flush() error {
	defer func() {
		p.indi, p.fam, p.event, p.cont = nil, nil, nil, nil
	}()

	if i := p.indi; i != nil {
		finishIndividual(i)
		if err := p.set.AddIndividual(*i); err != nil {
			return fmt.Errorf("individual %s: %w", i.Xref, err)
		}
	}
	if u := p.fam; u != nil {
		if err := p.set.AddUnion(*u); err != nil {
			return fmt.Errorf("family %s: %w", u.Xref, err)
		}
	}
	return nil
}

func finishIndividual(i *records.Individual) {
	for k, n := range i.Names {
		if strings.TrimSpace(strings.ReplaceAll(n.Plain, "/", "")) == "" {
			i.Names[k] = records.Name{Plain: records.UnknownName, Markup: records.UnknownName}
			continue
		}
		i.Names[k].Markup = records.Markup(n.Plain)
	}
	if len(i.Names) == 0 {
		i.Names = []records.Name{{Plain: records.UnknownName, Markup: records.UnknownName}}
	}
	i.BestBirth = bestEvent(i.Births)
	i.BestDeath = bestEvent(i.Deaths)
}

// bestEvent picks the first event with a known year, falling back to the
// first event. It returns -1 for no events.
func bestEvent(events []records.Event) int {
	for k, e := range events {
		if e.Year != 0 {
			return k
		}
	}
	if len(events) > 0 {
		return 0
	}
	return -1
}

func parseYear(date string) int {
	m := yearRE.FindStringSubmatch(date)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return y
}

// xrefID strips the "@" delimiters from a cross-reference.
func xrefID(xref string) records.ID {
	return records.ID(strings.Trim(strings.TrimSpace(xref), "@"))
}

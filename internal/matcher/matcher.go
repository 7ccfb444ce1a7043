package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// BodyGroup is the name of the capture group holding a comment body in a
// combined comment expression.
const BodyGroup = "body"

var groupNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidGroupName reports whether name can be used as a named capture group
// in a combined expression.
func ValidGroupName(name string) bool {
	return groupNameRe.MatchString(name)
}

type group struct {
	name string
	idx  int
}

// Pattern は複数の部分パターンを 1 本にまとめた式と、
// どの名前付きグループがどの選択肢に対応するかの対応表を保持します。
type Pattern struct {
	re     *regexp.Regexp
	groups []group
}

// Tagged is a single hit of a combined expression, already classified:
// Name identifies the alternative that matched (empty when an untagged
// alternative, e.g. a skipped block, consumed the match).
type Tagged struct {
	Name  string
	Start int
	End   int
	Value string
}

// CompileComment builds one expression with a single named group "body"
// capturing any line- or block-comment alternative, unioned with untagged
// skipped-block alternatives. Alternation order is line comments, block
// comments, then skipped blocks; Go's leftmost-first matching makes that
// order the tie-break when several alternatives could match at the same
// position.
func CompileComment(line, block, skip []string) (*Pattern, error) {
	body := make([]string, 0, len(line)+len(block))
	for _, frag := range line {
		body = append(body, "(?:"+frag+")")
	}
	for _, frag := range block {
		body = append(body, "(?:"+frag+")")
	}
	alts := make([]string, 0, 2)
	if len(body) > 0 {
		alts = append(alts, "(?P<"+BodyGroup+">"+strings.Join(body, "|")+")")
	}
	for _, frag := range skip {
		alts = append(alts, "(?:"+frag+")")
	}
	if len(alts) == 0 {
		// descriptor with no patterns at all: matches nothing
		return &Pattern{}, nil
	}
	return compile(strings.Join(alts, "|"), []string{BodyGroup})
}

// CompileAnnotation builds one expression with one named group per
// annotation kind, alternated in the given order. Whichever group is
// present on a match identifies the kind.
func CompileAnnotation(names, fragments []string) (*Pattern, error) {
	if len(names) != len(fragments) {
		return nil, fmt.Errorf("matcher: %d names for %d fragments", len(names), len(fragments))
	}
	if len(names) == 0 {
		return &Pattern{}, nil
	}
	alts := make([]string, 0, len(names))
	for i, name := range names {
		if !ValidGroupName(name) {
			return nil, fmt.Errorf("matcher: invalid group name %q", name)
		}
		alts = append(alts, "(?P<"+name+">"+fragments[i]+")")
	}
	return compile(strings.Join(alts, "|"), names)
}

func compile(expr string, tagged []string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("matcher: compile %s: %w", expr, err)
	}
	wanted := make(map[string]struct{}, len(tagged))
	for _, name := range tagged {
		wanted[name] = struct{}{}
	}
	p := &Pattern{re: re}
	for idx, name := range re.SubexpNames() {
		if _, ok := wanted[name]; ok {
			p.groups = append(p.groups, group{name: name, idx: idx})
		}
	}
	return p, nil
}

// Empty reports whether the pattern can never match.
func (p *Pattern) Empty() bool {
	return p == nil || p.re == nil
}

// Scanner applies a Pattern over text with an explicit cursor, replacing
// the stateful lastIndex of a global regex with scan state the caller can
// see. Each call starts a fresh cursor at 0; the sequence is finite.
type Scanner struct {
	p      *Pattern
	text   string
	cursor int
}

// NewScanner returns a scanner positioned at the start of text.
func NewScanner(p *Pattern, text string) *Scanner {
	return &Scanner{p: p, text: text}
}

// Next returns the next match and whether one was found. A zero-length
// match forces the cursor forward by one byte, exactly once per stall, so
// the scan always terminates.
func (s *Scanner) Next() (Tagged, bool) {
	if s.p.Empty() || s.cursor > len(s.text) {
		return Tagged{}, false
	}
	base := s.cursor
	loc := s.p.re.FindStringSubmatchIndex(s.text[base:])
	if loc == nil {
		s.cursor = len(s.text) + 1
		return Tagged{}, false
	}
	start := base + loc[0]
	end := base + loc[1]
	if end == start {
		s.cursor = start + 1
	} else {
		s.cursor = end
	}
	t := Tagged{Start: start, End: end}
	for _, g := range s.p.groups {
		gs := loc[2*g.idx]
		if gs < 0 {
			continue
		}
		t.Name = g.name
		t.Start = base + gs
		t.End = base + loc[2*g.idx+1]
		t.Value = s.text[t.Start:t.End]
		break
	}
	return t, true
}

package dom

import "strings"

// simpleSelector is one compound step of a selector: an optional tag plus
// any number of #id / .class qualifiers, e.g. "div.card#main".
type simpleSelector struct {
	tag     string
	id      string
	classes []string
}

// matches reports whether the element satisfies this compound step.
func (s simpleSelector) matches(e *Element) bool {
	if s.tag != "" && s.tag != e.tag {
		return false
	}
	if s.id != "" && s.id != e.id {
		return false
	}
	for _, c := range s.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}

// parseSelector splits a selector into descendant-combined compound steps.
// Reports false for selectors it cannot parse (empty, or empty steps).
func parseSelector(selector string) ([]simpleSelector, bool) {
	fields := strings.Fields(selector)
	if len(fields) == 0 {
		return nil, false
	}

	steps := make([]simpleSelector, 0, len(fields))
	for _, f := range fields {
		step, ok := parseSimple(f)
		if !ok {
			return nil, false
		}
		steps = append(steps, step)
	}
	return steps, true
}

// parseSimple parses one compound step.
func parseSimple(s string) (simpleSelector, bool) {
	var out simpleSelector

	for len(s) > 0 {
		switch s[0] {
		case '#':
			name, rest := readName(s[1:])
			if name == "" {
				return out, false
			}
			out.id = name
			s = rest
		case '.':
			name, rest := readName(s[1:])
			if name == "" {
				return out, false
			}
			out.classes = append(out.classes, name)
			s = rest
		default:
			name, rest := readName(s)
			if name == "" || out.tag != "" {
				return out, false
			}
			out.tag = strings.ToLower(name)
			s = rest
		}
	}

	if out.tag == "" && out.id == "" && len(out.classes) == 0 {
		return out, false
	}
	return out, true
}

// readName consumes an identifier up to the next '#' or '.'.
func readName(s string) (name, rest string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' || s[i] == '.' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// selectorMatches reports whether e matches the full descendant chain:
// the last step must match e, and every earlier step must match some
// strict ancestor, in order (standard right-to-left matching).
func selectorMatches(steps []simpleSelector, e *Element) bool {
	last := len(steps) - 1
	if !steps[last].matches(e) {
		return false
	}

	i := last - 1
	for a := e.parent; a != nil && i >= 0; a = a.parent {
		if steps[i].matches(a) {
			i--
		}
	}
	return i < 0
}

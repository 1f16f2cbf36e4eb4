package resume

import (
	"encoding/json"
	"strings"
)

// Lines is a description field that upstream producers disagree on:
// manual typing yields a single string, AI structuring sometimes yields
// an array of bullet strings. Both JSON shapes unmarshal into Lines.
// Marshalling always emits a single string (entries joined by newlines)
// so the wire shape stays stable for the editor.
type Lines []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (l *Lines) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
			return nil
		}
		*l = Lines{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = Lines(many)
	return nil
}

// MarshalJSON emits the entries joined by newlines as one string.
func (l Lines) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// String joins the entries with newlines.
func (l Lines) String() string {
	return strings.Join(l, "\n")
}

// Entries returns the individual lines for rendering, splitting any
// entry that itself contains newlines. Blank lines are dropped.
func (l Lines) Entries() []string {
	var out []string
	for _, entry := range l {
		for _, line := range strings.Split(entry, "\n") {
			if strings.TrimSpace(line) != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// FromString builds a Lines value from a single free-text string.
func FromString(s string) Lines {
	if s == "" {
		return nil
	}
	return Lines{s}
}

func (l Lines) clone() Lines {
	if l == nil {
		return nil
	}
	return append(Lines(nil), l...)
}

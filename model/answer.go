package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Answer holds one submitted answer: either a single text value (text and
// radio questions) or a list of values (checkbox questions). Any other JSON
// shape decodes to an empty Answer, which counts as unanswered.
type Answer struct {
	Text   *string
	Values []string
	Multi  bool
}

func TextAnswer(s string) Answer {
	return Answer{Text: &s}
}

func MultiAnswer(values ...string) Answer {
	return Answer{Values: values, Multi: true}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Text = &s
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		a.Multi = true
		a.Values = make([]string, 0, len(raw))
		for _, r := range raw {
			a.Values = append(a.Values, entryText(r))
		}
	}
	return nil
}

// entryText renders one list entry as text: strings as-is, anything else by
// its JSON literal, so a null entry reads "null" and counts as answered.
func entryText(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(r))
}

// Answered reports whether the answer carries any non-blank content.
func (a Answer) Answered() bool {
	return a.Render() != ""
}

// Render returns the text stored for the answer: a single value trimmed, or
// the non-blank list entries trimmed and joined with ", ".
func (a Answer) Render() string {
	if a.Multi {
		parts := make([]string, 0, len(a.Values))
		for _, v := range a.Values {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, ", ")
	}
	if a.Text != nil {
		return strings.TrimSpace(*a.Text)
	}
	return ""
}

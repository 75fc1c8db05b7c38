package funnel

import (
	"fmt"
	"strings"
)

// ChangeType is the content dimension a child variant varies against its parent.
type ChangeType string

const (
	ChangeHook         ChangeType = "hook"
	ChangeOnScreenText ChangeType = "on_screen_text"
	ChangeCTA          ChangeType = "cta"
	ChangeCaption      ChangeType = "caption"
	ChangeEditStyle    ChangeType = "edit_style"
)

// AllChangeTypes lists the fixed enumeration in canonical order.
var AllChangeTypes = []ChangeType{
	ChangeHook,
	ChangeOnScreenText,
	ChangeCTA,
	ChangeCaption,
	ChangeEditStyle,
}

var changeTypeLabels = map[ChangeType]string{
	ChangeHook:         "hook",
	ChangeOnScreenText: "on-screen text",
	ChangeCTA:          "CTA",
	ChangeCaption:      "caption",
	ChangeEditStyle:    "edit style",
}

func (t ChangeType) Valid() bool {
	_, ok := changeTypeLabels[t]
	return ok
}

// Label returns the human-readable form used in change notes and briefs.
func (t ChangeType) Label() string {
	if l, ok := changeTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseChangeTypes validates raw change-type strings against the fixed
// enumeration. Order is preserved; empty input and duplicates are rejected.
func ParseChangeTypes(raw []string) ([]ChangeType, error) {
	const op = "funnel.ParseChangeTypes"
	if len(raw) == 0 {
		return nil, NewError(CodeInvalidChangeTypes, op, "at least one change type required", nil)
	}
	seen := make(map[ChangeType]bool, len(raw))
	out := make([]ChangeType, 0, len(raw))
	for _, r := range raw {
		t := ChangeType(strings.ToLower(strings.TrimSpace(r)))
		if !t.Valid() {
			return nil, NewError(CodeInvalidChangeTypes, op, fmt.Sprintf("unknown change type %q", r), nil)
		}
		if seen[t] {
			return nil, NewError(CodeInvalidChangeTypes, op, fmt.Sprintf("duplicate change type %q", t), nil)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

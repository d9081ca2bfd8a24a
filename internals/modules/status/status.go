// Package status holds the closed status vocabulary shared by every
// component and the uptime display rule.
package status

import (
	"fmt"
)

// Status is one of the four minute states. The zero value is not a valid
// status; values only come from the constants below or from Parse.
type Status uint8

const (
	Up Status = iota + 1
	Degraded
	Down
	NoData

	statusEnd
)

type meta struct {
	name     string
	cssClass string
	color    string
}

// vocabulary is indexed by Status. A status added without a row here has an
// empty name and is caught by TestVocabularyIsComplete.
var vocabulary = [statusEnd]meta{
	Up:       {name: "UP", cssClass: "api-up", color: "#00dfa2"},
	Degraded: {name: "DEGRADED", cssClass: "api-degraded", color: "#ffb84c"},
	Down:     {name: "DOWN", cssClass: "api-down", color: "#ff0060"},
	NoData:   {name: "NO_DATA", cssClass: "api-nodata", color: "#b8bcbe"},
}

// All returns every status in declaration order.
func All() []Status {
	all := make([]Status, 0, int(statusEnd)-1)
	for s := Up; s < statusEnd; s++ {
		all = append(all, s)
	}
	return all
}

func Parse(s string) (Status, error) {
	for _, st := range All() {
		if vocabulary[st].name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) Valid() bool {
	return s >= Up && s < statusEnd
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
	return vocabulary[s].name
}

func (s Status) CSSClass() string {
	if !s.Valid() {
		return ""
	}
	return vocabulary[s].cssClass
}

// Color is the badge fill for s.
func (s Status) Color() string {
	if !s.Valid() {
		return vocabulary[NoData].color
	}
	return vocabulary[s].color
}

// CountsAsUp reports whether a minute in s counts toward uptime.
func (s Status) CountsAsUp() bool {
	return s == Up || s == Degraded
}

// Observable reports whether s may be reported by a check. NO_DATA is only
// ever synthesized by the rollup.
func (s Status) Observable() bool {
	return s == Up || s == Degraded || s == Down
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(vocabulary[s].name), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	st, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

package incident

import (
	"strings"
	"time"
)

type Impact string

const (
	ImpactDown     Impact = "DOWN"
	ImpactDegraded Impact = "DEGRADED"
)

// tracker labels
const (
	LabelIncident    = "incident"
	LabelMaintenance = "maintenance"
	LabelIdentified  = "identified"
	LabelResolved    = "resolved"
	labelImpactPfx   = "incident-"
)

func (i Impact) Label() string {
	return labelImpactPfx + strings.ToLower(string(i))
}

// ParsedIncident is a validated payload ready to be sent to the tracker.
type ParsedIncident struct {
	Title  string
	Body   string
	Tags   []string
	Labels []string
}

// Incident mirrors one tracker issue.
type Incident struct {
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	State         string     `json:"state"`
	HTMLURL       string     `json:"html_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	Labels        []string   `json:"labels"`
	Tags          []string   `json:"tags"`
	Impact        Impact     `json:"impact,omitempty"`
	StartDatetime *int64     `json:"start_datetime,omitempty"`
	EndDatetime   *int64     `json:"end_datetime,omitempty"`
	IsMaintenance bool       `json:"is_maintenance"`
	IsIdentified  bool       `json:"is_identified"`
	IsResolved    bool       `json:"is_resolved"`
}

type Comment struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	HTMLURL   string    `json:"html_url"`
}

package incident

import (
	"strings"

	"github.com/google/go-github/v66/github"
)

// IssueToIncident maps a tracker issue. tags is the set of known monitor
// tags; issue labels found in it become the incident tags.
func IssueToIncident(issue *github.Issue, tags map[string]struct{}) Incident {
	body, start, end := splitMarkers(issue.GetBody())

	inc := Incident{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          body,
		State:         issue.GetState(),
		HTMLURL:       issue.GetHTMLURL(),
		CreatedAt:     issue.GetCreatedAt().Time,
		UpdatedAt:     issue.GetUpdatedAt().Time,
		Labels:        []string{},
		Tags:          []string{},
		StartDatetime: start,
		EndDatetime:   end,
	}
	if issue.ClosedAt != nil {
		closed := issue.GetClosedAt().Time
		inc.ClosedAt = &closed
	}

	for _, l := range issue.Labels {
		name := l.GetName()
		if name == "" {
			continue
		}
		inc.Labels = append(inc.Labels, name)

		switch strings.ToLower(name) {
		case ImpactDown.Label():
			inc.Impact = ImpactDown
		case ImpactDegraded.Label():
			// DOWN wins when both are present
			if inc.Impact == "" {
				inc.Impact = ImpactDegraded
			}
		case LabelMaintenance:
			inc.IsMaintenance = true
		case LabelIdentified:
			inc.IsIdentified = true
		case LabelResolved:
			inc.IsResolved = true
		}

		if _, ok := tags[name]; ok {
			inc.Tags = append(inc.Tags, name)
		}
	}

	return inc
}

func hasLabel(issue *github.Issue, label string) bool {
	for _, l := range issue.Labels {
		if strings.EqualFold(l.GetName(), label) {
			return true
		}
	}
	return false
}

func commentFrom(c *github.IssueComment, html string) Comment {
	return Comment{
		Body:      html,
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
		HTMLURL:   c.GetHTMLURL(),
	}
}


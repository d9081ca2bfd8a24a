package incident

import (
	"fmt"
	"regexp"
	"statusboard/pkg/apperror"
	"strconv"
	"strings"
)

var (
	startMarker = regexp.MustCompile(`\[start_datetime:(\d+)\]`)
	endMarker   = regexp.MustCompile(`\[end_datetime:(\d+)\]`)
)

// ParseIncidentPayload validates p and derives the tracker labels. It does no
// I/O; a returned error is an InvalidInput apperror with a field message.
func ParseIncidentPayload(p Payload) (ParsedIncident, error) {
	const op string = "incident.parse_payload"

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return ParsedIncident{}, apperror.Invalid(op, "title is required")
	}
	// markers written by hand into the body must not shadow the fields
	body, _, _ := splitMarkers(p.Body)
	if body == "" {
		return ParsedIncident{}, apperror.Invalid(op, "body is required")
	}

	tags, err := cleanList(p.Tags)
	if err != nil {
		return ParsedIncident{}, apperror.Invalid(op, "tags "+err.Error())
	}
	extra, err := cleanList(p.Labels)
	if err != nil {
		return ParsedIncident{}, apperror.Invalid(op, "labels "+err.Error())
	}

	var impact Impact
	switch Impact(strings.ToUpper(strings.TrimSpace(p.Impact))) {
	case "":
	case ImpactDown:
		impact = ImpactDown
	case ImpactDegraded:
		impact = ImpactDegraded
	default:
		return ParsedIncident{}, apperror.Invalid(op, "impact must be one of [DOWN DEGRADED]")
	}

	if p.StartDatetime != nil && *p.StartDatetime <= 0 {
		return ParsedIncident{}, apperror.Invalid(op, "startDatetime must be a positive unix timestamp")
	}
	if p.EndDatetime != nil && *p.EndDatetime <= 0 {
		return ParsedIncident{}, apperror.Invalid(op, "endDatetime must be a positive unix timestamp")
	}
	if p.StartDatetime != nil && p.EndDatetime != nil && *p.EndDatetime < *p.StartDatetime {
		return ParsedIncident{}, apperror.Invalid(op, "endDatetime must not be before startDatetime")
	}

	labels := []string{LabelIncident}
	labels = append(labels, tags...)
	labels = append(labels, extra...)
	if impact != "" {
		labels = append(labels, impact.Label())
	}
	if p.IsMaintenance {
		labels = append(labels, LabelMaintenance)
	}
	if p.IsIdentified {
		labels = append(labels, LabelIdentified)
	}
	if p.IsResolved {
		labels = append(labels, LabelResolved)
	}

	return ParsedIncident{
		Title:  title,
		Body:   withMarkers(body, p.StartDatetime, p.EndDatetime),
		Tags:   tags,
		Labels: dedupe(labels),
	}, nil
}

func cleanList(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("[%d] must not be blank", i)
		}
		out = append(out, s)
	}
	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func withMarkers(body string, start, end *int64) string {
	var markers []string
	if start != nil {
		markers = append(markers, fmt.Sprintf("[start_datetime:%d]", *start))
	}
	if end != nil {
		markers = append(markers, fmt.Sprintf("[end_datetime:%d]", *end))
	}
	if len(markers) == 0 {
		return body
	}
	return body + "\n\n" + strings.Join(markers, "\n")
}

// splitMarkers removes the datetime markers from body and returns their
// values.
func splitMarkers(body string) (string, *int64, *int64) {
	start := findMarker(startMarker, body)
	end := findMarker(endMarker, body)
	body = endMarker.ReplaceAllString(startMarker.ReplaceAllString(body, ""), "")
	return strings.TrimSpace(body), start, end
}

func findMarker(re *regexp.Regexp, body string) *int64 {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

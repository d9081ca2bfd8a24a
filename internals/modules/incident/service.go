package incident

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"statusboard/internals/modules/monitor"
	"statusboard/pkg/apperror"
	"statusboard/pkg/markdown"
	"statusboard/pkg/metrics"
	"statusboard/pkg/rabbitmq"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
)

const (
	EventIncidentCreated = "incident.created"
	githubErrorMessage   = "github error"
)

// Ledger keeps a local record of created incidents.
type Ledger interface {
	Record(ctx context.Context, inc Incident) error
}

// EventPublisher delivers encoded events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte) error
}

type Service struct {
	tracker  Tracker
	catalog  *monitor.Catalog
	renderer markdown.Renderer
	ledger   Ledger
	events   EventPublisher
	timeout  time.Duration
	logger   *zerolog.Logger
}

// NewService wires the bridge. ledger and events may be nil.
func NewService(
	tracker Tracker,
	catalog *monitor.Catalog,
	renderer markdown.Renderer,
	ledger Ledger,
	events EventPublisher,
	timeout time.Duration,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		tracker:  tracker,
		catalog:  catalog,
		renderer: renderer,
		ledger:   ledger,
		events:   events,
		timeout:  timeout,
		logger:   logger,
	}
}

// CreateIssue opens one issue. It is not retried, and it runs detached from
// ctx cancellation so a disconnecting client cannot leave it half created.
// Every failure is reported as the same Dependency error.
func (s *Service) CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error) {
	const op string = "service.incident.create_issue"

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	issue, err := s.tracker.CreateIssue(callCtx, title, body, labels)
	if err == nil && issue == nil {
		err = errors.New("tracker returned no issue")
	}
	metrics.RecordTrackerCall("create_issue", err)
	if err != nil {
		s.logger.Error().Err(err).Str("op", op).Str("title", title).Msg("issue tracker create failed")
		return nil, apperror.New(apperror.Dependency, op, err).WithMessage(githubErrorMessage)
	}

	return issue, nil
}

// CreateIncident validates p, opens the issue and maps it back. Ledger and
// event failures are logged only.
func (s *Service) CreateIncident(ctx context.Context, p Payload) (Incident, error) {
	const op string = "service.incident.create_incident"

	parsed, err := ParseIncidentPayload(p)
	if err != nil {
		return Incident{}, err
	}

	known := s.catalog.Current().Tags()
	for _, tag := range parsed.Tags {
		if _, ok := known[tag]; !ok {
			return Incident{}, apperror.Invalid(op, fmt.Sprintf("unknown monitor tag %q", tag))
		}
	}

	issue, err := s.CreateIssue(ctx, parsed.Title, parsed.Body, parsed.Labels)
	if err != nil {
		return Incident{}, err
	}

	inc := IssueToIncident(issue, known)
	s.logger.Info().Int("number", inc.Number).Strs("tags", inc.Tags).Msg("incident created")

	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	s.recordCreated(sideCtx, inc)

	return inc, nil
}

func (s *Service) recordCreated(ctx context.Context, inc Incident) {
	if s.ledger != nil {
		err := s.ledger.Record(ctx, inc)
		metrics.RecordIncidentSideEffect("ledger", err)
		if err != nil {
			s.logger.Error().Err(err).Int("number", inc.Number).Msg("incident ledger insert failed")
		}
	}

	if s.events != nil {
		body, err := rabbitmq.NewEvent(EventIncidentCreated, inc)
		if err == nil {
			err = s.events.Publish(ctx, body)
		}
		metrics.RecordIncidentSideEffect("events", err)
		if err != nil {
			s.logger.Error().Err(err).Int("number", inc.Number).Msg("incident event publish failed")
		}
	}
}

// GetIncident fetches an issue and maps it. Issues without the incident
// label are reported as not found.
func (s *Service) GetIncident(ctx context.Context, number int) (Incident, error) {
	const op string = "service.incident.get_incident"

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	issue, err := s.tracker.GetIssue(callCtx, number)
	metrics.RecordTrackerCall("get_issue", err)
	if err != nil {
		return Incident{}, s.readError(op, err)
	}
	if !hasLabel(issue, LabelIncident) {
		return Incident{}, apperror.Missing(op, "incident not found")
	}

	return IssueToIncident(issue, s.catalog.Current().Tags()), nil
}

// GetCommentsForIssue lists the comments of an issue with their bodies
// rendered to HTML.
func (s *Service) GetCommentsForIssue(ctx context.Context, number int) ([]Comment, error) {
	const op string = "service.incident.get_comments"

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.tracker.ListComments(callCtx, number)
	metrics.RecordTrackerCall("list_comments", err)
	if err != nil {
		return nil, s.readError(op, err)
	}

	comments := make([]Comment, 0, len(raw))
	for _, c := range raw {
		html, err := s.renderer.Render(c.GetBody())
		if err != nil {
			return nil, apperror.New(apperror.Internal, op, err).WithMessage("comment rendering failed")
		}
		comments = append(comments, commentFrom(c, html))
	}

	return comments, nil
}

func (s *Service) readError(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return apperror.Missing(op, "incident not found")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.New(apperror.RequestTimeout, op, err).WithMessage("request cancelled or timed out")
	}

	s.logger.Error().Err(err).Str("op", op).Msg("issue tracker read failed")
	return apperror.New(apperror.Dependency, op, err).WithMessage(githubErrorMessage)
}

// ABOUTME: Weekly progress service combining a session read with bucketing and comparison.
// ABOUTME: Produces a Report consumed by the CLI, MCP tools, and HTTP API.
package progress

import (
	"context"
	"sort"
	"time"

	"github.com/harperreed/trainerlog/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=reader_mock_test.go -package=progress_test

// SessionReader fetches a client's sessions dated within [from, to].
type SessionReader interface {
	FetchSessions(ctx context.Context, id models.ClientIdentity, from, to time.Time) ([]models.Session, error)
}

// Service builds weekly progress reports.
type Service struct {
	reader SessionReader
	now    func() time.Time
	log    logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithToday pins "today" to a fixed date.
func WithToday(today time.Time) Option {
	return WithClock(func() time.Time { return today })
}

// WithLogger sets the logger used for report diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(reader SessionReader, opts ...Option) *Service {
	s := &Service{
		reader: reader,
		now:    time.Now,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report is one client's current-versus-previous week comparison.
type Report struct {
	Client            string                         `json:"client"`
	Today             string                         `json:"today"`
	CurrentWeek       WeekWindow                     `json:"current_week"`
	PreviousWeek      WeekWindow                     `json:"previous_week"`
	CurrentSessions   []models.Session               `json:"current_sessions"`
	PreviousSessions  []models.Session               `json:"previous_sessions"`
	CurrentSummary    map[string]ExerciseWeekSummary `json:"current_summary"`
	PreviousSummary   map[string]ExerciseWeekSummary `json:"previous_summary"`
	Improvements      []Improvement                  `json:"improvements"`
	MalformedSessions int                            `json:"malformed_sessions"`
	DistinctWorkouts  []string                       `json:"distinct_workouts"`
}

// WeeklyReport reads both weeks in one fetch and compares them. Store
// failures propagate; a client with no sessions gets an empty report.
func (s *Service) WeeklyReport(ctx context.Context, id models.ClientIdentity) (*Report, error) {
	today := models.DateOf(s.now())
	current := CurrentWeekWindow(today)
	previous := PreviousWeekWindow(today)

	sessions, err := s.reader.FetchSessions(ctx, id, previous.Start, current.End)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Client:           id.String(),
		Today:            models.FormatDate(today),
		CurrentWeek:      current,
		PreviousWeek:     previous,
		CurrentSessions:  BucketSessions(sessions, current),
		PreviousSessions: BucketSessions(sessions, previous),
	}
	r.CurrentSummary = SummarizeWeek(r.CurrentSessions)
	r.PreviousSummary = SummarizeWeek(r.PreviousSessions)
	r.Improvements = CompareWeeks(r.CurrentSummary, r.PreviousSummary)
	r.DistinctWorkouts = distinctWorkouts(r.CurrentSessions)

	for _, sess := range sessions {
		if sess.Malformed {
			r.MalformedSessions++
		}
	}

	s.log.WithFields(logrus.Fields{
		"client":       r.Client,
		"current":      len(r.CurrentSessions),
		"previous":     len(r.PreviousSessions),
		"improvements": len(r.Improvements),
		"malformed":    r.MalformedSessions,
	}).Debug("built weekly report")

	return r, nil
}

// Prompt renders the current week for a message composer.
func (r *Report) Prompt() string {
	return FormatForPrompt(len(r.CurrentSessions), r.CurrentWeek, r.CurrentSessions)
}

// Dashboard renders the current week as a single line.
func (r *Report) Dashboard() string {
	return FormatForDashboard(len(r.CurrentSessions), r.CurrentWeek, r.CurrentSessions)
}

func distinctWorkouts(sessions []models.Session) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, s := range sessions {
		name := models.NormalizeWorkoutName(s.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ashwink/aadhaar-kiosk/internal/aadhaar"
	"github.com/ashwink/aadhaar-kiosk/internal/sink"
)

// ErrAppointmentRequired means a submission was attempted without choosing
// an appointment type. It is rejected locally, before any network activity.
var ErrAppointmentRequired = errors.New("an appointment type must be selected")

// IDGenerator generates unique IDs for journal entries
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles submission of reviewed records.
type Service struct {
	sink        sink.Sink
	journal     Journal
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source.
// The journal may be nil to disable local submission logging.
func NewService(snk sink.Sink, journal Journal) *Service {
	return &Service{
		sink:        snk,
		journal:     journal,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(snk sink.Sink, journal Journal, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		sink:        snk,
		journal:     journal,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Submit validates the appointment selection, computes the age, and forwards
// the finished record to the sink. Acknowledged submissions are recorded in
// the journal; a journal write failure is logged, not surfaced, since the
// sink already accepted the record.
func (s *Service) Submit(ctx context.Context, record aadhaar.Record, appointment aadhaar.AppointmentType) (*Entry, error) {
	if !appointment.Valid() {
		return nil, ErrAppointmentRequired
	}

	now := s.timeSource.Now()
	submission := aadhaar.Submission{
		Record:          record,
		AppointmentType: appointment,
		Age:             aadhaar.Age(record.DateOfBirth, record.YearOfBirth, now),
	}

	if err := s.sink.Submit(ctx, submission); err != nil {
		return nil, fmt.Errorf("submitting record: %w", err)
	}

	entry := &Entry{
		ID:          s.idGenerator.Generate(),
		Submission:  submission,
		SubmittedAt: now,
	}
	if s.journal != nil {
		if err := s.journal.SaveEntry(entry); err != nil {
			slog.Warn("Failed to journal submission", "id", entry.ID, "error", err)
		}
	}

	return entry, nil
}

// ListSubmissions returns the journaled submissions.
func (s *Service) ListSubmissions() ([]*Entry, error) {
	if s.journal == nil {
		return []*Entry{}, nil
	}
	entries, err := s.journal.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	return entries, nil
}

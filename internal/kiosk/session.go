package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ashwink/aadhaar-kiosk/internal/aadhaar"
	"github.com/ashwink/aadhaar-kiosk/internal/scanning"
)

// Screen identifies which of the three kiosk screens is active.
type Screen string

const (
	ScreenLanding  Screen = "landing"
	ScreenScanning Screen = "scanning"
	ScreenReview   Screen = "review"
)

var (
	// ErrNoRecordUnderReview means a review-screen event arrived while no
	// record was being reviewed.
	ErrNoRecordUnderReview = errors.New("no record under review")

	// ErrSubmissionInFlight means a submission for the current record is
	// already pending.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// Session is the kiosk's screen-flow controller: Landing -> Scanning ->
// Review and back. It owns the scanner lifecycle while the Scanning screen
// is up and holds the extracted record for the duration of Review. Events
// are serialized by the mutex and run to completion; a record is present
// exactly when the Review screen is active.
type Session struct {
	mu         sync.Mutex
	screen     Screen
	record     *aadhaar.Record
	lastError  string
	submitting bool
	handle     scanning.Handle

	scanner scanning.Scanner
	service *Service
}

// NewSession creates a session showing the Landing screen.
func NewSession(scanner scanning.Scanner, service *Service) *Session {
	return &Session{
		screen:  ScreenLanding,
		scanner: scanner,
		service: service,
	}
}

// StartScan leaves Landing for the Scanning screen and starts the scanner.
func (s *Session) StartScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenLanding {
		return fmt.Errorf("cannot start scanning from the %s screen", s.screen)
	}

	s.lastError = ""
	handle, err := s.scanner.Start(s.handleDecoded, s.handleScanError)
	if err != nil {
		s.lastError = fmt.Sprintf("Unable to start the scanner: %v", err)
		return fmt.Errorf("starting scanner: %w", err)
	}
	s.handle = handle
	s.screen = ScreenScanning
	return nil
}

// handleDecoded receives raw decoded text from the scanner, stops the
// capture, and runs the extraction pipeline. Success shows the Review
// screen; failure returns to Landing with a user-facing message.
func (s *Session) handleDecoded(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenScanning {
		return
	}
	s.stopScannerLocked()

	normalized, err := aadhaar.Normalize(text)
	var record aadhaar.Record
	if err == nil {
		record, err = aadhaar.Extract(normalized)
	}
	if err != nil {
		slog.Error("Failed to extract record from scan", "error", err)
		s.record = nil
		s.lastError = fmt.Sprintf("Invalid QR code format: %v. Please scan a valid Aadhaar QR code.", err)
		s.screen = ScreenLanding
		return
	}

	s.record = &record
	s.lastError = ""
	s.screen = ScreenReview
}

// handleScanError receives continuous-scan chatter from the capture source.
// A frame without a readable symbol is not a failure and is never surfaced.
func (s *Session) handleScanError(message string) {
	slog.Debug("Scan frame without symbol", "message", message)
}

// CancelScan abandons the Scanning screen, releasing the scanner.
func (s *Session) CancelScan() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenScanning {
		return
	}
	s.stopScannerLocked()
	s.screen = ScreenLanding
}

// Submit applies the user's edits, validates the appointment selection
// locally, and forwards the finished record to the sink. On sink failure the
// record is kept so the user can retry without rescanning.
func (s *Session) Submit(ctx context.Context, edits aadhaar.Record, appointment aadhaar.AppointmentType) (*Entry, error) {
	s.mu.Lock()
	if s.screen != ScreenReview || s.record == nil {
		s.mu.Unlock()
		return nil, ErrNoRecordUnderReview
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if !appointment.Valid() {
		s.mu.Unlock()
		return nil, ErrAppointmentRequired
	}
	s.applyEditsLocked(edits)
	record := *s.record
	s.submitting = true
	s.mu.Unlock()

	entry, err := s.service.Submit(ctx, record, appointment)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.lastError = fmt.Sprintf("Failed to save data: %v", err)
		return nil, err
	}
	s.record = nil
	s.lastError = ""
	s.screen = ScreenLanding
	return entry, nil
}

// Back abandons the Review screen, discarding the record.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenReview {
		return ErrNoRecordUnderReview
	}
	if s.submitting {
		return ErrSubmissionInFlight
	}
	s.record = nil
	s.lastError = ""
	s.screen = ScreenLanding
	return nil
}

// Close tears the session down, releasing the scanner on whatever screen it
// is left on.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopScannerLocked()
}

func (s *Session) stopScannerLocked() {
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

// applyEditsLocked copies the fields the review form lets the user change.
// The scanned identity fields (uid, gender, dob/yob) and the sub-district
// stay as extracted.
func (s *Session) applyEditsLocked(edits aadhaar.Record) {
	s.record.Name = edits.Name
	s.record.CareOf = edits.CareOf
	s.record.House = edits.House
	s.record.Street = edits.Street
	s.record.Locality = edits.Locality
	s.record.VTC = edits.VTC
	s.record.PostOffice = edits.PostOffice
	s.record.District = edits.District
	s.record.State = edits.State
	s.record.PINCode = edits.PINCode
}

// RecordView is a Record plus its display derivations for the review form.
type RecordView struct {
	aadhaar.Record
	FormattedUID string `json:"formattedUid"`
	GenderLabel  string `json:"genderLabel"`
	AgeLabel     string `json:"ageLabel"`
	FullAddress  string `json:"fullAddress"`
}

// View is a snapshot of the session for the front-end.
type View struct {
	Screen     Screen      `json:"screen"`
	Error      string      `json:"error,omitempty"`
	Submitting bool        `json:"submitting"`
	Record     *RecordView `json:"record,omitempty"`
}

// View returns a consistent snapshot of the session state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		Screen:     s.screen,
		Error:      s.lastError,
		Submitting: s.submitting,
	}
	if s.record != nil {
		record := *s.record
		view.Record = &RecordView{
			Record:       record,
			FormattedUID: aadhaar.FormatUID(record.UID),
			GenderLabel:  aadhaar.ExpandGender(record.Gender),
			AgeLabel:     aadhaar.Age(record.DateOfBirth, record.YearOfBirth, time.Now()).String(),
			FullAddress:  record.FullAddress(),
		}
	}
	return view
}

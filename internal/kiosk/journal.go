package kiosk

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ashwink/aadhaar-kiosk/internal/aadhaar"
)

const submissionBucket = "submissions"

// Entry is one acknowledged submission, recorded locally so kiosk staff can
// review the day's appointments.
type Entry struct {
	ID          string             `json:"id"`
	Submission  aadhaar.Submission `json:"submission"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// Journal defines the interface for the local submission log.
type Journal interface {
	// SaveEntry records an acknowledged submission
	SaveEntry(entry *Entry) error

	// ListEntries returns all recorded submissions
	ListEntries() ([]*Entry, error)

	// Close closes the journal
	Close() error
}

// BoltJournal implements the Journal interface using BoltDB
type BoltJournal struct {
	db *bbolt.DB
}

// NewBoltJournal opens (or creates) a journal at the given path.
func NewBoltJournal(path string) (*BoltJournal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(submissionBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltJournal{db: db}, nil
}

// SaveEntry records an acknowledged submission.
func (b *BoltJournal) SaveEntry(entry *Entry) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(submissionBucket))
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling entry: %w", err)
		}
		return bucket.Put([]byte(entry.ID), data)
	})
}

// ListEntries returns all recorded submissions.
func (b *BoltJournal) ListEntries() ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(submissionBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshaling entry: %w", err)
			}
			entries = append(entries, &entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the journal.
func (b *BoltJournal) Close() error {
	return b.db.Close()
}

package core

// store.go implements the Record Store: an ordered, in-memory sequence of
// committed records.
//
// Positions are the display order. RemoveAt shifts every later record down by
// one, which renumbers every later index; callers that hold on to a record
// across events should hold its ID and use the *ByID operations.

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is matched (via errors.Is) by every IndexError.
var ErrIndexOutOfRange = errors.New("record index out of range")

// ErrRecordNotFound is returned when no record has the requested ID.
var ErrRecordNotFound = errors.New("record not found")

// IndexError reports an index that does not address a stored record.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("record index out of range: %d (store has %d records)", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) hold for any IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// RecordStore is safe for concurrent use.
type RecordStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Append adds r at the end and returns it. An empty ID is filled in.
func (s *RecordStore) Append(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return r
}

// Get returns the record at index.
func (s *RecordStore) Get(index int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkIndex(index); err != nil {
		return Record{}, err
	}
	return s.records[index], nil
}

// ReplaceAt overwrites the record at index and returns the previous one.
// The replacement keeps the previous ID when its own ID is empty.
func (s *RecordStore) ReplaceAt(index int, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Record{}, err
	}
	prev := s.records[index]
	if r.ID == "" {
		r.ID = prev.ID
	}
	s.records[index] = r
	return prev, nil
}

// RemoveAt deletes the record at index and returns it.
func (s *RecordStore) RemoveAt(index int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Record{}, err
	}
	return s.removeLocked(index), nil
}

// IndexOf returns the current position of the record with id, or -1.
func (s *RecordStore) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id)
}

// GetByID returns the record with id.
func (s *RecordStore) GetByID(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return s.records[i], nil
}

// ReplaceByID overwrites the record with id in place and returns the
// previous version. The stored record keeps id.
func (s *RecordStore) ReplaceByID(id string, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	prev := s.records[i]
	r.ID = id
	s.records[i] = r
	return prev, nil
}

// RemoveByID deletes the record with id and returns it.
func (s *RecordStore) RemoveByID(id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return s.removeLocked(i), nil
}

// References reports whether any record holds img as its picture.
func (s *RecordStore) References(img *Image) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ProfilePicture == img {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Slice returns a copy of up to count records starting at offset.
// Out-of-range bounds are clamped, never an error.
func (s *RecordStore) Slice(offset, count int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if offset < 0 {
		offset = 0
	}
	if offset >= n || count <= 0 {
		return []Record{}
	}
	end := offset + count
	if end > n {
		end = n
	}
	out := make([]Record, end-offset)
	copy(out, s.records[offset:end])
	return out
}

// Snapshot returns a copy of every record in order.
func (s *RecordStore) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *RecordStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.records) {
		return &IndexError{Index: index, Len: len(s.records)}
	}
	return nil
}

func (s *RecordStore) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *RecordStore) removeLocked(index int) Record {
	removed := s.records[index]
	copy(s.records[index:], s.records[index+1:])
	s.records[len(s.records)-1] = Record{}
	s.records = s.records[:len(s.records)-1]
	return removed
}

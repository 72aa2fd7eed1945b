package core

import (
	"errors"
	"fmt"
	"testing"
)

func namedRecord(name string) Record {
	p := validProfile()
	p.Name = name
	return Record{Profile: p}
}

func seedStore(t *testing.T, n int) *RecordStore {
	t.Helper()
	s := NewRecordStore()
	for i := 0; i < n; i++ {
		s.Append(namedRecord(fmt.Sprintf("r%d", i)))
	}
	return s
}

func TestRecordStore_AppendAssignsIDs(t *testing.T) {
	s := NewRecordStore()
	a := s.Append(namedRecord("a"))
	b := s.Append(namedRecord("b"))

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected generated IDs")
	}
	if a.ID == b.ID {
		t.Errorf("IDs not unique: %s", a.ID)
	}
	if got := s.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	kept := s.Append(Record{ID: "fixed", Profile: validProfile()})
	if kept.ID != "fixed" {
		t.Errorf("Append overwrote explicit ID: %s", kept.ID)
	}
}

func TestRecordStore_RemoveAtShifts(t *testing.T) {
	s := seedStore(t, 5)
	before := s.Snapshot()

	removed, err := s.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt(1) error = %v", err)
	}
	if removed.ID != before[1].ID {
		t.Errorf("removed %s, want %s", removed.Name, before[1].Name)
	}
	if got := s.Len(); got != 4 {
		t.Fatalf("Len() = %d, want 4", got)
	}

	after := s.Snapshot()
	if after[0].ID != before[0].ID {
		t.Errorf("index 0 changed")
	}
	for i := 1; i < 4; i++ {
		if after[i].ID != before[i+1].ID {
			t.Errorf("after[%d] = %s, want %s", i, after[i].Name, before[i+1].Name)
		}
	}
}

func TestRecordStore_IndexErrors(t *testing.T) {
	s := seedStore(t, 2)

	tests := []struct {
		name string
		op   func() error
	}{
		{"get negative", func() error { _, err := s.Get(-1); return err }},
		{"get past end", func() error { _, err := s.Get(2); return err }},
		{"replace past end", func() error { _, err := s.ReplaceAt(2, namedRecord("x")); return err }},
		{"remove past end", func() error { _, err := s.RemoveAt(5); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("error = %v, want ErrIndexOutOfRange", err)
			}
			var ie *IndexError
			if !errors.As(err, &ie) || ie.Len != 2 {
				t.Errorf("expected *IndexError with Len 2, got %#v", err)
			}
		})
	}

	if s.Len() != 2 {
		t.Errorf("failed operations changed the store: Len() = %d", s.Len())
	}
}

func TestRecordStore_ReplaceAtKeepsLengthAndID(t *testing.T) {
	s := seedStore(t, 3)
	orig, _ := s.Get(1)

	prev, err := s.ReplaceAt(1, namedRecord("changed"))
	if err != nil {
		t.Fatalf("ReplaceAt error = %v", err)
	}
	if prev.Name != "r1" {
		t.Errorf("previous = %q, want r1", prev.Name)
	}

	got, _ := s.Get(1)
	if got.Name != "changed" || got.ID != orig.ID {
		t.Errorf("Get(1) = {%s %s}, want {%s changed}", got.ID, got.Name, orig.ID)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestRecordStore_ByID(t *testing.T) {
	s := seedStore(t, 3)
	target, _ := s.Get(2)

	// Removing an earlier record renumbers the target but not its ID.
	if _, err := s.RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	if got := s.IndexOf(target.ID); got != 1 {
		t.Errorf("IndexOf = %d, want 1", got)
	}

	if _, err := s.ReplaceByID(target.ID, namedRecord("renamed")); err != nil {
		t.Fatalf("ReplaceByID error = %v", err)
	}
	got, _ := s.GetByID(target.ID)
	if got.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", got.Name)
	}

	if _, err := s.RemoveByID(target.ID); err != nil {
		t.Fatalf("RemoveByID error = %v", err)
	}
	if _, err := s.RemoveByID(target.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second RemoveByID error = %v, want ErrRecordNotFound", err)
	}
	if s.IndexOf(target.ID) != -1 {
		t.Errorf("IndexOf after removal should be -1")
	}
}

func TestRecordStore_Slice(t *testing.T) {
	s := seedStore(t, 12)

	tests := []struct {
		name   string
		offset int
		count  int
		want   int
		first  string
	}{
		{"first page", 0, 5, 5, "r0"},
		{"last partial page", 10, 5, 2, "r10"},
		{"past end", 12, 5, 0, ""},
		{"negative offset clamped", -3, 2, 2, "r0"},
		{"zero count", 0, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Slice(tt.offset, tt.count)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 && got[0].Name != tt.first {
				t.Errorf("first = %q, want %q", got[0].Name, tt.first)
			}
		})
	}

	page := s.Slice(0, 5)
	page[0].Name = "mutated"
	if r, _ := s.Get(0); r.Name != "r0" {
		t.Errorf("Slice returned shared storage")
	}
}

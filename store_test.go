package flashanimedit

import (
	"math/rand"
	"testing"
)

func TestNewFrameStore(t *testing.T) {
	store := NewFrameStore()
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
	if store.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", store.Cursor())
	}
	if store.Read() != nil {
		t.Error("initial frame is not blank")
	}
}

func TestCommitThenRead(t *testing.T) {
	store := NewFrameStore()
	surface := fillSurface(1, 2, 3, 255)

	store.Commit(surface)
	if got := store.Read(); !got.Eq(surface) {
		t.Error("Read after Commit returned different pixels")
	}

	// Idempotent: committing the same pixels again changes nothing.
	store.Commit(surface.Clone())
	if got := store.Read(); !got.Eq(surface) {
		t.Error("second Commit of the same pixels changed the frame")
	}
}

func TestInsertAfter(t *testing.T) {
	store := NewFrameStore()
	first := fillSurface(10, 0, 0, 255)
	store.Commit(first)

	cursor := store.InsertAfter()
	if cursor != 1 {
		t.Errorf("cursor after InsertAfter = %d, want 1", cursor)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
	if store.Read() != nil {
		t.Error("inserted frame is not blank")
	}
	if !store.ReadAt(0).Eq(first) {
		t.Error("InsertAfter changed an existing frame")
	}
}

func TestInsertAfterInMiddle(t *testing.T) {
	store := NewFrameStore()
	a := fillSurface(1, 0, 0, 255)
	b := fillSurface(2, 0, 0, 255)

	store.Commit(a)
	store.InsertAfter()
	store.Commit(b)

	store.SetCursor(0)
	store.InsertAfter()

	if store.Len() != 3 {
		t.Fatalf("Len = %d, want 3", store.Len())
	}
	if !store.ReadAt(0).Eq(a) || store.ReadAt(1) != nil || !store.ReadAt(2).Eq(b) {
		t.Error("frame order after middle insert is wrong")
	}
}

func TestDeleteLastFrameIsNoop(t *testing.T) {
	store := NewFrameStore()
	surface := fillSurface(5, 5, 5, 255)
	store.Commit(surface)

	cursor := store.Delete()
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
	if cursor != 0 {
		t.Errorf("cursor = %d, want 0", cursor)
	}
	if !store.Read().Eq(surface) {
		t.Error("no-op delete changed the frame content")
	}
}

func TestDeleteClampsCursor(t *testing.T) {
	store := NewFrameStore()
	store.InsertAfter()
	store.InsertAfter()

	store.SetCursor(2)
	if cursor := store.Delete(); cursor != 1 {
		t.Errorf("cursor after deleting last = %d, want 1", cursor)
	}

	store.SetCursor(0)
	if cursor := store.Delete(); cursor != 0 {
		t.Errorf("cursor after deleting first = %d, want 0", cursor)
	}
}

func TestSetCursorClamps(t *testing.T) {
	store := NewFrameStore()
	store.InsertAfter()
	store.InsertAfter()

	if cursor := store.SetCursor(-5); cursor != 0 {
		t.Errorf("SetCursor(-5) = %d, want 0", cursor)
	}
	if cursor := store.SetCursor(99); cursor != 2 {
		t.Errorf("SetCursor(99) = %d, want 2", cursor)
	}
}

func TestAdvanceWraps(t *testing.T) {
	store := NewFrameStore()
	store.InsertAfter()
	store.InsertAfter()

	store.SetCursor(0)
	for k := 1; k <= 7; k++ {
		got := store.Advance()
		if want := k % 3; got != want {
			t.Fatalf("cursor after %d advances = %d, want %d", k, got, want)
		}
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	store := NewFrameStore()
	store.Commit(fillSurface(1, 1, 1, 255))

	snapshot := store.Snapshot()
	store.InsertAfter()
	store.Commit(fillSurface(2, 2, 2, 255))

	if len(snapshot) != 1 {
		t.Errorf("snapshot length changed to %d", len(snapshot))
	}
}

// Invariants hold for arbitrary insert/delete/cursor sequences.
func TestStructuralInvariants(t *testing.T) {
	store := NewFrameStore()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		switch rng.Intn(4) {
		case 0:
			store.InsertAfter()
		case 1:
			store.Delete()
		case 2:
			store.SetCursor(rng.Intn(20) - 5)
		case 3:
			store.Advance()
		}

		if store.Len() < 1 {
			t.Fatalf("step %d: length dropped to %d", i, store.Len())
		}
		if c := store.Cursor(); c < 0 || c >= store.Len() {
			t.Fatalf("step %d: cursor %d out of range [0,%d)", i, c, store.Len())
		}
	}
}

package flashanimedit

// FrameStore is the ordered sequence of animation frames plus the cursor
// identifying the active one. A frame is either a committed *Surface or nil
// for blank. The store always holds at least one frame, and the cursor is
// clamped into range by every structural mutation; out-of-range requests are
// corrected rather than rejected because cursor moves come from UI events and
// playback wraparound, not from input that needs validation feedback.
//
// FrameStore does no locking of its own. The Engine serializes access.
type FrameStore struct {
	frames []*Surface
	cursor int
}

// NewFrameStore creates a store holding a single blank frame.
func NewFrameStore() *FrameStore {
	return &FrameStore{
		frames: make([]*Surface, 1),
		cursor: 0,
	}
}

// Len returns the number of frames. It is always at least 1.
func (store *FrameStore) Len() int {
	return len(store.frames)
}

// Cursor returns the index of the active frame.
func (store *FrameStore) Cursor() int {
	return store.cursor
}

// SetCursor moves the cursor to i, clamped into [0, Len), and returns the
// resulting cursor.
func (store *FrameStore) SetCursor(i int) int {
	store.cursor = clamp(i, 0, len(store.frames)-1)
	return store.cursor
}

// InsertAfter inserts a blank frame immediately after the cursor and moves
// the cursor onto it. Returns the new cursor.
func (store *FrameStore) InsertAfter() int {
	at := store.cursor + 1
	store.frames = append(store.frames, nil)
	copy(store.frames[at+1:], store.frames[at:])
	store.frames[at] = nil
	store.cursor = at
	return store.cursor
}

// Delete removes the frame at the cursor and clamps the cursor to the
// previous frame. Deleting the last remaining frame is a no-op, so the store
// never becomes empty. Returns the resulting cursor.
func (store *FrameStore) Delete() int {
	if len(store.frames) == 1 {
		return store.cursor
	}

	at := store.cursor
	store.frames = append(store.frames[:at], store.frames[at+1:]...)
	store.cursor = clamp(at-1, 0, len(store.frames)-1)
	return store.cursor
}

// Commit replaces the active frame with surface (nil commits a blank).
// The store takes ownership: callers must hand in a surface that is not
// mutated afterwards, which is why DrawSession.Capture always allocates.
func (store *FrameStore) Commit(surface *Surface) {
	store.frames[store.cursor] = surface
}

// Read returns the active frame's surface, or nil for blank.
func (store *FrameStore) Read() *Surface {
	return store.frames[store.cursor]
}

// ReadAt returns the surface at index i, clamped into range.
func (store *FrameStore) ReadAt(i int) *Surface {
	return store.frames[clamp(i, 0, len(store.frames)-1)]
}

// Advance moves the cursor one frame forward, wrapping at the end, and
// returns the new cursor. This is the playback step.
func (store *FrameStore) Advance() int {
	store.cursor = (store.cursor + 1) % len(store.frames)
	return store.cursor
}

// Snapshot returns a copy of the frame sequence in order. The surfaces
// themselves are immutable once committed, so sharing them is safe.
func (store *FrameStore) Snapshot() []*Surface {
	snapshot := make([]*Surface, len(store.frames))
	copy(snapshot, store.frames)
	return snapshot
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

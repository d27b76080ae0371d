package flashanimedit

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Thumbnail strip layout below the canvas.
const (
	thumbPad = 4
	// WindowWidth and WindowHeight are the display dimensions the engine
	// renders into: the canvas plus the thumbnail strip.
	WindowWidth  = CanvasWidth
	WindowHeight = CanvasHeight + ThumbHeight + 2*thumbPad
)

// Engine ties the frame store, the draw session and the player together and
// is the single entry point for every event: pointer input, frame
// navigation, structural edits, playback ticks and export. One mutex
// serializes all handlers, which is what gives the commit-ordering
// guarantee: no handler ever observes another handler's half-applied state,
// and dirty pixels are committed or discarded before any cursor change
// becomes visible.
type Engine struct {
	mutex   sync.Mutex
	store   *FrameStore
	session *DrawSession
	player  *Player
	display PaintEngine
	log     *logrus.Logger
}

// NewEngine creates an engine with one blank frame, rendering into display.
// A nil display is allowed for headless use. A nil log falls back to the
// standard logger.
func NewEngine(display PaintEngine, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}

	engine := &Engine{
		store:   NewFrameStore(),
		session: NewDrawSession(),
		display: display,
		log:     log,
	}
	engine.player = NewPlayer(engine.advance)
	engine.render()
	return engine
}

// Close stops playback and releases the player's timer. The engine stays
// usable for non-playback operations afterwards.
func (engine *Engine) Close() {
	engine.player.Stop()
}

// Session returns the draw session for tool and color selection.
func (engine *Engine) Session() *DrawSession {
	return engine.session
}

// Cursor returns the index of the active frame.
func (engine *Engine) Cursor() int {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.store.Cursor()
}

// FrameCount returns the number of frames.
func (engine *Engine) FrameCount() int {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.store.Len()
}

// PointerDown begins a stroke at canvas coordinates (x, y).
func (engine *Engine) PointerDown(x, y int) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.session.PointerDown(x, y)
}

// PointerMove extends the active stroke to (x, y).
func (engine *Engine) PointerMove(x, y int) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.session.PointerMove(x, y)
	engine.render()
}

// PointerUp ends the stroke and commits the live surface into the active
// frame. Committing here, synchronously, keeps the dirty window as small as
// one drag and means playback, export and structural edits never see
// unsaved pixels.
func (engine *Engine) PointerUp() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.session.PointerUp()
	if engine.session.Dirty() {
		engine.commitLive()
	}
	engine.render()
}

// SaveFrame commits the live surface into the active frame unconditionally,
// dirty or not.
func (engine *Engine) SaveFrame() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.commitLive()
	engine.render()
}

// SelectFrame moves the cursor to frame i (clamped) and loads that frame
// into the live surface. Uncommitted pixels from a still-active stroke are
// discarded: navigation never saves implicitly.
func (engine *Engine) SelectFrame(i int) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.selectFrame(i)
}

// NextFrame selects the frame after the cursor (clamped at the end).
func (engine *Engine) NextFrame() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.selectFrame(engine.store.Cursor() + 1)
}

// PrevFrame selects the frame before the cursor (clamped at the start).
func (engine *Engine) PrevFrame() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.selectFrame(engine.store.Cursor() - 1)
}

// AddFrame commits any dirty pixels, inserts a blank frame after the cursor
// and selects it.
func (engine *Engine) AddFrame() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.flushDirty()
	engine.store.InsertAfter()
	engine.session.Load(nil)
	engine.log.WithFields(logrus.Fields{
		"cursor": engine.store.Cursor(),
		"frames": engine.store.Len(),
	}).Debug("frame added")
	engine.render()
}

// CopyFrame duplicates the live surface: commits it into the active frame,
// inserts a new frame after the cursor and commits the same pixels there.
func (engine *Engine) CopyFrame() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	pixels := engine.session.Capture()
	engine.store.Commit(pixels)
	engine.session.ClearDirty()

	engine.store.InsertAfter()
	engine.store.Commit(pixels.Clone())
	engine.session.Load(engine.store.Read())
	engine.log.WithFields(logrus.Fields{
		"cursor": engine.store.Cursor(),
		"frames": engine.store.Len(),
	}).Debug("frame copied")
	engine.render()
}

// DeleteFrame removes the active frame and selects the previous one.
// Deleting the only frame is a no-op. Dirty pixels belong to the frame
// being deleted and go with it.
func (engine *Engine) DeleteFrame() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	before := engine.store.Len()
	engine.store.Delete()
	if engine.store.Len() == before {
		return
	}

	engine.session.Load(engine.store.Read())
	engine.log.WithFields(logrus.Fields{
		"cursor": engine.store.Cursor(),
		"frames": engine.store.Len(),
	}).Debug("frame deleted")
	engine.render()
}

// Play commits any dirty pixels and starts looping playback.
func (engine *Engine) Play() {
	engine.mutex.Lock()
	engine.flushDirty()
	engine.mutex.Unlock()

	if err := engine.player.Start(); err != nil {
		return
	}
	engine.log.Debug("playback started")
}

// Pause stops playback, leaving the cursor where the last tick put it.
func (engine *Engine) Pause() {
	engine.player.Stop()
	engine.log.Debug("playback stopped")
}

// TogglePlayback flips between playing and paused.
func (engine *Engine) TogglePlayback() {
	if engine.player.IsRunning() {
		engine.Pause()
	} else {
		engine.Play()
	}
}

// Playing reports whether playback is active.
func (engine *Engine) Playing() bool {
	return engine.player.IsRunning()
}

// Export commits any dirty pixels, snapshots the frame sequence and writes
// the zip archive to w. Encoding runs outside the engine lock on the
// snapshot, so a long compression never stalls input events.
func (engine *Engine) Export(w io.Writer) error {
	frames := engine.exportSnapshot()

	if err := WriteArchive(w, frames); err != nil {
		engine.log.WithError(err).Error("export failed")
		return err
	}
	return nil
}

// ExportFile writes the archive as <dir>/animation.zip and returns its path.
func (engine *Engine) ExportFile(dir string) (string, error) {
	path := filepath.Join(dir, ArchiveName)

	// Stage into a temp file and rename only on success, so a failed
	// export never leaves a partial archive behind.
	file, err := os.CreateTemp(dir, ArchiveName+".tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(file.Name())

	if err := engine.Export(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(file.Name(), path); err != nil {
		return "", err
	}

	engine.log.WithField("path", path).Info("animation exported")
	return path, nil
}

// ExportAPNG writes an animated PNG preview of the drawn frames to path.
func (engine *Engine) ExportAPNG(path string) error {
	frames := engine.exportSnapshot()

	if err := WriteAPNG(path, frames); err != nil {
		engine.log.WithError(err).Error("preview export failed")
		return err
	}
	engine.log.WithField("path", path).Info("preview exported")
	return nil
}

func (engine *Engine) exportSnapshot() []*Surface {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.flushDirty()
	return engine.store.Snapshot()
}

// LoadFrames replaces the whole frame sequence, for playing back a
// previously exported animation. An empty slice leaves a single blank frame.
func (engine *Engine) LoadFrames(frames []*Surface) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.store = NewFrameStore()
	for i, surface := range frames {
		if i > 0 {
			engine.store.InsertAfter()
		}
		engine.store.Commit(surface.Clone())
	}
	engine.store.SetCursor(0)
	engine.session.Load(engine.store.Read())
	engine.render()
}

// ThumbIndexAt maps display coordinates to a frame index in the thumbnail
// strip. ok is false for points outside the strip or past the last frame.
func (engine *Engine) ThumbIndexAt(x, y int) (int, bool) {
	stripY := CanvasHeight + thumbPad
	if y < stripY || y >= stripY+ThumbHeight {
		return 0, false
	}

	i := (x - thumbPad) / (ThumbWidth + thumbPad)
	if i < 0 || i >= engine.FrameCount() {
		return 0, false
	}
	return i, true
}

// advance is the playback tick: one step forward, wrapping at the end.
// The modulus follows the current length, so deleting frames mid-playback
// shifts the loop instead of stopping it.
func (engine *Engine) advance() {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	engine.store.Advance()
	engine.session.Load(engine.store.Read())
	engine.render()
}

func (engine *Engine) selectFrame(i int) {
	engine.store.SetCursor(i)
	engine.session.Load(engine.store.Read())
	engine.render()
}

// commitLive captures the live surface into the active frame.
func (engine *Engine) commitLive() {
	engine.store.Commit(engine.session.Capture())
	engine.session.ClearDirty()
	engine.log.WithField("cursor", engine.store.Cursor()).Debug("frame committed")
}

// flushDirty commits once if the session is dirty.
func (engine *Engine) flushDirty() {
	if engine.session.Dirty() {
		engine.commitLive()
	}
}

// render redraws the display: the live surface on the canvas area and one
// thumbnail per frame in the strip below, the active one on a highlight.
func (engine *Engine) render() {
	if engine.display == nil {
		return
	}
	if err := engine.renderDisplay(); err != nil {
		engine.log.WithError(err).Warn("display render failed")
	}
}

func (engine *Engine) renderDisplay() error {
	if err := engine.display.Begin(); err != nil {
		return err
	}

	if err := engine.display.DrawSurface(image.Point{}, engine.session.Capture()); err != nil {
		return err
	}

	stripY := CanvasHeight + thumbPad
	for i := 0; i < engine.store.Len(); i++ {
		x := thumbPad + i*(ThumbWidth+thumbPad)
		if x+ThumbWidth > engine.display.GetWidth() {
			break
		}

		if i == engine.store.Cursor() {
			highlight := image.Rect(x-2, stripY-2, x+ThumbWidth+2, stripY+ThumbHeight+2)
			if err := engine.display.Clear(highlight); err != nil {
				return err
			}
		}

		thumb := Thumbnail(engine.store.ReadAt(i))
		if err := engine.display.DrawSurface(image.Point{X: x, Y: stripY}, thumb); err != nil {
			return err
		}
	}

	return engine.display.End()
}

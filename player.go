package flashanimedit

import (
	"errors"
	"sync"
	"time"
)

// FramePeriod is the fixed playback cadence: one frame every 100ms.
const FramePeriod = 100 * time.Millisecond

// Player advances the frame cursor at a fixed cadence while running.
// It owns the recurring timer as a scoped resource: Start acquires it,
// Stop releases it unconditionally, and no timer outlives the running
// state. The advance callback is invoked once per tick and never touches
// frame content, only the cursor.
type Player struct {
	advance func()

	mutex   sync.Mutex
	running bool
	stop    chan struct{}
}

// NewPlayer creates a stopped Player that calls advance on every tick.
func NewPlayer(advance func()) *Player {
	return &Player{advance: advance}
}

// Start begins playback.
func (player *Player) Start() error {
	player.mutex.Lock()
	defer player.mutex.Unlock()

	if player.running {
		return errors.New("player is already running")
	}

	player.running = true
	player.stop = make(chan struct{})
	go player.run(player.stop)
	return nil
}

// Stop halts playback. Stopping a stopped player is a no-op. After Stop
// returns no further ticks are delivered.
func (player *Player) Stop() {
	player.mutex.Lock()
	defer player.mutex.Unlock()

	if !player.running {
		return
	}

	player.running = false
	close(player.stop)
}

// IsRunning reports whether playback is active.
func (player *Player) IsRunning() bool {
	player.mutex.Lock()
	defer player.mutex.Unlock()
	return player.running
}

func (player *Player) run(stop chan struct{}) {
	ticker := time.NewTicker(FramePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// The running check and the advance happen under one lock
			// acquisition, so Stop cannot return while a tick is mid
			// flight and no cursor movement lands after pause.
			player.mutex.Lock()
			if !player.running {
				player.mutex.Unlock()
				return
			}
			player.advance()
			player.mutex.Unlock()
		}
	}
}

package wavepack

import (
	"sync"
	"time"

	intaudio "github.com/cbegin/wavepack-go/internal/audio"
)

// streamSource feeds a Player's output to the audio device. The device
// pulls from its own goroutine, so access to the session is serialized
// here; the engine itself stays single-threaded.
type streamSource struct {
	mu     sync.Mutex
	player *Player[float32]
	resume *Packer
	done   bool
}

func (s *streamSource) Process(dst []float32) (n int, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return 0, true
	}
	rest, resume := s.player.Play(dst)
	if resume != nil {
		s.done = true
		s.resume = resume
		return len(dst) - len(rest), true
	}
	return len(dst), false
}

// StreamPlayer streams a playback session to the platform audio device.
// The stream ends when the schedule exhausts; the re-serialized
// remainder is then available from Resume.
type StreamPlayer struct {
	audio  *intaudio.Player
	source *streamSource
}

// NewStreamPlayer wires player to the shared audio context at the given
// rate. The session is handed over: the caller must not call Play on
// player afterwards.
func NewStreamPlayer(sampleRate int, player *Player[float32]) (*StreamPlayer, error) {
	source := &streamSource{player: player}
	backend, err := intaudio.NewPlayer(sampleRate, source)
	if err != nil {
		return nil, err
	}
	return &StreamPlayer{audio: backend, source: source}, nil
}

func (s *StreamPlayer) Play()           { s.audio.Play() }
func (s *StreamPlayer) Pause()          { s.audio.Pause() }
func (s *StreamPlayer) IsPlaying() bool { return s.audio.IsPlaying() }

// Position returns the device playback position (what the listener
// actually hears right now).
func (s *StreamPlayer) Position() time.Duration {
	return s.audio.Position()
}

func (s *StreamPlayer) Stop() error {
	return s.audio.Stop()
}

// Resume returns the re-serialized remaining schedule once the stream
// has exhausted, or nil while playback is still live.
func (s *StreamPlayer) Resume() *Packer {
	s.source.mu.Lock()
	defer s.source.mu.Unlock()
	return s.source.resume
}

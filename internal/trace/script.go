package trace

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/procne/internal/core"
)

// ErrInvalidScript is wrapped by every script validation failure.
var ErrInvalidScript = errors.New("trace: invalid script")

// Script is a deterministic input recording for a headless run.
//
//	episode: sands
//	seed: 7
//	frames: 600
//	input:
//	  - {frame: 0, down: right}
//	  - {frame: 30, tap: jump}
type Script struct {
	Episode    string  `yaml:"episode"`
	Seed       int64   `yaml:"seed"`
	Frames     int     `yaml:"frames"`
	Difficulty string  `yaml:"difficulty,omitempty"`
	StopOnEnd  bool    `yaml:"stop_on_finish,omitempty"`
	Input      []Input `yaml:"input"`
}

// Input is one key change applied before the given frame is stepped.
// Tap presses before the frame and releases after it.
type Input struct {
	Frame int    `yaml:"frame"`
	Down  string `yaml:"down,omitempty"`
	Up    string `yaml:"up,omitempty"`
	Tap   string `yaml:"tap,omitempty"`
}

// ParseScript decodes and validates a YAML script. Inputs are sorted by frame.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("trace: parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	sort.SliceStable(s.Input, func(i, j int) bool { return s.Input[i].Frame < s.Input[j].Frame })
	return s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("trace: reading script %s: %w", path, err)
	}
	return ParseScript(data)
}

// Validate checks frame bounds and key names.
func (s Script) Validate() error {
	if s.Episode == "" {
		return fmt.Errorf("%w: missing episode", ErrInvalidScript)
	}
	if s.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive", ErrInvalidScript)
	}
	for i, in := range s.Input {
		if in.Frame < 0 || in.Frame >= s.Frames {
			return fmt.Errorf("%w: input %d: frame %d outside 0..%d", ErrInvalidScript, i, in.Frame, s.Frames-1)
		}
		set := 0
		for _, name := range []string{in.Down, in.Up, in.Tap} {
			if name == "" {
				continue
			}
			set++
			if ParseKey(name) == core.KeyNone {
				return fmt.Errorf("%w: input %d: unknown key %q", ErrInvalidScript, i, name)
			}
		}
		if set != 1 {
			return fmt.Errorf("%w: input %d: exactly one of down, up, tap", ErrInvalidScript, i)
		}
	}
	return nil
}

// ParseKey maps a key name to a key, ignoring case. Unknown names return KeyNone.
func ParseKey(name string) core.Key {
	for k := core.KeyLeft; k <= core.KeyPause; k++ {
		if strings.EqualFold(k.String(), name) {
			return k
		}
	}
	return core.KeyNone
}

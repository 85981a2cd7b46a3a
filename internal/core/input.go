package core

// Key is a semantic input, abstracted from physical key presses.
type Key int

const (
	KeyNone     Key = iota
	KeyLeft         // Left arrow, A
	KeyRight        // Right arrow, D
	KeyJump         // Space - jump; held while airborne it slashes
	KeyInteract     // E - interact, drag, dismiss dialogue
	KeyShield       // Down arrow, S - shield (boss episode)
	KeyPause        // P, Escape
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyJump:
		return "Jump"
	case KeyInteract:
		return "Interact"
	case KeyShield:
		return "Shield"
	case KeyPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseKey maps a key name back to a Key. Unknown names return KeyNone.
func ParseKey(name string) Key {
	for k := KeyLeft; k <= KeyPause; k++ {
		if k.String() == name {
			return k
		}
	}
	return KeyNone
}

// KeyState is the held/released map written by input callbacks and read by
// the simulation passes.
type KeyState struct {
	held map[Key]bool
}

// NewKeyState creates an empty key state.
func NewKeyState() KeyState {
	return KeyState{held: make(map[Key]bool)}
}

// Press marks a key as held.
func (s *KeyState) Press(k Key) {
	if s.held == nil {
		s.held = make(map[Key]bool)
	}
	s.held[k] = true
}

// Release marks a key as released.
func (s *KeyState) Release(k Key) {
	if s.held == nil {
		return
	}
	s.held[k] = false
}

// Held reports whether the key is currently down.
func (s KeyState) Held(k Key) bool {
	if s.held == nil {
		return false
	}
	return s.held[k]
}

// Clear releases every key.
func (s *KeyState) Clear() {
	for k := range s.held {
		delete(s.held, k)
	}
}

// Clone creates a copy of this key state.
func (s KeyState) Clone() KeyState {
	clone := NewKeyState()
	for k, v := range s.held {
		clone.held[k] = v
	}
	return clone
}

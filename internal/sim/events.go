package sim

// Cue is a discrete feedback moment for audio and other collaborators.
type Cue int

const (
	CueLand Cue = iota
	CueSlash
	CueTask
	CueBossHit
	CueHurt
	CueBlocked
	CueLocked
	CueStun
	CueHeal
	CuePickup
	CueReset
	CueFinish
)

var cueNames = [...]string{
	CueLand:    "land",
	CueSlash:   "slash",
	CueTask:    "task",
	CueBossHit: "boss_hit",
	CueHurt:    "hurt",
	CueBlocked: "blocked",
	CueLocked:  "locked",
	CueStun:    "stun",
	CueHeal:    "heal",
	CuePickup:  "pickup",
	CueReset:   "reset",
	CueFinish:  "finish",
}

// String returns the cue name.
func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// Events are the callbacks a session fires toward its collaborators.
// Any of them may be nil. They run on the frame goroutine.
type Events struct {
	OnTaskComplete func(count int)
	OnZoneChange   func(name string)
	OnDialogue     func(text string) // Empty text means the dialogue was dismissed
	OnFinish       func()
	OnCue          func(c Cue)
}

func (e Events) taskComplete(count int) {
	if e.OnTaskComplete != nil {
		e.OnTaskComplete(count)
	}
}

func (e Events) zoneChange(name string) {
	if e.OnZoneChange != nil {
		e.OnZoneChange(name)
	}
}

func (e Events) dialogue(text string) {
	if e.OnDialogue != nil {
		e.OnDialogue(text)
	}
}

func (e Events) finish() {
	if e.OnFinish != nil {
		e.OnFinish()
	}
}

func (e Events) cue(c Cue) {
	if e.OnCue != nil {
		e.OnCue(c)
	}
}

// Line is narrator text tagged with the generation of the session that asked
// for it.
type Line struct {
	Gen  uint64
	Text string
}

// Narrator produces flavor text asynchronously. Request must not block;
// finished lines arrive on Lines and are applied by the session only when
// their generation is still current.
type Narrator interface {
	Request(gen uint64, prompt string)
	Lines() <-chan Line
}

// Package trace records simulation frames as a msgpack stream and replays
// YAML input scripts headlessly. Two runs of the same script and seed
// produce byte-identical traces.
package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/procne/internal/sim"
)

// Version is the stream format version written in every header.
const Version = 1

// ErrVersion is returned for streams written by an unknown format version.
var ErrVersion = errors.New("trace: unsupported version")

// Header opens every trace stream.
type Header struct {
	Version  int    `msgpack:"v"`
	Episode  string `msgpack:"ep"`
	Seed     int64  `msgpack:"seed"`
	TickRate int    `msgpack:"hz"`
}

// FrameRecord is the compact per-tick summary of a snapshot.
type FrameRecord struct {
	Tick       uint64  `msgpack:"t"`
	X          float64 `msgpack:"x"`
	Y          float64 `msgpack:"y"`
	VX         float64 `msgpack:"vx"`
	VY         float64 `msgpack:"vy"`
	Grounded   bool    `msgpack:"g"`
	HP         int     `msgpack:"hp"`
	Tasks      int     `msgpack:"tasks"`
	Carried    string  `msgpack:"item,omitempty"`
	Camera     float64 `msgpack:"cam"`
	Shake      float64 `msgpack:"shake"`
	HitStop    float64 `msgpack:"stop"`
	Entities   int     `msgpack:"ents"`
	Visible    int     `msgpack:"vis"`
	Particles  int     `msgpack:"parts"`
	BossHP     int     `msgpack:"boss,omitempty"`
	BossAction string  `msgpack:"act,omitempty"`
	Dialogue   bool    `msgpack:"dlg"`
	Finished   bool    `msgpack:"fin"`
	Deaths     int     `msgpack:"deaths"`
}

// FromSnapshot summarises a snapshot.
func FromSnapshot(s sim.Snapshot) FrameRecord {
	r := FrameRecord{
		Tick:      s.Tick,
		X:         s.Player.Pos.X,
		Y:         s.Player.Pos.Y,
		VX:        s.Player.Vel.X,
		VY:        s.Player.Vel.Y,
		Grounded:  s.Player.Grounded,
		HP:        s.Player.HP,
		Tasks:     s.Player.Tasks,
		Carried:   string(s.Player.Carried),
		Camera:    s.Camera,
		Shake:     s.Shake,
		HitStop:   s.HitStop,
		Entities:  len(s.Entities),
		Particles: len(s.Particles),
		Dialogue:  s.Dialogue,
		Finished:  s.Finished,
		Deaths:    s.Deaths,
	}
	for i := range s.Entities {
		if s.Entities[i].Visible {
			r.Visible++
		}
	}
	if hp, _ := s.BossHP(); hp > 0 || s.Phase > 0 {
		r.BossHP = hp
		r.BossAction = s.Boss.Action.String()
	}
	return r
}

// Writer encodes a header followed by frame records.
type Writer struct {
	enc    *msgpack.Encoder
	frames int
}

// NewWriter writes the header and returns a writer for frames.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	h.Version = Version
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("trace: writing header: %w", err)
	}
	return &Writer{enc: enc}, nil
}

// Write appends one frame.
func (w *Writer) Write(r FrameRecord) error {
	if err := w.enc.Encode(&r); err != nil {
		return fmt.Errorf("trace: writing frame %d: %w", r.Tick, err)
	}
	w.frames++
	return nil
}

// Frames returns how many frames were written.
func (w *Writer) Frames() int { return w.frames }

// Reader decodes a trace stream.
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and checks the header.
func NewReader(r io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(r)
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("trace: reading header: %w", err)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return &Reader{dec: dec, header: h}, nil
}

// Header returns the stream header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next frame, or io.EOF at the end of the stream.
func (r *Reader) Next() (FrameRecord, error) {
	var rec FrameRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return FrameRecord{}, io.EOF
		}
		return FrameRecord{}, fmt.Errorf("trace: reading frame: %w", err)
	}
	return rec, nil
}

// Summary aggregates a whole trace.
type Summary struct {
	Header     Header
	Frames     int
	LastTick   uint64
	FinishTick uint64 // 0 when the run never finished
	MinHP      int
	MaxShake   float64
	Deaths     int
	Tasks      int
	MaxX       float64
}

// Summarize reads r to the end.
func Summarize(r *Reader) (Summary, error) {
	s := Summary{Header: r.Header(), MinHP: -1}
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}
		s.Frames++
		s.LastTick = rec.Tick
		if rec.Finished && s.FinishTick == 0 {
			s.FinishTick = rec.Tick
		}
		if s.MinHP < 0 || rec.HP < s.MinHP {
			s.MinHP = rec.HP
		}
		s.MaxShake = max(s.MaxShake, rec.Shake)
		s.MaxX = max(s.MaxX, rec.X)
		s.Deaths = rec.Deaths
		s.Tasks = rec.Tasks
	}
}

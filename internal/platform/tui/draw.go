package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/procne/internal/campaign"
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/sim"
	"github.com/vovakirdan/procne/internal/world"
)

const (
	hudRows      = 1
	dialogueRows = 2
	bossBarWidth = 10
)

// Frame is everything the renderer needs for one picture.
type Frame struct {
	State     campaign.State
	Snapshot  sim.Snapshot
	Title     string
	Index     int // Position in the campaign
	Episodes  int
	DoorTasks int
	Dialogue  string
	Ending    float64 // Fade progress, 0..1
	Elapsed   float64 // Campaign totals
	Deaths    int
}

// FrameOf captures the campaign's current frame. Before Begin the snapshot
// is empty.
func FrameOf(c *campaign.Campaign) Frame {
	m := c.Episode()
	f := Frame{
		State:     c.State(),
		Title:     m.Title,
		Index:     c.Index(),
		Episodes:  c.Len(),
		DoorTasks: m.Door.Tasks,
		Dialogue:  c.Dialogue(),
		Ending:    c.EndingProgress(),
	}
	f.Elapsed, f.Deaths = c.Totals()
	if s := c.Session(); s != nil {
		f.Snapshot = s.Snapshot()
	}
	return f
}

// Renderer projects world coordinates onto a character screen.
type Renderer struct {
	cfg config.Config
}

// NewRenderer creates a renderer for the given world frame.
func NewRenderer(cfg config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// view maps world units to cells for one screen size.
type view struct {
	sx, sy float64
	camera float64
	offset int
	top    int
	rows   int
}

func (r *Renderer) viewFor(scr *core.Screen, snap sim.Snapshot) view {
	rows := scr.Height() - hudRows - dialogueRows
	if rows < 1 {
		rows = 1
	}
	v := view{
		sx:     float64(scr.Width()) / r.cfg.World.ViewportWidth,
		sy:     float64(rows) / r.cfg.World.Height,
		camera: snap.Camera,
		top:    hudRows,
		rows:   rows,
	}
	if snap.Shake >= 1 {
		v.offset = core.Clamp(int(snap.Shake*v.sx+0.5), 1, 2)
		if snap.Tick%2 == 1 {
			v.offset = -v.offset
		}
	}
	return v
}

func (v view) col(wx float64) int {
	return int(math.Floor((wx-v.camera)*v.sx)) + v.offset
}

func (v view) row(wy float64) int {
	return v.top + int(math.Floor(wy*v.sy))
}

// cells returns the cell rectangle covering b, at least one cell in size.
func (v view) cells(b core.Box) (x, y, w, h int) {
	x, y = v.col(b.X), v.row(b.Y)
	w = core.Max(1, v.col(b.Right())-x)
	h = core.Max(1, v.row(b.Bottom())-y)
	return x, y, w, h
}

// Draw renders a frame onto scr.
func (r *Renderer) Draw(scr *core.Screen, f Frame) {
	scr.Clear()
	switch f.State {
	case campaign.StateIntro:
		r.drawIntro(scr, f)
		return
	case campaign.StateFinished:
		r.drawFinished(scr, f)
		return
	}

	v := r.viewFor(scr, f.Snapshot)
	r.drawGround(scr, v)
	for i := range f.Snapshot.Entities {
		r.drawEntity(scr, v, &f.Snapshot.Entities[i])
	}
	r.drawPlayer(scr, v, f.Snapshot.Player)
	for _, p := range f.Snapshot.Particles {
		scr.SetColored(v.col(p.Pos.X), v.row(p.Pos.Y), '*', p.Color)
	}
	r.drawHUD(scr, f)
	r.drawDialogue(scr, f)

	if f.State == campaign.StateEnding {
		fade(scr, f.Ending)
	}
	if f.Snapshot.Paused {
		scr.DrawTextCentered(v.top+v.rows/2, " PAUSED ")
	}
}

func (r *Renderer) drawGround(scr *core.Screen, v view) {
	y := v.row(r.cfg.World.GroundY)
	scr.DrawHLine(0, y, scr.Width(), '#', core.ColorBrown)
	for yy := y + 1; yy < v.top+v.rows; yy++ {
		scr.DrawHLine(0, yy, scr.Width(), '.', core.ColorBrown)
	}
}

func (r *Renderer) drawEntity(scr *core.Screen, v view, e *world.Entity) {
	if !e.Visible {
		return
	}
	x, y, w, h := v.cells(e.Box)
	switch p := e.Payload.(type) {
	case *world.Platform:
		if !p.Invisible {
			scr.DrawHLine(x, y, w, '=', core.ColorGrey)
		}
	case *world.Mound:
		scr.FillRect(x, y, w, h, '^', core.ColorBrown)
	case *world.Pillar:
		glyph := '|'
		if math.Abs(p.Tilt) > 0 {
			glyph = '/'
		}
		scr.FillRect(x, y, w, h, glyph, core.ColorGrey)
	case *world.Stone:
		scr.FillRect(x, y, w, h, '#', core.ColorGrey)
	case *world.Pedestal:
		scr.DrawHLine(x, y+h-1, w, '_', core.ColorWhite)
	case *world.SandTrap:
		scr.DrawHLine(x, y, w, '~', core.ColorYellow)
	case *world.WindTunnel:
		if !p.Active {
			return
		}
		glyph := '>'
		if p.Force < 0 {
			glyph = '<'
		}
		scr.FillRect(x, y, w, h, glyph, core.ColorBlue)
	case *world.Door:
		c := core.ColorOrange
		if p.Unlocked {
			c = core.ColorGreen
		}
		scr.FillRect(x, y, w, h, '+', c)
	case *world.Collectible:
		glyph, c := itemGlyph(p.Item)
		scr.SetColored(x+w/2, y+h/2, glyph, c)
	case *world.Turbine:
		c := core.ColorGrey
		if p.Complete {
			c = core.ColorGreen
		}
		scr.FillRect(x, y, w, h, 'T', c)
	case *world.Cauldron:
		c := core.ColorGrey
		if p.Complete {
			c = core.ColorGreen
		}
		scr.FillRect(x, y, w, h, 'U', c)
	case *world.OfferingBowl:
		c := core.ColorGrey
		if p.Filled {
			c = core.ColorGreen
		}
		scr.DrawHLine(x, y+h-1, w, 'o', c)
	case *world.Boss:
		if e.Interacted {
			return
		}
		scr.FillRect(x, y, w, h, 'B', core.ColorRed)
	case *world.Projectile:
		scr.SetColored(x, y, 'o', core.ColorOrange)
	}
}

func itemGlyph(item world.ItemKind) (rune, core.Color) {
	switch item {
	case world.ItemKey:
		return 'k', core.ColorYellow
	case world.ItemGear:
		return 'g', core.ColorGrey
	case world.ItemIngredient:
		return 'i', core.ColorGreen
	case world.ItemHeart:
		return 'v', core.ColorRed
	case world.ItemBone:
		return 'b', core.ColorWhite
	default:
		return '?', core.ColorDefault
	}
}

func (r *Renderer) drawPlayer(scr *core.Screen, v view, p world.Player) {
	x, y, w, h := v.cells(p.Box())
	c := core.ColorWhite
	if p.Shielding {
		c = core.ColorBlue
	}
	scr.FillRect(x, y, w, h, '@', c)
	if p.Slashing {
		sx := x + w
		if !p.FacingRight {
			sx = x - 2
		}
		scr.DrawHLine(sx, y+h/2, 2, '-', core.ColorYellow)
	}
}

func (r *Renderer) drawHUD(scr *core.Screen, f Frame) {
	snap := f.Snapshot
	var b strings.Builder
	fmt.Fprintf(&b, " %d/%d %s", f.Index+1, f.Episodes, snap.Zone)
	fmt.Fprintf(&b, "  hp %s", hearts(snap.Player.HP, snap.Player.MaxHP))
	if f.DoorTasks > 0 {
		fmt.Fprintf(&b, "  tasks %d/%d", snap.Player.Tasks, f.DoorTasks)
	}
	if snap.Player.Carried != world.ItemNone {
		fmt.Fprintf(&b, "  carry %s", snap.Player.Carried)
	}
	if hp, maxHP := snap.BossHP(); maxHP > 0 && hp > 0 {
		fmt.Fprintf(&b, "  boss %s", bar(hp, maxHP, bossBarWidth))
	}
	if snap.Deaths > 0 {
		fmt.Fprintf(&b, "  resets %d", snap.Deaths)
	}
	scr.DrawHLine(0, 0, scr.Width(), ' ', core.ColorDefault)
	scr.DrawText(0, 0, b.String())
}

func hearts(hp, maxHP int) string {
	if hp < 0 {
		hp = 0
	}
	if hp > maxHP {
		hp = maxHP
	}
	return strings.Repeat("♥", hp) + strings.Repeat("♡", maxHP-hp)
}

func bar(value, total, width int) string {
	filled := 0
	if total > 0 {
		filled = core.Clamp(value*width/total, 0, width)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (r *Renderer) drawDialogue(scr *core.Screen, f Frame) {
	if !f.Snapshot.Dialogue || f.Dialogue == "" {
		return
	}
	y := scr.Height() - dialogueRows
	scr.FillRect(0, y, scr.Width(), dialogueRows, ' ', core.ColorDefault)
	scr.DrawHLine(0, y, scr.Width(), '-', core.ColorGrey)
	line := truncate(f.Dialogue, scr.Width()-6)
	scr.DrawText(1, y+1, line)
	scr.DrawText(scr.Width()-4, y+1, "[e]")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "."
	}
	return string(r[:width-1]) + "."
}

// fade blanks rows from the top and bottom as progress goes from 0 to 1.
func fade(scr *core.Screen, progress float64) {
	n := int(math.Ceil(progress * float64(scr.Height()) / 2))
	for i := 0; i < n; i++ {
		scr.DrawHLine(0, i, scr.Width(), ' ', core.ColorBlack)
		scr.DrawHLine(0, scr.Height()-1-i, scr.Width(), ' ', core.ColorBlack)
	}
}

func (r *Renderer) drawIntro(scr *core.Screen, f Frame) {
	mid := scr.Height() / 2
	scr.DrawTextCentered(mid-2, "P R O C N E")
	scr.DrawTextCentered(mid, f.Title)
	scr.DrawTextCentered(mid+2, "space or e to begin  |  q to quit")
}

func (r *Renderer) drawFinished(scr *core.Screen, f Frame) {
	mid := scr.Height() / 2
	scr.DrawTextCentered(mid-1, "The cycle closes.")
	scr.DrawTextCentered(mid+1, fmt.Sprintf("%.1fs  resets %d", f.Elapsed, f.Deaths))
	scr.DrawTextCentered(mid+3, "q to quit")
}

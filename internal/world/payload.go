package world

// Payload is the per-kind data of an entity. The set of implementations is
// closed: resolvers switch over the concrete pointer types exhaustively.
type Payload interface {
	Kind() Kind
	clone() Payload
}

// Platform is one-way terrain: it only supports the player from above.
type Platform struct {
	Invisible bool // Not drawn, still collides
}

// Mound is a hazard that depletes after enough slash hits.
// On depletion it completes RewardTask and/or reveals a RewardItem pickup.
type Mound struct {
	Hits       int
	RewardTask string
	RewardItem ItemKind
}

// Pillar is a tilted monolith the player rights with interact presses.
type Pillar struct {
	Tilt float64 // Degrees; zero means aligned
}

// Stone is a draggable block.
type Stone struct{}

// Pedestal resolves when the tracked draggable overlaps it.
type Pedestal struct {
	Tracks string // Entity ID of the draggable
	TaskID string
}

// SandTrap slows the player while their feet are inside it.
type SandTrap struct {
	Multiplier float64 // 0 uses the physics default
}

// WindTunnel pushes the player horizontally while Active.
type WindTunnel struct {
	Force  float64 // Added to horizontal velocity every tick
	Active bool
}

// Door finishes the episode when its unlock rule holds.
type Door struct {
	Unlocked bool
}

// Collectible is a pickup. Hearts heal on pickup; everything else is carried.
type Collectible struct {
	Item   ItemKind
	TaskID string // Completed on pickup when set
}

// Turbine consumes Requires items and shuts Tunnel off when complete.
type Turbine struct {
	Requires  ItemKind
	Progress  int
	Threshold int
	Complete  bool
	Tunnel    string
	TaskID    string
}

// Cauldron consumes Requires items and brews a Reward pickup when complete.
type Cauldron struct {
	Requires  ItemKind
	Progress  int
	Threshold int
	Complete  bool
	Reward    ItemKind
	TaskID    string
}

// OfferingBowl accepts a single Requires item.
type OfferingBowl struct {
	Requires ItemKind
	Filled   bool
	TaskID   string
}

// Boss is the episode adversary's health. Its behaviour lives in BossState.
type Boss struct {
	HP    int
	MaxHP int
}

// Projectile travels horizontally at VX per tick until it hits or leaves range.
type Projectile struct {
	VX float64
}

func (*Platform) Kind() Kind     { return KindPlatform }
func (*Mound) Kind() Kind        { return KindMound }
func (*Pillar) Kind() Kind       { return KindPillar }
func (*Stone) Kind() Kind        { return KindStone }
func (*Pedestal) Kind() Kind     { return KindPedestal }
func (*SandTrap) Kind() Kind     { return KindSandTrap }
func (*WindTunnel) Kind() Kind   { return KindWindTunnel }
func (*Door) Kind() Kind         { return KindDoor }
func (*Collectible) Kind() Kind  { return KindCollectible }
func (*Turbine) Kind() Kind      { return KindTurbine }
func (*Cauldron) Kind() Kind     { return KindCauldron }
func (*OfferingBowl) Kind() Kind { return KindOfferingBowl }
func (*Boss) Kind() Kind         { return KindBoss }
func (*Projectile) Kind() Kind   { return KindProjectile }

func (p *Platform) clone() Payload     { c := *p; return &c }
func (p *Mound) clone() Payload        { c := *p; return &c }
func (p *Pillar) clone() Payload       { c := *p; return &c }
func (p *Stone) clone() Payload        { c := *p; return &c }
func (p *Pedestal) clone() Payload     { c := *p; return &c }
func (p *SandTrap) clone() Payload     { c := *p; return &c }
func (p *WindTunnel) clone() Payload   { c := *p; return &c }
func (p *Door) clone() Payload         { c := *p; return &c }
func (p *Collectible) clone() Payload  { c := *p; return &c }
func (p *Turbine) clone() Payload      { c := *p; return &c }
func (p *Cauldron) clone() Payload     { c := *p; return &c }
func (p *OfferingBowl) clone() Payload { c := *p; return &c }
func (p *Boss) clone() Payload         { c := *p; return &c }
func (p *Projectile) clone() Payload   { c := *p; return &c }

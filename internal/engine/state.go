package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-agi/internal/resource"
)

// Options configures a new State.
type Options struct {
	GameID       string // "KQ4" enables the 4-loop table for views with more loops
	PriorityBase int    // 0 means DefaultPriorityBase
	Horizon      int    // 0 means DefaultHorizon
	Seed         int64
	MinDist      int // wander distance range; 0 means MinDist/MaxDist
	MaxDist      int
}

// Block is the screen rectangle set by the block command. Objects that
// observe blocks may not cross its boundary.
type Block struct {
	Active bool
	X1, Y1 int
	X2, Y2 int
}

// Contains reports whether (x, y) lies strictly inside the block.
func (b Block) Contains(x, y int) bool {
	return x > b.X1 && x < b.X2 && y > b.Y1 && y < b.Y2
}

// State is the mutable interpreter context shared by the script executor
// and the object engine. It is not safe for concurrent use.
type State struct {
	Vars        [NumVars]uint8
	Flags       [NumFlags]bool
	Strings     [NumStrings]string
	Controllers [NumControllers]bool
	Objects     [NumObjects]*Object
	Items       []resource.Item

	// Planes is the composited picture area. Objects save and restore the
	// pixels under them between frames.
	Planes *resource.Planes

	GameID       string
	PriorityBase int
	Horizon      int
	Block        Block
	UserControl  bool
	GraphicsMode bool

	views       resource.ViewSource
	loadedViews map[int]*resource.View
	initialInv  []resource.Item
	drawList    []*Object
	rng         *rand.Rand
	minDist     int
	maxDist     int
	horizon     int
}

// New creates a State with all object slots allocated and Init applied.
func New(views resource.ViewSource, items []resource.Item, opts Options) *State {
	s := &State{
		Planes:      resource.NewPlanes(),
		GameID:      opts.GameID,
		views:       views,
		loadedViews: make(map[int]*resource.View),
		initialInv:  items,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		minDist:     opts.MinDist,
		maxDist:     opts.MaxDist,
		horizon:     opts.Horizon,
	}
	if s.minDist <= 0 || s.maxDist < s.minDist {
		s.minDist, s.maxDist = MinDist, MaxDist
	}
	s.PriorityBase = opts.PriorityBase
	if s.horizon <= 0 {
		s.horizon = DefaultHorizon
	}
	if s.PriorityBase <= 0 {
		s.PriorityBase = DefaultPriorityBase
	}
	for i := range s.Objects {
		s.Objects[i] = &Object{Number: i, state: s}
	}
	s.Init()
	return s
}

// Init puts the state into its start-of-game configuration. It is used on
// start and restart.
func (s *State) Init() {
	s.ClearVars()
	s.Vars[VarMachineType] = 0
	s.Vars[VarMonitorType] = 3
	s.Vars[VarInputLen] = 41
	s.Vars[VarNumVoices] = 3
	s.Vars[VarAnimationInt] = 2
	s.Vars[VarMemLeft] = 255

	s.ClearFlags()
	s.Flags[FlagHasNoise] = true
	s.Flags[FlagInitLogics] = true
	s.Flags[FlagSoundOn] = true

	for i := range s.Strings {
		s.Strings[i] = ""
	}
	for i := range s.Controllers {
		s.Controllers[i] = false
	}

	s.Horizon = s.horizon
	s.UserControl = true
	s.GraphicsMode = true
	s.Block = Block{}
	s.Planes.Clear()
	s.drawList = nil

	for _, o := range s.Objects {
		o.Reset(true)
	}
	s.ResetItems()
}

// ClearVars sets every variable to zero.
func (s *State) ClearVars() {
	for i := range s.Vars {
		s.Vars[i] = 0
	}
}

// ClearFlags sets every flag to false.
func (s *State) ClearFlags() {
	for i := range s.Flags {
		s.Flags[i] = false
	}
}

// ResetItems restores the inventory to its initial rooms.
func (s *State) ResetItems() {
	s.Items = make([]resource.Item, len(s.initialInv))
	copy(s.Items, s.initialInv)
}

// RoomReset soft-resets every object and clears the block and horizon for
// a room change.
func (s *State) RoomReset() {
	for _, o := range s.Objects {
		o.Reset(false)
	}
	s.drawList = nil
	s.Block = Block{}
	s.Horizon = s.horizon
	s.UserControl = true
}

// Ego returns object 0.
func (s *State) Ego() *Object {
	return s.Objects[0]
}

// Object returns object n.
func (s *State) Object(n int) (*Object, error) {
	if err := checkIndex("object", n, NumObjects); err != nil {
		return nil, err
	}
	return s.Objects[n], nil
}

// Item returns inventory item n.
func (s *State) Item(n int) (*resource.Item, error) {
	if err := checkIndex("item", n, len(s.Items)); err != nil {
		return nil, err
	}
	return &s.Items[n], nil
}

// CheckString validates a string slot number.
func (s *State) CheckString(n int) error {
	return checkIndex("string", n, NumStrings)
}

// CheckController validates a controller number.
func (s *State) CheckController(n int) error {
	return checkIndex("controller", n, NumControllers)
}

// Random returns a uniform integer in [0, n).
func (s *State) Random(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// RandomRange returns a uniform integer in [lo, hi). It returns lo when the
// range is empty.
func (s *State) RandomRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo)
}

// SetBlock activates the block rectangle.
func (s *State) SetBlock(x1, y1, x2, y2 int) {
	s.Block = Block{Active: true, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// LoadView fetches view n from the view source and keeps it loaded.
func (s *State) LoadView(n int) (*resource.View, error) {
	if v, ok := s.loadedViews[n]; ok {
		return v, nil
	}
	if s.views == nil {
		return nil, &ResourceError{Kind: "view", Number: n, Err: resource.ErrNotFound}
	}
	v, err := s.views.View(n)
	if err != nil {
		return nil, &ResourceError{Kind: "view", Number: n, Err: err}
	}
	s.loadedViews[n] = v
	return v, nil
}

// DiscardView forgets a loaded view. Objects still using it reload it on
// demand.
func (s *State) DiscardView(n int) {
	delete(s.loadedViews, n)
}

// view returns view n, loading it if needed, or nil when unavailable.
func (s *State) view(n int) *resource.View {
	v, err := s.LoadView(n)
	if err != nil {
		return nil
	}
	return v
}

// bandHeight is the height in pixels of one of the ten priority bands
// between the priority base and the bottom of the picture.
func (s *State) bandHeight() float64 {
	return (168.0 - float64(s.PriorityBase)) / 10.0
}

// CalculatePriority returns the priority band for a baseline at y.
func (s *State) CalculatePriority(y int) int {
	if y < s.PriorityBase {
		return 4
	}
	return int(math.Floor(float64(y-s.PriorityBase)/s.bandHeight() + 5))
}

// BandStart returns the Y used to order an object whose priority is fixed
// at pri: the last line above the band.
func (s *State) BandStart(pri int) int {
	return int(math.Floor(float64(s.PriorityBase) + math.Ceil(s.bandHeight()*float64(pri-4)) - 1))
}

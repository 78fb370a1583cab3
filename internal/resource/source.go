package resource

import "errors"

// ErrNotFound is wrapped by every lookup of a resource that does not exist.
var ErrNotFound = errors.New("resource: not found")

// Kind identifies a resource directory.
type Kind int

const (
	KindLogic Kind = iota
	KindPicture
	KindView
	KindSound
)

var kindNames = [...]string{"logic", "picture", "view", "sound"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Item is one inventory object: its name and the room it is in.
// Room 0 is limbo and room 255 means the player carries it.
type Item struct {
	Name string
	Room uint8
}

// Inventory rooms with special meaning.
const (
	Limbo    = 0
	Carrying = 255
)

// LogicSource serves raw script resources by number.
type LogicSource interface {
	Logic(n int) ([]byte, error)
}

// ViewSource serves decoded views by number.
type ViewSource interface {
	View(n int) (*View, error)
}

// Rasterizer renders picture resources into the shared planes. DrawPicture
// replaces the planes, OverlayPicture draws on top of them.
type Rasterizer interface {
	DrawPicture(n int, p *Planes) error
	OverlayPicture(n int, p *Planes) error
}

// SoundPlayer plays sound resources. Playback is asynchronous; Done is
// polled once per tick to detect completion.
type SoundPlayer interface {
	Play(n int) error
	Stop()
	Done() bool
}

// Vocabulary maps typed words to word numbers. Synonyms share a number.
type Vocabulary interface {
	WordNumber(word string) (int, bool)
}

// Inventory lists the initial inventory items.
type Inventory interface {
	Items() []Item
}

// Game bundles every collaborator an interpreter needs.
type Game struct {
	Logics     LogicSource
	Views      ViewSource
	Pictures   Rasterizer
	Sounds     SoundPlayer
	Vocabulary Vocabulary
	Inventory  Inventory
}

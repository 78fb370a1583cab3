package resource

import (
	"fmt"
	"strings"
)

// Library is an in-memory resource set. It serves logics, views and
// pictures from maps and implements every collaborator contract except
// SoundPlayer.
type Library struct {
	Logics   map[int][]byte
	Views    map[int]*View
	Pictures map[int]*Planes
	Words    map[string]int
	Objects  []Item
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		Logics:   make(map[int][]byte),
		Views:    make(map[int]*View),
		Pictures: make(map[int]*Planes),
		Words:    make(map[string]int),
	}
}

// Logic returns the raw bytes of logic n.
func (l *Library) Logic(n int) ([]byte, error) {
	data, ok := l.Logics[n]
	if !ok {
		return nil, fmt.Errorf("resource: logic %d: %w", n, ErrNotFound)
	}
	return data, nil
}

// View returns view n.
func (l *Library) View(n int) (*View, error) {
	v, ok := l.Views[n]
	if !ok {
		return nil, fmt.Errorf("resource: view %d: %w", n, ErrNotFound)
	}
	return v, nil
}

// DrawPicture replaces the planes with the stored picture n.
func (l *Library) DrawPicture(n int, p *Planes) error {
	pic, ok := l.Pictures[n]
	if !ok {
		return fmt.Errorf("resource: picture %d: %w", n, ErrNotFound)
	}
	p.CopyFrom(pic)
	return nil
}

// OverlayPicture copies every non-empty pixel of picture n onto the planes.
func (l *Library) OverlayPicture(n int, p *Planes) error {
	pic, ok := l.Pictures[n]
	if !ok {
		return fmt.Errorf("resource: picture %d: %w", n, ErrNotFound)
	}
	for i := range pic.Visual {
		if pic.Visual[i] != DefaultVisual {
			p.Visual[i] = pic.Visual[i]
		}
		if pic.Priority[i] != DefaultPriority {
			p.Priority[i] = pic.Priority[i]
		}
		if pic.Control[i] != DefaultControl {
			p.Control[i] = pic.Control[i]
		}
	}
	return nil
}

// WordNumber looks a word up case-insensitively.
func (l *Library) WordNumber(word string) (int, bool) {
	n, ok := l.Words[strings.ToLower(word)]
	return n, ok
}

// Items returns the inventory items.
func (l *Library) Items() []Item {
	return l.Objects
}

// Blank is a Rasterizer that renders every picture as an empty picture.
type Blank struct{}

func (Blank) DrawPicture(n int, p *Planes) error {
	p.Clear()
	return nil
}

func (Blank) OverlayPicture(n int, p *Planes) error { return nil }

// Silent is a SoundPlayer that finishes every sound immediately.
type Silent struct{}

func (Silent) Play(n int) error { return nil }
func (Silent) Stop()            {}
func (Silent) Done() bool       { return true }

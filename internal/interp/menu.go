package interp

import (
	"strings"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
)

// Menu is one drop-down of the menu bar.
type Menu struct {
	Name  string
	Items []MenuItem
}

// MenuItem is a menu entry. Choosing it sets Controller for the next tick.
type MenuItem struct {
	Name       string
	Controller int
	Enabled    bool
}

type menuState struct {
	menus     []Menu
	submitted bool
	// selected holds controllers chosen in the menu, applied after the
	// controllers are cleared at the start of the next tick.
	selected []int
	cur      int
	item     int
}

// Menus returns the defined menus.
func (x *Executor) Menus() []Menu {
	return x.menu.menus
}

func (x *Executor) addMenu(name string) {
	if x.menu.submitted {
		return
	}
	x.menu.menus = append(x.menu.menus, Menu{Name: name})
}

func (x *Executor) addMenuItem(name string, controller int) {
	if x.menu.submitted || len(x.menu.menus) == 0 {
		return
	}
	m := &x.menu.menus[len(x.menu.menus)-1]
	m.Items = append(m.Items, MenuItem{Name: name, Controller: controller, Enabled: true})
}

func (x *Executor) enableMenuItems(controller int, enabled bool) {
	for i := range x.menu.menus {
		for j := range x.menu.menus[i].Items {
			if x.menu.menus[i].Items[j].Controller == controller {
				x.menu.menus[i].Items[j].Enabled = enabled
			}
		}
	}
}

// menuText renders the open menu with a marker on the current item.
func (x *Executor) menuText() string {
	m := x.menu.menus[x.menu.cur]
	var b strings.Builder
	b.WriteString(m.Name)
	for i, it := range m.Items {
		b.WriteByte('\n')
		switch {
		case i == x.menu.item:
			b.WriteString("> ")
		case !it.Enabled:
			b.WriteString("- ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(it.Name)
	}
	return b.String()
}

// openMenu suspends the scan while the player navigates the menus.
func (x *Executor) openMenu() (flow, error) {
	if !x.state.Flags[engine.FlagEnableMenu] || len(x.menu.menus) == 0 {
		return flowNext, nil
	}
	ms := &x.menu
	ms.cur, ms.item = 0, 0
	x.text.OpenWindow(x.menuText(), 1, 0, 0)

	x.keys.ClearQueue()
	return x.suspend(&Wait{
		Reason: "menu",
		key: func(k core.Key) bool {
			if k.IsChar() {
				return false
			}
			switch k.Code() {
			case core.KeyEscape:
				return true
			case core.KeyEnter:
				it := ms.menus[ms.cur].Items
				if ms.item < len(it) && it[ms.item].Enabled {
					ms.selected = append(ms.selected, it[ms.item].Controller)
					return true
				}
				return false
			case core.KeyLeft:
				ms.cur = (ms.cur + len(ms.menus) - 1) % len(ms.menus)
				ms.item = 0
			case core.KeyRight:
				ms.cur = (ms.cur + 1) % len(ms.menus)
				ms.item = 0
			case core.KeyUp:
				if ms.item > 0 {
					ms.item--
				}
			case core.KeyDown:
				if ms.item < len(ms.menus[ms.cur].Items)-1 {
					ms.item++
				}
			}
			x.text.OpenWindow(x.menuText(), 1, 0, 0)
			return false
		},
		done: x.text.CloseWindow,
	})
}

type soundState struct {
	playing bool
	flag    int
}

// startSound plays sound n and sets flag when it ends. With sound off the
// flag is set at once.
func (x *Executor) startSound(n, flag int) error {
	s := x.state
	x.stopSound()
	s.Flags[flag] = false
	if !s.Flags[engine.FlagSoundOn] || x.game.Sounds == nil {
		s.Flags[flag] = true
		return nil
	}
	if err := x.game.Sounds.Play(n); err != nil {
		return &engine.ResourceError{Kind: "sound", Number: n, Err: err}
	}
	x.sound = soundState{playing: true, flag: flag}
	return nil
}

func (x *Executor) stopSound() {
	if !x.sound.playing {
		return
	}
	if x.game.Sounds != nil {
		x.game.Sounds.Stop()
	}
	x.state.Flags[x.sound.flag] = true
	x.sound.playing = false
}

// pollSound sets the completion flag once playback has ended.
func (x *Executor) pollSound() {
	if x.sound.playing && x.game.Sounds != nil && x.game.Sounds.Done() {
		x.state.Flags[x.sound.flag] = true
		x.sound.playing = false
	}
}

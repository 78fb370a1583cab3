package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

var dirFiles = [...]string{
	KindLogic:   "LOGDIR",
	KindPicture: "PICDIR",
	KindView:    "VIEWDIR",
	KindSound:   "SNDDIR",
}

// entry locates one resource inside a volume file.
type entry struct {
	vol    int
	offset int
}

// Dir reads resources from a game directory laid out as LOGDIR, PICDIR,
// VIEWDIR and SNDDIR index files plus VOL.n volumes. Volumes are read on
// first use and kept in memory.
type Dir struct {
	path    string
	entries [len(dirFiles)]map[int]entry

	mu    sync.Mutex
	vols  map[int][]byte
	views map[int]*View

	words map[string]int
	items []Item
}

// OpenDir indexes the game at path. The WORDS.TOK and OBJECT files are
// optional; when present they back WordNumber and Items.
func OpenDir(path string) (*Dir, error) {
	d := &Dir{
		path:  path,
		vols:  make(map[int][]byte),
		views: make(map[int]*View),
		words: make(map[string]int),
	}

	for kind, name := range dirFiles {
		data, err := os.ReadFile(filepath.Join(path, name))
		if err != nil {
			return nil, fmt.Errorf("resource: cannot read %s: %w", name, err)
		}
		d.entries[kind] = parseDirectory(data)
	}

	if data, err := os.ReadFile(filepath.Join(path, "WORDS.TOK")); err == nil {
		d.words = DecodeWords(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("resource: cannot read WORDS.TOK: %w", err)
	}

	if data, err := os.ReadFile(filepath.Join(path, "OBJECT")); err == nil {
		items, err := DecodeObjects(data)
		if err != nil {
			return nil, err
		}
		d.items = items
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("resource: cannot read OBJECT: %w", err)
	}

	return d, nil
}

// parseDirectory decodes 3-byte records: the high nibble of the first byte
// is the volume, the remaining 20 bits the offset. FF FF FF marks a gap.
func parseDirectory(data []byte) map[int]entry {
	entries := make(map[int]entry)
	for i := 0; i+3 <= len(data); i += 3 {
		b0, b1, b2 := data[i], data[i+1], data[i+2]
		if b0 == 0xFF && b1 == 0xFF && b2 == 0xFF {
			continue
		}
		entries[i/3] = entry{
			vol:    int(b0 >> 4),
			offset: int(b0&0x0F)<<16 | int(b1)<<8 | int(b2),
		}
	}
	return entries
}

// Count returns the number of resources of a kind present in the index.
func (d *Dir) Count(kind Kind) int {
	return len(d.entries[kind])
}

// Numbers returns the resource numbers of a kind in ascending order.
func (d *Dir) Numbers(kind Kind) []int {
	var out []int
	for n := 0; n < 256; n++ {
		if _, ok := d.entries[kind][n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Raw returns the bytes of resource n of the given kind, without its
// 5-byte volume header.
func (d *Dir) Raw(kind Kind, n int) ([]byte, error) {
	e, ok := d.entries[kind][n]
	if !ok {
		return nil, fmt.Errorf("resource: %s %d: %w", kind, n, ErrNotFound)
	}

	vol, err := d.volume(e.vol)
	if err != nil {
		return nil, err
	}
	if e.offset+5 > len(vol) {
		return nil, fmt.Errorf("resource: %s %d: header beyond end of VOL.%d", kind, n, e.vol)
	}
	if vol[e.offset] != 0x12 || vol[e.offset+1] != 0x34 {
		return nil, fmt.Errorf("resource: %s %d: bad volume signature", kind, n)
	}
	length := int(vol[e.offset+3]) | int(vol[e.offset+4])<<8
	start := e.offset + 5
	if start+length > len(vol) {
		return nil, fmt.Errorf("resource: %s %d: length %d beyond end of VOL.%d", kind, n, length, e.vol)
	}

	out := make([]byte, length)
	copy(out, vol[start:start+length])
	return out, nil
}

func (d *Dir) volume(n int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if v, ok := d.vols[n]; ok {
		return v, nil
	}
	name := fmt.Sprintf("VOL.%d", n)
	v, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		return nil, fmt.Errorf("resource: cannot read %s: %w", name, err)
	}
	d.vols[n] = v
	return v, nil
}

// Logic returns the raw bytes of logic n.
func (d *Dir) Logic(n int) ([]byte, error) {
	return d.Raw(KindLogic, n)
}

// View decodes view n, caching the result.
func (d *Dir) View(n int) (*View, error) {
	d.mu.Lock()
	v, ok := d.views[n]
	d.mu.Unlock()
	if ok {
		return v, nil
	}

	data, err := d.Raw(KindView, n)
	if err != nil {
		return nil, err
	}
	v, err = DecodeView(data)
	if err != nil {
		return nil, fmt.Errorf("resource: view %d: %w", n, err)
	}

	d.mu.Lock()
	d.views[n] = v
	d.mu.Unlock()
	return v, nil
}

// WordNumber looks up a word from WORDS.TOK.
func (d *Dir) WordNumber(word string) (int, bool) {
	n, ok := d.words[word]
	return n, ok
}

// Items returns the inventory from the OBJECT file.
func (d *Dir) Items() []Item {
	return d.items
}

// WordCount returns how many words WORDS.TOK defines.
func (d *Dir) WordCount() int {
	return len(d.words)
}

package resource

import (
	"fmt"
	"strings"
)

// wordsStart is the offset of the first word entry; the bytes before it are
// a letter index that is not needed for lookups.
const wordsStart = 0x34

// DecodeWords decodes a WORDS.TOK file into a word to word-number map. Each
// entry reuses a prefix of the previous word, then stores its remaining
// letters XORed with 0x7F, the last one with the top bit set, followed by a
// big-endian word number.
func DecodeWords(data []byte) map[string]int {
	words := make(map[string]int)
	var buf []byte
	pos := wordsStart
	for pos < len(data)-1 {
		keep := int(data[pos])
		pos++
		if keep > len(buf) {
			keep = len(buf)
		}
		buf = buf[:keep]

		for pos < len(data) {
			b := data[pos]
			pos++
			buf = append(buf, (b^0x7F)&0x7F)
			if b >= 0x80 {
				break
			}
		}
		if pos+2 > len(data) {
			break
		}
		num := int(data[pos])<<8 | int(data[pos+1])
		pos += 2
		words[string(buf)] = num
	}
	return words
}

var objectKey = []byte("Avis Durgan")

// DecodeObjects decodes an OBJECT file. The file is XOR-encrypted when the
// high nibble of its second byte matches that of 'v'.
func DecodeObjects(data []byte) ([]Item, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("resource: OBJECT file too short")
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	if raw[1]&0xF0 == 'v'&0xF0 {
		for i := range raw {
			raw[i] ^= objectKey[i%len(objectKey)]
		}
	}

	count := (int(raw[0]) | int(raw[1])<<8) / 3
	items := make([]Item, 0, count)
	for n, marker := 0, 3; n < count; n, marker = n+1, marker+3 {
		if marker+3 > len(raw) {
			return nil, fmt.Errorf("resource: OBJECT index truncated at item %d", n)
		}
		start := (int(raw[marker]) | int(raw[marker+1])<<8) + 3
		if start >= len(raw) {
			return nil, fmt.Errorf("resource: OBJECT name of item %d out of range", n)
		}
		end := start
		for end < len(raw) && raw[end] != 0 {
			end++
		}
		items = append(items, Item{
			Name: strings.TrimSpace(string(raw[start:end])),
			Room: raw[marker+2],
		})
	}
	return items, nil
}

package logic

// Assemble builds a raw script resource from an instruction section and a
// message list (message 1 first). It is the inverse of Decode's framing and
// is used to produce resources for tooling and tests.
func Assemble(code []byte, messages []string, crypted bool) []byte {
	out := make([]byte, 0, len(code)+64)
	out = append(out, byte(len(code)), byte(len(code)>>8))
	out = append(out, code...)

	base := len(out)
	count := len(messages)
	textStart := base + 3 + count*2

	var text []byte
	pointers := make([]int, count)
	for i, m := range messages {
		pointers[i] = textStart + len(text) - (base + 1)
		text = append(text, m...)
		text = append(text, 0)
	}
	if crypted {
		for i := range text {
			text[i] ^= cryptKey[i%len(cryptKey)]
		}
	}

	end := textStart + len(text) - (base + 1)
	out = append(out, byte(count), byte(end), byte(end>>8))
	for _, p := range pointers {
		out = append(out, byte(p), byte(p>>8))
	}
	return append(out, text...)
}

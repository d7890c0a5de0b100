package translate

import "strings"

// DefaultChunkSize is the maximum characters per translation chunk.
const DefaultChunkSize = 4000

// Split cuts text into chunks of at most max bytes, preferring line
// boundaries so no logical line spans two chunks unless a single line
// alone exceeds max. The limit is measured in bytes, which stays
// within a character budget of the same size (a rune is at least one
// byte, and hard splits never cut mid-rune). Concatenating the chunks
// in order reproduces the input exactly.
func Split(text string, max int) []string {
	if max <= 0 {
		max = DefaultChunkSize
	}
	if len(text) <= max {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if cur.Len()+len(line) > max {
			flush()
		}
		if len(line) > max {
			for _, piece := range hardSplit(line, max) {
				chunks = append(chunks, piece)
			}
			continue
		}
		cur.WriteString(line)
	}
	flush()

	return chunks
}

// hardSplit cuts an oversized single line at rune boundaries.
func hardSplit(line string, max int) []string {
	var pieces []string
	for len(line) > max {
		cut := max
		// Back off to a rune boundary.
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		if cut == 0 {
			cut = max
		}
		pieces = append(pieces, line[:cut])
		line = line[cut:]
	}
	if line != "" {
		pieces = append(pieces, line)
	}
	return pieces
}

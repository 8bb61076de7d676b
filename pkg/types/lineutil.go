package types

// LineOf computes the 1-indexed line number of a byte offset in content.
// Offsets past the end report the last line.
func LineOf(content []byte, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
		}
	}
	return line
}

package inspect

// sanitize returns a copy of src with comments, string and character
// literals, and preprocessor lines blanked out. Every blanked byte becomes
// a space except newlines, which are preserved so byte offsets keep
// mapping to the same line numbers. Non-ASCII bytes are blanked too, so
// the result is pure ASCII and rune offsets equal byte offsets.
func sanitize(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	const (
		code = iota
		lineComment
		blockComment
		stringLit
		charLit
		preprocessor
	)

	state := code
	atLineStart := true
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = lineComment
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = blockComment
				out[i] = ' '
			case c == '"':
				state = stringLit
				out[i] = ' '
			case c == '\'':
				state = charLit
				out[i] = ' '
			case c == '#' && atLineStart:
				state = preprocessor
				out[i] = ' '
			case c >= 0x80:
				out[i] = ' '
			}
		case lineComment:
			if c == '\n' {
				state = code
			} else {
				out[i] = ' '
			}
		case blockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = code
			} else if c != '\n' {
				out[i] = ' '
			}
		case stringLit:
			switch c {
			case '\\':
				out[i] = ' '
				if i+1 < len(out) && out[i+1] != '\n' {
					out[i+1] = ' '
					i++
				}
			case '"':
				out[i] = ' '
				state = code
			case '\n':
				state = code // unterminated; re-sync
			default:
				out[i] = ' '
			}
		case charLit:
			switch c {
			case '\\':
				out[i] = ' '
				if i+1 < len(out) && out[i+1] != '\n' {
					out[i+1] = ' '
					i++
				}
			case '\'':
				out[i] = ' '
				state = code
			case '\n':
				state = code
			default:
				out[i] = ' '
			}
		case preprocessor:
			if c == '\n' {
				// A backslash continuation keeps the directive going.
				if i == 0 || src[i-1] != '\\' {
					state = code
				}
			} else {
				out[i] = ' '
			}
		}
		if c == '\n' {
			atLineStart = true
		} else if c != ' ' && c != '\t' {
			atLineStart = false
		}
	}
	return out
}

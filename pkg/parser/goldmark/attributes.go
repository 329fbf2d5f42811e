package goldmark

import "strings"

// ParseAttributes scans a directive attribute list such as
// {#id .a.b key=value title="x y"} at the start of src.
// It returns the attributes, the number of bytes consumed including both
// braces, and false when src does not start with a well-formed list.
//
// Classes accumulate in order under "class", joined by a single space.
// For every other key the last occurrence wins.
func ParseAttributes(src []byte) (map[string]string, int, bool) {
	if len(src) == 0 || src[0] != '{' {
		return nil, 0, false
	}

	attrs := make(map[string]string)
	var classes []string
	i := 1

	for {
		i = skipSpaces(src, i)
		if i >= len(src) {
			return nil, 0, false
		}

		switch c := src[i]; {
		case c == '}':
			if len(classes) > 0 {
				attrs["class"] = strings.Join(classes, " ")
			}
			return attrs, i + 1, true

		case c == '#':
			value, next := scanShorthand(src, i+1)
			if value == "" {
				return nil, 0, false
			}
			attrs["id"] = value
			i = next

		case c == '.':
			for i < len(src) && src[i] == '.' {
				value, next := scanShorthand(src, i+1)
				if value == "" {
					return nil, 0, false
				}
				classes = append(classes, value)
				i = next
			}

		case isAttrNameChar(c):
			start := i
			for i < len(src) && isAttrNameChar(src[i]) {
				i++
			}
			key := string(src[start:i])

			j := skipSpaces(src, i)
			if j >= len(src) || src[j] != '=' {
				attrs[key] = ""
				continue
			}

			value, next, ok := scanValue(src, skipSpaces(src, j+1))
			if !ok {
				return nil, 0, false
			}
			if key == "class" {
				classes = append(classes, strings.Fields(value)...)
			} else {
				attrs[key] = value
			}
			i = next

		default:
			return nil, 0, false
		}

		// Entries must be separated by whitespace or end at the brace.
		if i < len(src) && src[i] != '}' && !isSpace(src[i]) && src[i] != '.' {
			return nil, 0, false
		}
	}
}

// scanShorthand reads an #id or .class name starting at i.
func scanShorthand(src []byte, i int) (string, int) {
	start := i
	for i < len(src) && isShorthandChar(src[i]) {
		i++
	}
	return string(src[start:i]), i
}

// scanValue reads a quoted or unquoted attribute value starting at i.
func scanValue(src []byte, i int) (string, int, bool) {
	if i >= len(src) {
		return "", i, false
	}

	if quote := src[i]; quote == '"' || quote == '\'' {
		end := i + 1
		for end < len(src) && src[end] != quote {
			if src[end] == '\n' {
				return "", i, false
			}
			end++
		}
		if end >= len(src) {
			return "", i, false
		}
		return string(src[i+1 : end]), end + 1, true
	}

	start := i
	for i < len(src) && isUnquotedValueChar(src[i]) {
		i++
	}
	if i == start {
		return "", i, false
	}
	return string(src[start:i]), i, true
}

func skipSpaces(src []byte, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isAttrNameChar(c byte) bool {
	return isNameChar(c) || c == ':' || c == '.'
}

func isShorthandChar(c byte) bool {
	return isNameChar(c) || c == ':'
}

func isUnquotedValueChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '"', '\'', '=', '<', '>', '`', '{', '}':
		return false
	default:
		return true
	}
}

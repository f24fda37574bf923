// Package chunker splits file content into bounded-size pieces for summarization.
package chunker

import "strings"

// boundaryKeywords maps recognized source file extensions to the line prefixes
// that open a new logical chunk. Content is cut immediately before a line that
// starts with one of the prefixes, so a function or class definition always
// begins its own chunk.
var boundaryKeywords = map[string][]string{
	".py": {"def ", "class "},
	".go": {"func ", "type "},
}

// Split partitions content into ordered chunks of at most maxLength characters.
// For recognized source extensions the content is first divided at function and
// class boundaries and each resulting piece is whitespace-trimmed, with empty
// pieces dropped. Any piece still exceeding maxLength, and the whole content of
// an unrecognized extension, falls back to fixed-size slicing.
func Split(content string, extension string, maxLength int) []string {
	keywords, recognized := boundaryKeywords[strings.ToLower(extension)]
	if !recognized {
		if len(content) > maxLength {
			return sliceFixed(content, maxLength)
		}
		return []string{content}
	}

	var chunks []string
	for _, piece := range splitAtBoundaries(content, keywords) {
		trimmedPiece := strings.TrimSpace(piece)
		if trimmedPiece == "" {
			continue
		}
		if len(trimmedPiece) > maxLength {
			chunks = append(chunks, sliceFixed(trimmedPiece, maxLength)...)
			continue
		}
		chunks = append(chunks, trimmedPiece)
	}
	return chunks
}

// splitAtBoundaries cuts content before every line that begins with one of the
// boundary keywords. Content preceding the first boundary stays attached to the
// first piece, and the concatenation of all pieces reproduces the input.
func splitAtBoundaries(content string, keywords []string) []string {
	contentLines := strings.SplitAfter(content, "\n")
	var pieces []string
	var currentPiece strings.Builder
	for _, contentLine := range contentLines {
		if lineOpensChunk(contentLine, keywords) && currentPiece.Len() > 0 {
			pieces = append(pieces, currentPiece.String())
			currentPiece.Reset()
		}
		currentPiece.WriteString(contentLine)
	}
	if currentPiece.Len() > 0 {
		pieces = append(pieces, currentPiece.String())
	}
	return pieces
}

// lineOpensChunk reports whether the line starts with any boundary keyword.
// Indented definitions are intentionally not boundaries; they stay with the
// enclosing top-level chunk.
func lineOpensChunk(line string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.HasPrefix(line, keyword) {
			return true
		}
	}
	return false
}

// sliceFixed divides content into consecutive windows of exactly maxLength
// characters; the final window may be shorter.
func sliceFixed(content string, maxLength int) []string {
	windows := make([]string, 0, (len(content)+maxLength-1)/maxLength)
	for windowStart := 0; windowStart < len(content); windowStart += maxLength {
		windowEnd := windowStart + maxLength
		if windowEnd > len(content) {
			windowEnd = len(content)
		}
		windows = append(windows, content[windowStart:windowEnd])
	}
	return windows
}

// Package csvparse turns the raw text of an attendance or waiting-list
// CSV export into token rows and canonical header names. The upstream
// exports are not RFC 4180: the delimiter varies between semicolon and
// comma, quoting is inconsistent, and a trailing column is routinely
// missing, so the split rules here mirror the source system rather than
// encoding/csv.
package csvparse

import "strings"

// SniffDelimiter picks the field delimiter from the header line:
// semicolon only when it strictly outnumbers commas, comma otherwise
// (ties included).
func SniffDelimiter(header string) byte {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// Tokenize splits CSV text into cleaned token rows. The first returned
// row is the header. Data rows with fewer than len(header)-1 tokens are
// dropped: one missing trailing column is tolerated, more signals a
// malformed line. Blank lines are skipped. Returns nil when the text
// has no header line.
func Tokenize(text string) [][]string {
	lines := splitLines(text)

	var header []string
	var rows [][]string
	delim := byte(',')
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == nil {
			delim = SniffDelimiter(line)
			header = splitQuoted(line, delim)
			rows = append(rows, header)
			continue
		}
		tokens := splitQuoted(line, delim)
		if len(tokens) < len(header)-1 {
			continue
		}
		rows = append(rows, tokens)
	}
	return rows
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// splitQuoted splits a line on delim, treating a delimiter as quoted
// (and therefore not a split point) when an odd number of '"' characters
// precede it. Tokens are stripped of quote characters and surrounding
// whitespace.
func splitQuoted(line string, delim byte) []string {
	var tokens []string
	start := 0
	quotes := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			quotes++
		case delim:
			if quotes%2 == 0 {
				tokens = append(tokens, cleanToken(line[start:i]))
				start = i + 1
			}
		}
	}
	tokens = append(tokens, cleanToken(line[start:]))
	return tokens
}

func cleanToken(tok string) string {
	return strings.TrimSpace(strings.ReplaceAll(tok, `"`, ""))
}

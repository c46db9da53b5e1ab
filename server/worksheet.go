package server

import (
	"fmt"
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/chazu/unitconv/dimension"
	"github.com/chazu/unitconv/input"
	"github.com/chazu/unitconv/registry"
)

// A worksheet is a text document with one conversion ("10 m/s => mi/h") or
// unit expression ("kg*m/s^2") per line. Blank lines and lines starting
// with '#' are ignored.

// evaluateLine returns the rendered result of one worksheet line. ok is
// false for lines that hold nothing to evaluate.
func evaluateLine(reg *registry.Registry, line string, precision int) (result string, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false, nil
	}

	if input.HasSeparator(line) {
		res, err := input.Convert(reg, line)
		if err != nil {
			return "", true, err
		}
		return res.Format(precision), true, nil
	}

	d, err := dimension.Parse(reg, line)
	if err != nil {
		return "", true, err
	}
	return fmt.Sprintf("%s = %s (%s)", d, d.AsBaseUnits(), d.Summary()), true, nil
}

// worksheetDiagnostics reports one error diagnostic per failing line.
func worksheetDiagnostics(reg *registry.Registry, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, line := range strings.Split(text, "\n") {
		_, ok, err := evaluateLine(reg, line, 0)
		if !ok || err == nil {
			continue
		}
		severity := protocol.DiagnosticSeverityError
		source := lspName
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(i), Character: 0},
				End:   protocol.Position{Line: protocol.UInteger(i), Character: utf16Len(line)},
			},
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		})
	}
	return diagnostics
}

// utf16Len returns the length of s in UTF-16 code units, the unit of LSP
// character offsets.
func utf16Len(s string) protocol.UInteger {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return protocol.UInteger(n)
}

// describeUnit renders hover text for a unit token such as "km" or "mile".
func describeUnit(reg *registry.Registry, word string) string {
	u, prefix, ok := reg.Resolve(word)
	if !ok {
		return ""
	}

	var b strings.Builder
	if prefix.Name != "" {
		fmt.Fprintf(&b, "**%s%s** (%s, 10^%d)", prefix.Name, u.Name, prefix.Name, prefix.Power)
	} else {
		fmt.Fprintf(&b, "**%s**", u.Name)
	}
	fmt.Fprintf(&b, "\n\nSpace: %s", u.Space)
	if u.Metric {
		b.WriteString(", accepts SI prefixes")
	}
	if len(u.Aliases) > 0 {
		fmt.Fprintf(&b, "\n\nAliases: `%s`", strings.Join(u.Aliases, "` `"))
	}
	if base := baseUnit(reg, u.Space); base != nil && base != u {
		fmt.Fprintf(&b, "\n\n1 %s = %s %s", u.Name, input.FormatValue(u.Scale(), 6), base.Name)
	}
	return b.String()
}

// baseUnit returns the first unit of space whose scale is one.
func baseUnit(reg *registry.Registry, space registry.Space) *registry.Unit {
	for _, u := range reg.UnitsIn(space) {
		if u.Scale() == 1 {
			return u
		}
	}
	return nil
}

// completeUnit lists unit names, aliases and prefixed metric names that
// start with prefix.
func completeUnit(reg *registry.Registry, prefix string) []string {
	lowerPrefix := strings.ToLower(prefix)
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, name := range reg.Names() {
		if strings.HasPrefix(name, lowerPrefix) {
			add(name)
		}
	}

	// "kilom" -> "kilometer", "km" is already a full match above
	for _, p := range registry.Prefixes {
		if !strings.HasPrefix(lowerPrefix, p.Name) {
			continue
		}
		rest := lowerPrefix[len(p.Name):]
		for _, u := range reg.Units() {
			if u.Metric && strings.HasPrefix(u.Name, rest) {
				add(p.Name + u.Name)
			}
		}
	}

	// Limit results
	const maxItems = 100
	if len(out) > maxItems {
		out = out[:maxItems]
	}
	return out
}

// --- Text extraction helpers ---

// isUnitChar reports whether ch can be part of a unit token.
func isUnitChar(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '*', '/', '^', '(', ')', '=', '>', '-':
		return false
	}
	return true
}

// lineAt returns line pos.Line of text and the cursor as a byte index into it.
func lineAt(text string, pos protocol.Position) (string, int, bool) {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return "", 0, false
	}
	line := lines[pos.Line]
	return line, byteOffset(line, pos.Character), true
}

// byteOffset converts a UTF-16 column into a byte index of line, clamped
// to the end of the line.
func byteOffset(line string, character protocol.UInteger) int {
	units := 0
	for i, r := range line {
		if units >= int(character) {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// extractPrefix returns the unit fragment before the cursor for completion.
func extractPrefix(text string, pos protocol.Position) string {
	line, col, ok := lineAt(text, pos)
	if !ok {
		return ""
	}

	// Walk backwards from cursor to find the start of the token
	start := col
	for start > 0 && isUnitChar(line[start-1]) {
		start--
	}
	return line[start:col]
}

// extractWord returns the full unit token under the cursor.
func extractWord(text string, pos protocol.Position) string {
	line, col, ok := lineAt(text, pos)
	if !ok {
		return ""
	}

	start := col
	for start > 0 && isUnitChar(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isUnitChar(line[end]) {
		end++
	}
	return line[start:end]
}

// Package requirements reads requirements.in manifests and the pinned
// requirements.txt files produced by the resolver.
package requirements

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/zerr"
)

// requirementLine matches "name[extras] <rest>" where rest is a version
// specifier, a direct reference ("@ url") or nothing.
var requirementLine = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[[^\]]*\])?\s*(.*)$`)

// ParseManifest reads direct dependency declarations in declaration order.
// Option lines (-r, -c, --index-url, ...) and extras are skipped. Environment
// markers are kept. URLs and local paths without a name are passed through as
// references for the resolver to interpret.
func ParseManifest(r io.Reader) ([]domain.Requirement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	var reqs []domain.Requirement
	for _, line := range logicalLines(string(data)) {
		if line.text == "" || strings.HasPrefix(line.text, "-") {
			continue
		}

		spec, marker, _ := strings.Cut(line.text, ";")
		spec, marker = strings.TrimSpace(spec), strings.TrimSpace(marker)

		m := requirementLine.FindStringSubmatch(spec)
		switch {
		case m != nil && validConstraint(m[2]) && !isArchive(spec):
			reqs = append(reqs, domain.Requirement{
				Name:       m[1],
				Constraint: normalizeConstraint(m[2]),
				Marker:     marker,
			})
		case isReference(spec) || isArchive(spec):
			reqs = append(reqs, domain.Requirement{Reference: spec, Marker: marker})
		default:
			return nil, zerr.With(zerr.With(domain.ErrManifestParseFailed, "line", line.number), "content", line.text)
		}
	}

	return reqs, nil
}

// isReference reports whether spec is an unnamed URL or filesystem path,
// such as "git+https://host/repo.git", "./vendor/pkg" or "dist/pkg.whl".
func isReference(spec string) bool {
	if spec == "" || strings.ContainsAny(spec, " \t") {
		return false
	}
	return strings.Contains(spec, "://") ||
		strings.HasPrefix(spec, "file:") ||
		strings.HasPrefix(spec, ".") ||
		strings.HasPrefix(spec, "~") ||
		strings.ContainsAny(spec, `/\`)
}

// isArchive reports whether spec names a local distribution file.
func isArchive(spec string) bool {
	for _, ext := range []string{".whl", ".tar.gz", ".tgz", ".zip"} {
		if strings.HasSuffix(strings.ToLower(spec), ext) {
			return true
		}
	}
	return false
}

func validConstraint(c string) bool {
	c = strings.TrimSpace(c)
	return c == "" || strings.ContainsRune("<>=!~@(", rune(c[0]))
}

// normalizeConstraint drops the whitespace inside version specifiers
// (">= 1.2, < 2" becomes ">=1.2,<2"). Direct references keep "@ url".
func normalizeConstraint(c string) string {
	c = strings.TrimSpace(c)
	if ref, ok := strings.CutPrefix(c, "@"); ok {
		return "@ " + strings.TrimSpace(ref)
	}
	return strings.Join(strings.Fields(c), "")
}

// ParsePins reads pinned packages. It accepts the resolver's annotated lock
// output (pins followed by "# via" comments) as well as plain "freeze" output.
// Direct references ("name @ url") keep the reference as their version.
func ParsePins(r io.Reader) ([]domain.Pin, error) {
	var (
		pins  []domain.Pin
		inVia bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, "#") {
			inVia = collectVia(pins, trimmed, raw, inVia)
			continue
		}
		inVia = false

		if trimmed == "" || strings.HasPrefix(trimmed, "-") {
			continue
		}

		pin, ok := parsePin(trimmed)
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrLockParseFailed, "line", lineNo), "content", trimmed)
		}
		pins = append(pins, pin)
	}

	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockReadFailed.Error())
	}

	return pins, nil
}

// collectVia attaches "# via" annotations to the most recent pin. The single
// line form is "# via x"; the block form is "# via" followed by "#   x" lines.
// It returns whether a via block is still open.
func collectVia(pins []domain.Pin, trimmed, raw string, inVia bool) bool {
	// Header comments start at column zero; annotations are indented.
	if len(pins) == 0 || !strings.HasPrefix(raw, " ") {
		return false
	}
	last := &pins[len(pins)-1]

	body := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
	if rest, ok := strings.CutPrefix(body, "via"); ok && (rest == "" || rest[0] == ' ') {
		if rest = strings.TrimSpace(rest); rest != "" {
			last.Via = append(last.Via, rest)
			return false
		}
		return true
	}

	if inVia && body != "" {
		last.Via = append(last.Via, body)
		return true
	}
	return false
}

func parsePin(line string) (domain.Pin, bool) {
	// Hash continuation markers belong to the pin on this line.
	line = strings.TrimSpace(strings.TrimSuffix(line, "\\"))
	line, _, _ = strings.Cut(line, ";")
	line, _, _ = strings.Cut(line, " --hash")
	line = strings.TrimSpace(line)

	if name, version, ok := strings.Cut(line, "=="); ok {
		name, version = strings.TrimSpace(name), strings.TrimSpace(version)
		if name == "" || version == "" {
			return domain.Pin{}, false
		}
		return domain.Pin{Name: stripExtras(name), Version: version}, true
	}

	if name, ref, ok := strings.Cut(line, " @ "); ok {
		name, ref = strings.TrimSpace(name), strings.TrimSpace(ref)
		if name == "" || ref == "" {
			return domain.Pin{}, false
		}
		return domain.Pin{Name: stripExtras(name), Version: ref}, true
	}

	return domain.Pin{}, false
}

func stripExtras(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}

type logicalLine struct {
	number int
	text   string
}

// logicalLines strips comments and joins backslash continuations. Each line
// reports the physical line number where it starts.
func logicalLines(content string) []logicalLine {
	var (
		lines   []logicalLine
		pending strings.Builder
		start   int
	)

	for i, raw := range strings.Split(content, "\n") {
		line := stripComment(strings.TrimRight(raw, "\r"))
		if pending.Len() == 0 {
			start = i + 1
		}

		if strings.HasSuffix(line, "\\") {
			pending.WriteString(strings.TrimSuffix(line, "\\"))
			pending.WriteByte(' ')
			continue
		}

		pending.WriteString(line)
		lines = append(lines, logicalLine{number: start, text: strings.TrimSpace(pending.String())})
		pending.Reset()
	}

	if rest := strings.TrimSpace(pending.String()); rest != "" {
		lines = append(lines, logicalLine{number: start, text: rest})
	}

	return lines
}

// stripComment removes a "#" comment that starts the line or follows whitespace.
// A "#" inside a URL fragment (e.g. "pkg @ https://host/x#egg=pkg") is kept.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i]
		}
	}
	return line
}

// Package mapping normalizes WordNet 3.1 identifiers to BabelNet synset IDs.
package mapping

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/nasari/internal/source"
)

// BabelNetPrefix marks an identifier as belonging to the BabelNet vocabulary.
const BabelNetPrefix = "bn:"

// minFields is the number of fields a mapping record needs: babelnet id, pos, wordnet id.
const minFields = 3

// Mapper maps source-vocabulary identifiers to BabelNet IDs. It is built once
// by Load and never modified, so it is safe for concurrent readers.
type Mapper struct {
	mapping map[string]string
}

// LoadError reports a mapping file that could not be read or parsed.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("load mapping %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load mapping: line %d: %v", e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("load mapping %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("load mapping: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// New builds a Mapper from an existing table. The table is copied.
func New(table map[string]string) *Mapper {
	m := &Mapper{mapping: make(map[string]string, len(table))}
	for k, v := range table {
		m.mapping[k] = v
	}
	return m
}

// Load reads mapping records from r. Each line holds at least three
// whitespace-separated fields; field 2 minus its first character becomes the
// key and "bn:" plus field 0 minus its first character the value. Blank
// lines are skipped; any short line fails the whole load.
func Load(r io.Reader) (*Mapper, error) {
	m := &Mapper{mapping: make(map[string]string)}
	sc := source.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < minFields {
			return nil, &LoadError{Line: line, Err: fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))}
		}
		m.mapping[stripFirst(fields[2])] = BabelNetPrefix + stripFirst(fields[0])
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Line: line + 1, Err: err}
	}
	return m, nil
}

// LoadFile opens path (plain, .gz or .zst) and loads it with Load.
func LoadFile(path string) (*Mapper, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer rc.Close()
	m, err := Load(rc)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return m, nil
}

// Normalize returns the BabelNet ID for key, or key itself when it has no mapping.
func (m *Mapper) Normalize(key string) string {
	if v, ok := m.mapping[key]; ok {
		return v
	}
	return key
}

// Lookup returns the mapped ID and whether key was present.
func (m *Mapper) Lookup(key string) (string, bool) {
	v, ok := m.mapping[key]
	return v, ok
}

// Len returns the number of mapped identifiers.
func (m *Mapper) Len() int {
	return len(m.mapping)
}

// stripFirst drops the leading character (the part-of-speech or vocabulary tag).
func stripFirst(s string) string {
	_, n := utf8.DecodeRuneInString(s)
	return s[n:]
}

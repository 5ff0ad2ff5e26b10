// Package vector holds the NASARI embedding table and computes cosine
// similarity between stored vectors.
package vector

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/nasari/internal/source"
	"github.com/hyperjump/nasari/pkg/utils"
)

// DefaultPrecision is the number of decimal places similarity scores are rounded to.
const DefaultPrecision = 4

// firstComponent is the index of the first vector component in a record;
// field 1 (the lemma) is ignored.
const firstComponent = 2

// Store maps BabelNet IDs to vectors. It is populated once by Load and is
// read-only afterwards, so it needs no locking.
type Store struct {
	vectors    map[string][]float64
	dimensions int
	irregular  int
	precision  int
}

// Option configures a Store.
type Option func(*Store)

// WithPrecision sets how many decimal places Similarity rounds to.
func WithPrecision(places int) Option {
	return func(s *Store) { s.precision = places }
}

func newStore(opts []Option) *Store {
	s := &Store{
		vectors:   make(map[string][]float64),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New builds a Store from an existing table. Vectors are copied.
func New(table map[string][]float64, opts ...Option) *Store {
	s := newStore(opts)
	for id, v := range table {
		s.put(id, append([]float64(nil), v...))
	}
	return s
}

// Load reads one record per line: identifier, an ignored field, then the
// vector components. Blank lines are skipped. A non-numeric, NaN or infinite
// component fails the whole load. Vector lengths are not checked against each other.
func Load(r io.Reader, opts ...Option) (*Store, error) {
	s := newStore(opts)
	sc := source.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		var components []string
		if len(fields) > firstComponent {
			components = fields[firstComponent:]
		}
		vec := make([]float64, len(components))
		for i, f := range components {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &LoadError{Line: line, Field: i + firstComponent, Err: err}
			}
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, &LoadError{Line: line, Field: i + firstComponent, Err: fmt.Errorf("%w: %q", ErrNonFinite, f)}
			}
			vec[i] = x
		}
		s.put(fields[0], vec)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Line: line + 1, Err: err}
	}
	return s, nil
}

// LoadFile opens path (plain, .gz or .zst) and loads it with Load.
func LoadFile(path string, opts ...Option) (*Store, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer rc.Close()
	s, err := Load(rc, opts...)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return s, nil
}

// put stores vec under id and keeps the irregular-length count in step.
// The first stored vector fixes Dimensions.
func (s *Store) put(id string, vec []float64) {
	if len(s.vectors) == 0 {
		s.dimensions = len(vec)
	}
	if prev, ok := s.vectors[id]; ok && len(prev) != s.dimensions {
		s.irregular--
	}
	if len(vec) != s.dimensions {
		s.irregular++
	}
	s.vectors[id] = vec
}

// Get returns a copy of the vector stored for id, or a *NotFoundError.
func (s *Store) Get(id string) ([]float64, error) {
	v, ok := s.vectors[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return append([]float64(nil), v...), nil
}

// Contains reports whether id has a stored vector.
func (s *Store) Contains(id string) bool {
	_, ok := s.vectors[id]
	return ok
}

// Similarity returns the cosine similarity of the vectors stored for id1 and
// id2, rounded to the store precision. id1 is checked before id2, and equal
// identifiers score exactly 1 without looking at the vectors.
func (s *Store) Similarity(id1, id2 string) (float64, error) {
	v1, ok := s.vectors[id1]
	if !ok {
		return 0, &NotFoundError{ID: id1}
	}
	v2, ok := s.vectors[id2]
	if !ok {
		return 0, &NotFoundError{ID: id2}
	}
	if id1 == id2 {
		return 1.0, nil
	}
	sim, err := Cosine(v1, v2)
	if err != nil {
		return 0, fmt.Errorf("similarity %s %s: %w", id1, id2, err)
	}
	return utils.Round(sim, s.precision), nil
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	return len(s.vectors)
}

// Dimensions returns the length of the first loaded vector.
func (s *Store) Dimensions() int {
	return s.dimensions
}

// Irregular returns how many vectors differ in length from Dimensions.
func (s *Store) Irregular() int {
	return s.irregular
}

// Precision returns the rounding precision used by Similarity.
func (s *Store) Precision() int {
	return s.precision
}

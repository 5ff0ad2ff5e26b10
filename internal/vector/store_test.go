package vector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVectors = `bn:00000001n apple 1.0 2.0 3.0
bn:00000002n apples 2.0 4.0 6.0
bn:00000003n pear 3.0 -1.0 0.5

bn:00000004n zero 0 0 0
`

func loadSample(t *testing.T) *Store {
	t.Helper()
	s, err := Load(strings.NewReader(sampleVectors))
	require.NoError(t, err)
	return s
}

func TestLoad_roundTrip(t *testing.T) {
	s, err := Load(strings.NewReader("bn:00000001n apple 1.0 2.0 3.0\n"))
	require.NoError(t, err)

	v, err := s.Get("bn:00000001n")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, v)
}

func TestLoad_secondFieldIsIgnored(t *testing.T) {
	s, err := Load(strings.NewReader("bn:00000001n 1.0 2.0 3.0\n"))
	require.NoError(t, err)

	v, err := s.Get("bn:00000001n")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, 3.0}, v)
}

func TestLoad_stats(t *testing.T) {
	s := loadSample(t)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.Dimensions())
	assert.Equal(t, 0, s.Irregular())
	assert.Equal(t, DefaultPrecision, s.Precision())
}

func TestLoad_irregularLengthsAreCounted(t *testing.T) {
	s, err := Load(strings.NewReader("a x 1 2 3\nb x 1 2\nc x 1 2 3 4\nd x 0 1 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.Dimensions())
	assert.Equal(t, 2, s.Irregular())
}

func TestLoad_idOnlyLineStoresEmptyVector(t *testing.T) {
	s, err := Load(strings.NewReader("bn:00000001n\n"))
	require.NoError(t, err)
	v, err := s.Get("bn:00000001n")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestLoad_nonNumericComponentFails(t *testing.T) {
	_, err := Load(strings.NewReader("a x 1 2 3\nb x 1 two 3\n"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
	assert.Equal(t, 3, le.Field)
	assert.Contains(t, err.Error(), "line 2 field 3")
}

func TestLoad_nonFiniteComponentFails(t *testing.T) {
	for _, record := range []string{"b x NaN 1\n", "b x 1 +Inf\n", "b x -inf 1\n"} {
		_, err := Load(strings.NewReader("a x 1 1\n" + record))
		require.Error(t, err, record)

		var le *LoadError
		require.True(t, errors.As(err, &le), record)
		assert.Equal(t, 2, le.Line, record)
		assert.ErrorIs(t, err, ErrNonFinite, record)
	}
}

func TestSimilarity_largeFiniteComponents(t *testing.T) {
	s, err := Load(strings.NewReader("a x 1e200 1e200\nb x 2e200 1e200\n"))
	require.NoError(t, err)
	sim, err := s.Similarity("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.9487, sim)
}

func TestLoadFile_zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nasari.txt.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sampleVectors))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	s, err := LoadFile(path, WithPrecision(2))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, s.Precision())
}

func TestLoadFile_errorsCarryPath(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.txt")
	_, err := LoadFile(missing)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, missing, le.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("a x 1 NaNx\n"), 0600))
	_, err = LoadFile(bad)
	require.True(t, errors.As(err, &le))
	assert.Equal(t, bad, le.Path)
	assert.Equal(t, 1, le.Line)
}

func TestGet_notFound(t *testing.T) {
	s := loadSample(t)
	_, err := s.Get("missing-id")
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing-id", nf.ID)
	assert.Equal(t, "KeyError: 'missing-id' not found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestGet_returnsCopy(t *testing.T) {
	s := loadSample(t)
	v, err := s.Get("bn:00000001n")
	require.NoError(t, err)
	v[0] = 100

	again, err := s.Get("bn:00000001n")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0])
}

func TestSimilarity_sameIDIsExactlyOne(t *testing.T) {
	s := loadSample(t)
	for _, id := range []string{"bn:00000001n", "bn:00000003n", "bn:00000004n"} {
		sim, err := s.Similarity(id, id)
		require.NoError(t, err)
		assert.Equal(t, 1.0, sim, id)
	}
}

func TestSimilarity_scaledVectorsScoreOne(t *testing.T) {
	s := loadSample(t)
	sim, err := s.Similarity("bn:00000001n", "bn:00000002n")
	require.NoError(t, err)
	assert.Equal(t, 1.0, sim)
}

func TestSimilarity_orthogonal(t *testing.T) {
	s := New(map[string][]float64{"x": {1, 0}, "y": {0, 1}})
	sim, err := s.Similarity("x", "y")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestSimilarity_roundedToPrecision(t *testing.T) {
	s := loadSample(t)
	// dot = 3 - 2 + 1.5 = 2.5; |a| = sqrt(14); |b| = sqrt(10.25)
	sim, err := s.Similarity("bn:00000001n", "bn:00000003n")
	require.NoError(t, err)
	assert.Equal(t, 0.2087, sim)

	coarse := New(map[string][]float64{"a": {1, 2, 3}, "b": {3, -1, 0.5}}, WithPrecision(2))
	sim, err = coarse.Similarity("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.21, sim)
}

func TestSimilarity_symmetric(t *testing.T) {
	s := New(map[string][]float64{
		"a": {0.3, -0.2, 0.9},
		"b": {0.1, 0.8, -0.4},
		"c": {-0.5, 0.5, 0.5},
	})
	ids := []string{"a", "b", "c"}
	for _, x := range ids {
		for _, y := range ids {
			if x == y {
				continue
			}
			ab, err := s.Similarity(x, y)
			require.NoError(t, err)
			ba, err := s.Similarity(y, x)
			require.NoError(t, err)
			assert.Equal(t, ab, ba, "%s/%s", x, y)
		}
	}
}

func TestSimilarity_notFoundOrder(t *testing.T) {
	s := loadSample(t)

	_, err := s.Similarity("missing-id", "anything")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing-id", nf.ID)

	_, err = s.Similarity("bn:00000001n", "also-missing")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "also-missing", nf.ID)

	_, err = s.Similarity("first-missing", "second-missing")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "first-missing", nf.ID)
}

func TestSimilarity_dimensionMismatch(t *testing.T) {
	s := New(map[string][]float64{"a": {1, 2, 3}, "b": {1, 2}})
	_, err := s.Similarity("a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.False(t, IsNotFound(err))
}

func TestSimilarity_zeroNorm(t *testing.T) {
	s := loadSample(t)
	_, err := s.Similarity("bn:00000001n", "bn:00000004n")
	assert.ErrorIs(t, err, ErrZeroNorm)
}

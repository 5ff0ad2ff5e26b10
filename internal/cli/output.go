// Package cli provides output formatting and an HTTP client for the nasari CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyperjump/nasari/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteVector writes a vector lookup result to w.
func WriteVector(w io.Writer, res *models.VectorResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "key:        %s\n", res.Key)
	if res.ID != "" && res.ID != res.Key {
		fmt.Fprintf(w, "id:         %s\n", res.ID)
	}
	fmt.Fprintf(w, "dimensions: %d\n", len(res.Vector))
	fmt.Fprintf(w, "vector:     %s\n", FormatVector(res.Vector, 10))
	return nil
}

// WriteSimilarity writes a similarity result to w.
func WriteSimilarity(w io.Writer, res *models.SimilarityResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "%s ~ %s: %s\n", res.Key1, res.Key2, strconv.FormatFloat(res.Similarity, 'f', -1, 64))
	return nil
}

// WriteStatus writes a status report to w.
func WriteStatus(w io.Writer, status *models.StatusResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, status)
	}
	fmt.Fprintf(w, "mappings:           %d   # wordnet -> babelnet entries\n", status.Mappings)
	fmt.Fprintf(w, "vectors:            %d   # nasari vectors loaded\n", status.Vectors)
	fmt.Fprintf(w, "dimensions:         %d\n", status.Dimensions)
	if status.IrregularVectors > 0 {
		fmt.Fprintf(w, "irregular_vectors:  %d   # length differs from dimensions\n", status.IrregularVectors)
	}
	fmt.Fprintf(w, "precision:          %d\n", status.Precision)
	fmt.Fprintf(w, "load_time_ms:       %d\n", status.LoadTimeMS)
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d   # data files on disk\n", *status.DiskUsageBytes)
	}
	if status.Version != "" {
		fmt.Fprintf(w, "version:            %s\n", status.Version)
	}
	if status.Config != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# configuration")
		if status.Config.MappingPath != "" {
			fmt.Fprintf(w, "mapping_path:       %s\n", status.Config.MappingPath)
		}
		if status.Config.VectorsPath != "" {
			fmt.Fprintf(w, "vectors_path:       %s\n", status.Config.VectorsPath)
		}
	}
	return nil
}

// FormatVector renders up to maxComponents values, noting how many were elided.
// maxComponents <= 0 renders all of them.
func FormatVector(v []float64, maxComponents int) string {
	n := len(v)
	if maxComponents > 0 && n > maxComponents {
		n = maxComponents
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.FormatFloat(v[i], 'g', -1, 64)
	}
	out := "[" + strings.Join(parts, " ")
	if n < len(v) {
		out += fmt.Sprintf(" ... (%d more)", len(v)-n)
	}
	return out + "]"
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

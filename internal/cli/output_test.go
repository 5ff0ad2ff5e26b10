package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/nasari/internal/models"
)

func TestWriteVector_JSON(t *testing.T) {
	res := &models.VectorResult{Key: "00001740", ID: "bn:00000001n", Vector: []float64{0.1, -0.2}}
	var buf bytes.Buffer
	if err := WriteVector(&buf, res, OutputJSON); err != nil {
		t.Fatalf("WriteVector(json): %v", err)
	}
	var decoded models.VectorResult
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "bn:00000001n" || len(decoded.Vector) != 2 {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteVector_Text(t *testing.T) {
	res := &models.VectorResult{Key: "00001740", ID: "bn:00000001n", Vector: []float64{1, 2, 3}}
	var buf bytes.Buffer
	if err := WriteVector(&buf, res, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"key:        00001740", "id:         bn:00000001n", "dimensions: 3", "[1 2 3]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSimilarity_Text(t *testing.T) {
	res := &models.SimilarityResult{Key1: "a", Key2: "b", Similarity: 0.2087}
	var buf bytes.Buffer
	if err := WriteSimilarity(&buf, res, OutputText); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a ~ b: 0.2087\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteStatus_Text(t *testing.T) {
	status := &models.StatusResponse{
		Stats:  models.Stats{Mappings: 2, Vectors: 3, Dimensions: 300, IrregularVectors: 1, Precision: 4},
		Config: &models.StatusConfig{VectorsPath: "/data/nasari.txt"},
	}
	var buf bytes.Buffer
	if err := WriteStatus(&buf, status, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"vectors:            3", "irregular_vectors:  1", "vectors_path:       /data/nasari.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatVector(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
		max  int
		want string
	}{
		{"all", []float64{1, 2.5}, 0, "[1 2.5]"},
		{"under limit", []float64{1, 2}, 5, "[1 2]"},
		{"truncated", []float64{1, 2, 3, 4}, 2, "[1 2 ... (2 more)]"},
		{"empty", nil, 3, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatVector(tt.v, tt.max); got != tt.want {
				t.Errorf("FormatVector = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, err := ParseOutputFormat("json"); err != nil || f != OutputJSON {
		t.Errorf("json: got %v, %v", f, err)
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
}

// Package models defines the results and wire responses of the lookup API.
package models

import "time"

// VectorResult is the outcome of a successful vector lookup.
type VectorResult struct {
	Key    string    `json:"key"` // identifier as supplied by the caller
	ID     string    `json:"id"`  // normalized BabelNet ID
	Vector []float64 `json:"vector"`
}

// SimilarityResult is the outcome of a successful pairwise similarity query.
type SimilarityResult struct {
	Key1       string  `json:"key1"`
	Key2       string  `json:"key2"`
	ID1        string  `json:"id1"`
	ID2        string  `json:"id2"`
	Similarity float64 `json:"similarity"`
}

// VectorResponse is the body of GET /nasari/vector.
type VectorResponse struct {
	Vector []float64 `json:"vector"`
}

// SimilarityResponse is the body of GET /nasari/cosine.
type SimilarityResponse struct {
	Similarity float64 `json:"similarity"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Stats describes the loaded tables.
type Stats struct {
	Mappings         int       `json:"mappings"`
	Vectors          int       `json:"vectors"`
	Dimensions       int       `json:"dimensions"`
	IrregularVectors int       `json:"irregular_vectors"`
	Precision        int       `json:"precision"`
	LoadedAt         time.Time `json:"loaded_at"`
	LoadTimeMS       int64     `json:"load_time_ms"`
}

// StatusConfig is the configuration section of a status response.
type StatusConfig struct {
	MappingPath string `json:"mapping_path,omitempty"`
	VectorsPath string `json:"vectors_path,omitempty"`
}

// StatusResponse is the body of GET /api/v1/status.
type StatusResponse struct {
	Stats
	Version        string        `json:"version,omitempty"`
	DiskUsageBytes *int64        `json:"disk_usage_bytes,omitempty"` // size of the data files on disk
	Config         *StatusConfig `json:"config,omitempty"`
}

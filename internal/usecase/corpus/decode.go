package corpus

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxMatrixBytes caps the decompressed matrix payload.
const maxMatrixBytes = 1 << 30

var errEmptyValue = errors.New("field is empty")

// parseMagnitudes parses comma-separated, finite, non-negative document norms.
func parseMagnitudes(raw string) ([]float64, error) {
	vals, err := parseFloats(raw, ",")
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if v < 0 {
			return nil, fmt.Errorf("magnitude %d is negative: %v", i, v)
		}
	}
	return vals, nil
}

// parseIDF parses newline-separated, finite IDF weights.
func parseIDF(raw string) ([]float64, error) {
	return parseFloats(raw, "\n")
}

// parseVocabulary splits newline-separated terms. Blank lines keep their
// position so vocabulary indexes stay aligned with the matrix columns.
func parseVocabulary(raw string) ([]string, error) {
	raw = strings.TrimRight(raw, "\r\n")
	if strings.TrimSpace(raw) == "" {
		return nil, errEmptyValue
	}
	terms := strings.Split(raw, "\n")
	for i, t := range terms {
		terms[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return terms, nil
}

// decodeMatrix decodes the base64 gzip payload into rows of term weights.
// Unparseable or non-finite cells become 0 and blank rows become empty rows.
func decodeMatrix(raw string) ([][]float64, error) {
	compressed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	text, err := io.ReadAll(io.LimitReader(zr, maxMatrixBytes+1))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	if len(text) > maxMatrixBytes {
		return nil, fmt.Errorf("matrix exceeds %d bytes", maxMatrixBytes)
	}

	body := strings.TrimRight(string(text), "\r\n")
	if strings.TrimSpace(body) == "" {
		return nil, errEmptyValue
	}

	lines := strings.Split(body, "\n")
	rows := make([][]float64, len(lines))
	for i, line := range lines {
		rows[i] = parseRow(line)
	}
	return rows, nil
}

func parseRow(line string) []float64 {
	line = strings.TrimSpace(line)
	if line == "" {
		return []float64{}
	}
	cells := strings.Split(line, ",")
	row := make([]float64, len(cells))
	for j, c := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		row[j] = v
	}
	return row
}

// EncodeMatrixText gzips and base64-encodes a plain-text matrix
// (newline-separated rows of comma-separated weights).
func EncodeMatrixText(text string) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("gzip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("gzip: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func parseFloats(raw, sep string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errEmptyValue
	}
	parts := strings.Split(raw, sep)
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %d is not finite", i)
		}
		vals[i] = v
	}
	return vals, nil
}

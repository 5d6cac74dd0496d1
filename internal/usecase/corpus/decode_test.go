package corpus

import (
	"encoding/base64"
	"errors"
	"reflect"
	"testing"
)

func TestParseMagnitudes(t *testing.T) {
	got, err := parseMagnitudes(" 0.5, 0,1.25 \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{0.5, 0, 1.25}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, raw := range []string{"", "  ", "1,abc", "1,-2", "1,NaN", "1,+Inf"} {
		if _, err := parseMagnitudes(raw); err == nil {
			t.Errorf("parseMagnitudes(%q) expected error", raw)
		}
	}
}

func TestParseMagnitudes_Empty(t *testing.T) {
	if _, err := parseMagnitudes(""); !errors.Is(err, errEmptyValue) {
		t.Errorf("err = %v, want errEmptyValue", err)
	}
}

func TestParseIDF(t *testing.T) {
	got, err := parseIDF("1.5\r\n2\n0.25\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{1.5, 2, 0.25}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := parseIDF("1\n\n2"); err == nil {
		t.Error("blank interior line should fail")
	}
}

func TestParseVocabulary(t *testing.T) {
	got, err := parseVocabulary("Sort\n array\r\n\ngraph\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"sort", "array", "", "graph"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := parseVocabulary("\n\n"); !errors.Is(err, errEmptyValue) {
		t.Errorf("err = %v, want errEmptyValue", err)
	}
}

func TestDecodeMatrix(t *testing.T) {
	payload, err := EncodeMatrixText("0.5,0.25\n\n1,oops,NaN,2\n")
	if err != nil {
		t.Fatal(err)
	}

	rows, err := decodeMatrix(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]float64{{0.5, 0.25}, {}, {1, 0, 0, 2}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %v, want %v", rows, want)
	}
}

func TestDecodeMatrix_RoundTripsWeights(t *testing.T) {
	in := [][]float64{{0.1, 0, 3.5}, {2}}
	rows, err := decodeMatrix(encodeMatrix(t, in))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rows, in) {
		t.Errorf("got %v, want %v", rows, in)
	}
}

func TestDecodeMatrix_Errors(t *testing.T) {
	empty, err := EncodeMatrixText("\n")
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]string{
		"not base64": "***",
		"not gzip":   base64.StdEncoding.EncodeToString([]byte("plain text")),
		"empty":      empty,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := decodeMatrix(raw); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

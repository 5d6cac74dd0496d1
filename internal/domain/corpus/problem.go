package corpus

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Problem is a document metadata record keyed by its 1-based problem_id.
// The full record is kept verbatim so callers can return it unchanged.
type Problem struct {
	id    int
	title string
	raw   json.RawMessage
}

// NewProblem validates and creates a Problem.
func NewProblem(id int, title string, raw []byte) (Problem, error) {
	if id <= 0 {
		return Problem{}, fmt.Errorf("problem_id must be positive, got %d", id)
	}
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	return Problem{id: id, title: title, raw: json.RawMessage(raw)}, nil
}

// ParseProblem decodes a JSON metadata record. problem_id may be a JSON number
// or a numeric string.
func ParseProblem(data []byte) (Problem, error) {
	var rec struct {
		ProblemID json.RawMessage `json:"problem_id"`
		Title     string          `json:"title"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Problem{}, fmt.Errorf("decode problem: %w", err)
	}
	if len(rec.ProblemID) == 0 || string(rec.ProblemID) == "null" {
		return Problem{}, fmt.Errorf("problem_id is required")
	}

	id, err := parseProblemID(rec.ProblemID)
	if err != nil {
		return Problem{}, err
	}
	return NewProblem(id, rec.Title, data)
}

func parseProblemID(raw json.RawMessage) (int, error) {
	s := strings.Trim(string(raw), `"`)
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	// Integral floats such as 12.0 are accepted, fractional ids are not.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid problem_id %s", string(raw))
	}
	return int(f), nil
}

// ID returns the external document identifier.
func (p *Problem) ID() int { return p.id }

// Title returns the problem title, empty if the record has none.
func (p *Problem) Title() string { return p.title }

// Raw returns the complete metadata record as stored.
func (p *Problem) Raw() json.RawMessage { return p.raw }

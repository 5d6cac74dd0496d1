package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	corpusuc "github.com/kailas-cloud/tfidx/internal/usecase/corpus"
)

// problemsFile holds one JSON problem record per line.
const problemsFile = "problems.jsonl"

type seedData struct {
	fields   map[corpus.Field]string
	problems [][]byte
}

// readDir loads <field>.txt for every scalar field plus problems.jsonl.
func readDir(dir string, plainMatrix bool) (*seedData, error) {
	out := &seedData{fields: make(map[corpus.Field]string, len(corpus.ScalarFields))}

	for _, f := range corpus.ScalarFields {
		path := filepath.Join(dir, f.String()+".txt")
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		v := string(data)
		if f == corpus.FieldMatrix && plainMatrix {
			if v, err = corpusuc.EncodeMatrixText(v); err != nil {
				return nil, fmt.Errorf("encode %s: %w", f, err)
			}
		}
		out.fields[f] = v
	}

	problems, err := readLines(filepath.Join(dir, problemsFile))
	if err != nil {
		return nil, fmt.Errorf("read problems: %w", err)
	}
	out.problems = problems
	return out, nil
}

func readLines(path string) ([][]byte, error) {
	fh, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var lines [][]byte
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

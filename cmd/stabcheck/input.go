package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// stateDocument is one YAML document of state vectors.
type stateDocument struct {
	Vectors [][]string `yaml:"vectors"`
}

// pauliDocument is one YAML document of square matrices, row by row.
type pauliDocument struct {
	Matrices [][][]string `yaml:"matrices"`
}

func parseComplex(s string) (complex128, error) {
	c, err := strconv.ParseComplex(strings.ReplaceAll(strings.TrimSpace(s), " ", ""), 128)
	if err != nil {
		return 0, errors.Wrapf(err, "entry %q", s)
	}

	return c, nil
}

func parseRow(entries []string) ([]complex128, error) {
	row := make([]complex128, len(entries))

	for i, entry := range entries {
		c, err := parseComplex(entry)
		if err != nil {
			return nil, err
		}

		row[i] = c
	}

	return row, nil
}

// decodeAll decodes every document in r into a fresh T.
func decodeAll[T any](r io.Reader) ([]T, error) {
	decoder := yaml.NewDecoder(r)
	docs := []T{}

	for {
		var doc T

		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}

		if err != nil {
			return nil, errors.Wrap(err, "decoding YAML")
		}

		docs = append(docs, doc)
	}
}

func readVectors(path string) ([][]complex128, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer f.Close()

	docs, err := decodeAll[stateDocument](f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	vectors := [][]complex128{}

	for _, doc := range docs {
		for _, entries := range doc.Vectors {
			v, err := parseRow(entries)
			if err != nil {
				return nil, errors.Wrapf(err, "vector %d", len(vectors))
			}

			vectors = append(vectors, v)
		}
	}

	return vectors, nil
}

func readMatrices(path string) ([][][]complex128, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer f.Close()

	docs, err := decodeAll[pauliDocument](f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	matrices := [][][]complex128{}

	for _, doc := range docs {
		for _, rows := range doc.Matrices {
			matrix := make([][]complex128, len(rows))

			for i, entries := range rows {
				if matrix[i], err = parseRow(entries); err != nil {
					return nil, errors.Wrapf(err, "matrix %d row %d", len(matrices), i)
				}
			}

			matrices = append(matrices, matrix)
		}
	}

	return matrices, nil
}

package genome

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// maxParallelReads bounds concurrent annotation decoding.
const maxParallelReads = 4

// Annotation is one chromosome-level annotation document.
//
// Example:
//
//	accession: NC_000913.3
//	organism: Escherichia coli str. K-12 substr. MG1655
//	features:
//	  - type: CDS
//	    start: 337
//	    end: 2799
//	    strand: 1
//	    qualifiers:
//	      locus_tag: [b0002]
//	      gene: [thrA]
type Annotation struct {
	Accession string    `yaml:"accession"`
	Organism  string    `yaml:"organism,omitempty"`
	Features  []Feature `yaml:"features"`
}

// DecodeAnnotation parses one annotation document. Unknown fields are rejected.
func DecodeAnnotation(r io.Reader) (*Annotation, error) {
	var doc Annotation
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Accession == "" {
		return nil, fmt.Errorf("annotation: accession is required")
	}
	return &doc, nil
}

// ReadAnnotation reads and decodes the annotation file at path.
func ReadAnnotation(path string) (*Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %w", err)
	}
	doc, err := DecodeAnnotation(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadAnnotations decodes paths concurrently. The result keeps the order of
// paths so chromosomes load in the order given. The first failure cancels
// the remaining reads.
func ReadAnnotations(ctx context.Context, paths []string) ([]*Annotation, error) {
	if len(paths) == 0 {
		return nil, ErrNoAnnotationFiles
	}

	docs := make([]*Annotation, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := ReadAnnotation(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

package sif

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

// WriteSIF writes one line per edge: source, type and target separated by
// tabs. With mediators set, a fourth column lists the mediator ids separated
// by spaces.
func WriteSIF(w io.Writer, edges []Edge, mediators bool) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		var err error
		if mediators {
			_, err = fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", e.Source, e.Type, e.Target, strings.Join(e.Mediators, " "))
		} else {
			_, err = fmt.Fprintf(bw, "%s\t%s\t%s\n", e.Source, e.Type, e.Target)
		}
		if err != nil {
			return fmt.Errorf("write sif: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write sif: %w", err)
	}
	return nil
}

// WriteJSON writes g as an indented model document that Load reads back.
func WriteJSON(w io.Writer, g *model.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model.DocumentOf(g)); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// WriteSIFFile writes edges to path, snappy framed when path ends in
// model.SnappySuffix.
func WriteSIFFile(path string, edges []Edge, mediators bool) error {
	return writeFile(path, func(w io.Writer) error { return WriteSIF(w, edges, mediators) })
}

// WriteJSONFile writes g to path, snappy framed when path ends in
// model.SnappySuffix.
func WriteJSONFile(path string, g *model.Graph) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, g) })
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, model.SnappySuffix) {
		return write(f)
	}
	sw := snappy.NewBufferedWriter(f)
	if err := write(sw); err != nil {
		return err
	}
	return sw.Close()
}

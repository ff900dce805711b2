package node

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Document is a design document: one node tree plus identifying
// metadata, as exported by the host.
type Document struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Root    *Node  `json:"root"`
}

// DocumentIndex provides O(1) node lookups, built after validation.
type DocumentIndex struct {
	// NodeByID maps node id -> *Node.
	NodeByID map[string]*Node

	// ParentByID maps node id -> parent *Node (nil for the root).
	ParentByID map[string]*Node
}

var knownKindSet = func() map[Kind]bool {
	m := make(map[Kind]bool, len(KnownKinds))
	for _, k := range KnownKinds {
		m[k] = true
	}
	return m
}()

// Validate checks the document for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (d *Document) Validate() []error {
	var errs []error

	if d.Name == "" {
		errs = append(errs, fmt.Errorf("document name is required"))
	}
	if d.Root == nil {
		errs = append(errs, fmt.Errorf("document root is required"))
		return errs
	}

	seen := make(map[string]bool)
	d.Root.Walk(func(n *Node) bool {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node %q: id is required", n.Name))
		} else if seen[n.ID] {
			errs = append(errs, fmt.Errorf("node %q: duplicate id %q", n.Name, n.ID))
		}
		seen[n.ID] = true

		if !knownKindSet[n.Kind] {
			errs = append(errs, fmt.Errorf("node %q: unknown kind %q", n.ID, n.Kind))
		}
		if n.Kind == KindText && n.Type == nil {
			errs = append(errs, fmt.Errorf("text node %q: type_style is required", n.ID))
		}
		if n.Kind == KindText && len(n.Children) > 0 {
			errs = append(errs, fmt.Errorf("text node %q: must not have children", n.ID))
		}
		if n.Width < 0 || n.Height < 0 {
			errs = append(errs, fmt.Errorf("node %q: negative size %gx%g", n.ID, n.Width, n.Height))
		}
		for i, p := range n.Fills {
			if err := validatePaint(p); err != nil {
				errs = append(errs, fmt.Errorf("node %q fills[%d]: %w", n.ID, i, err))
			}
		}
		for i, p := range n.Strokes {
			if err := validatePaint(p); err != nil {
				errs = append(errs, fmt.Errorf("node %q strokes[%d]: %w", n.ID, i, err))
			}
		}
		return true
	})

	return errs
}

func validatePaint(p Paint) error {
	switch p.Type {
	case PaintSolid:
		if p.Color == "" {
			return fmt.Errorf("solid paint requires color")
		}
	case PaintGradientLinear, PaintGradientRadial:
		if len(p.Stops) < 2 {
			return fmt.Errorf("gradient paint requires at least 2 stops")
		}
	case PaintImage:
		// image_ref may legitimately be empty when bytes are embedded
	default:
		return fmt.Errorf("unknown paint type %q", p.Type)
	}
	return nil
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (d *Document) BuildIndex() *DocumentIndex {
	idx := &DocumentIndex{
		NodeByID:   make(map[string]*Node),
		ParentByID: make(map[string]*Node),
	}
	var visit func(n, parent *Node)
	visit = func(n, parent *Node) {
		idx.NodeByID[n.ID] = n
		idx.ParentByID[n.ID] = parent
		for _, c := range n.Children {
			visit(c, n)
		}
	}
	if d.Root != nil {
		visit(d.Root, nil)
	}
	return idx
}

// LoadFromFile loads a document from a JSON file, validates it, and builds the index.
func LoadFromFile(path string) (*Document, *DocumentIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read design document: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a document from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Document, *DocumentIndex, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse design document JSON: %w", err)
	}

	if errs := doc.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("document validation failed: %w", errors.Join(errs...))
	}

	return &doc, doc.BuildIndex(), nil
}

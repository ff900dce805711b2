package compiler

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gnana997/designc/pkg/node"
)

// Exporter turns a node into image bytes. Implementations must be
// assumed fallible per call; the compiler degrades to a placeholder on
// failure and never retries.
type Exporter interface {
	Export(ctx context.Context, n *node.Node, format string, scale float64) ([]byte, error)
}

// EmbeddedExporter serves exports from the base64 payloads carried on
// the node itself. The default when no external host capability is
// wired in.
type EmbeddedExporter struct{}

func (EmbeddedExporter) Export(_ context.Context, n *node.Node, format string, _ float64) ([]byte, error) {
	payload, ok := n.Export[format]
	if !ok {
		return nil, fmt.Errorf("node %s: no embedded %s payload", n.ID, format)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("node %s: decode %s payload: %w", n.ID, format, err)
	}
	return raw, nil
}

// exportOutcome is the typed result of one export attempt. Callers
// branch on OK to choose the placeholder path instead of catching
// errors at every call site.
type exportOutcome struct {
	OK     bool
	Bytes  []byte
	Reason string
}

func (r *run) export(ctx context.Context, n *node.Node, format string, scale float64) exportOutcome {
	raw, err := r.exporter.Export(ctx, n, format, scale)
	if err != nil {
		r.log.Warn("asset export failed", "node", n.ID, "format", format, "error", err)
		return exportOutcome{Reason: err.Error()}
	}
	return exportOutcome{OK: true, Bytes: raw}
}

var mimeByFormat = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"webp": "image/webp",
}

func mimeFor(format string) string {
	if m, ok := mimeByFormat[format]; ok {
		return m
	}
	return "application/octet-stream"
}

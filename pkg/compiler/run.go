package compiler

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gnana997/designc/pkg/classify"
	"github.com/gnana997/designc/pkg/tokens"
)

// Options configures one compile invocation.
type Options struct {
	// Theme maps hex colors to token names, overriding the default
	// palette. Typically loaded from a project theme file.
	Theme map[string]string

	// Exporter supplies asset bytes per node. Defaults to
	// EmbeddedExporter.
	Exporter Exporter

	// Logger receives per-node diagnostics. Defaults to a discard
	// logger.
	Logger *slog.Logger
}

// Asset is one exported image, addressed in markup by the
// {{asset:<id>}} placeholder.
type Asset struct {
	ID       int
	Bytes    []byte
	MIME     string
	FileName string
}

// run is the per-invocation state: asset counter, filename set, token
// registry. Built fresh per compile; sharing a run across compiles
// breaks idempotence.
type run struct {
	reg      *tokens.Registry
	set      *tokens.Set
	colors   classify.Result
	exporter Exporter
	log      *slog.Logger

	assetSeq  int
	usedNames map[string]bool
	assets    map[int]Asset
}

func newRun(set *tokens.Set, opts Options) *run {
	res := classify.Colors(set.Colors)
	reg := tokens.NewRegistry(opts.Theme)
	reg.Prime(res)

	exp := opts.Exporter
	if exp == nil {
		exp = EmbeddedExporter{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &run{
		reg:       reg,
		set:       set,
		colors:    res,
		exporter:  exp,
		log:       log,
		usedNames: make(map[string]bool),
		assets:    make(map[int]Asset),
	}
}

// addAsset registers exported bytes under the next id and a unique
// generated filename. Ids are strictly increasing within the run.
func (r *run) addAsset(name, format string, raw []byte) Asset {
	r.assetSeq++
	a := Asset{
		ID:       r.assetSeq,
		Bytes:    raw,
		MIME:     mimeFor(format),
		FileName: r.uniqueFileName(name, format),
	}
	r.assets[a.ID] = a
	return a
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// uniqueFileName slugifies the node name and suffixes a counter on
// collision, tracked by the run-scoped used-names set.
func (r *run) uniqueFileName(name, ext string) string {
	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = "asset"
	}
	candidate := slug + "." + ext
	for i := 2; r.usedNames[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d.%s", slug, i, ext)
	}
	r.usedNames[candidate] = true
	return candidate
}

// placeholder renders the asset reference token substituted by the
// consumer with a data URI or file path.
func placeholder(id int) string {
	return fmt.Sprintf("{{asset:%d}}", id)
}

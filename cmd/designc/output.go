package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gnana997/designc/pkg/compiler"
)

// docBase returns the output base name for a document path:
// "pages/home.design.json" becomes "home".
func docBase(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".design.json") {
		return strings.TrimSuffix(base, ".design.json")
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeOutput writes one compiled document to dir: <base>.html,
// <base>.css, and assets under assets/<base>/. Asset placeholders in
// the markup are rewritten to the relative file paths, so the emitted
// HTML references real files.
func writeOutput(dir, base string, out *compiler.Output) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	markup := out.Markup
	if len(out.Assets) > 0 {
		assetDir := filepath.Join(dir, "assets", base)
		if err := os.MkdirAll(assetDir, 0755); err != nil {
			return fmt.Errorf("create asset directory: %w", err)
		}

		ids := make([]int, 0, len(out.Assets))
		for id := range out.Assets {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			a := out.Assets[id]
			if err := os.WriteFile(filepath.Join(assetDir, a.FileName), a.Bytes, 0644); err != nil {
				return fmt.Errorf("write asset %s: %w", a.FileName, err)
			}
			rel := filepath.ToSlash(filepath.Join("assets", base, a.FileName))
			markup = strings.ReplaceAll(markup, fmt.Sprintf("{{asset:%d}}", id), rel)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, base+".html"), []byte(markup), 0644); err != nil {
		return fmt.Errorf("write markup: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, base+".css"), []byte(out.CSS), 0644); err != nil {
		return fmt.Errorf("write css: %w", err)
	}
	return nil
}

// resolveDocPath turns a CLI document argument into a workspace path.
func resolveDocPath(root, arg string) string {
	if filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(root, arg)
}

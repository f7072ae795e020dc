package markup

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/oshokin/dotpptx/internal/domain/document"
	"github.com/oshokin/dotpptx/internal/logger"
)

// xmlDeclaration is the instruction body of the declaration header added to
// files that lack one. Presentation packages use UTF-8 standalone parts.
const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// PrettifyTree walks root and reformats every markup part file (*.xml and
// *.rels) in place: parsed, indented, and rewritten with an explicit
// declaration header. Element and attribute content is untouched, so the
// tree still packs into a working package afterwards.
//
// It returns the number of rewritten files. A parse failure aborts the
// remaining pass; files rewritten before the failure stay on disk.
func PrettifyTree(ctx context.Context, root string, indent int) (int, error) {
	count := 0

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if entry.IsDir() || !isMarkupFile(entry.Name()) {
			return nil
		}

		if err = prettifyFile(path, indent); err != nil {
			return err
		}

		count++
		logger.DebugKV(ctx, "Reformatted markup", "path", path)

		return nil
	})
	if err != nil {
		return count, err
	}

	return count, nil
}

// isMarkupFile reports whether the base name matches a prettified part type.
func isMarkupFile(name string) bool {
	switch filepath.Ext(name) {
	case ".xml", ".rels":
		return true
	default:
		return false
	}
}

// prettifyFile parses one markup file and rewrites it with indentation.
// The rewrite is atomic (temp file plus rename), so an interrupted run never
// leaves a half-written part behind.
func prettifyFile(path string, indent int) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return fmt.Errorf("parse %s: %w: %w", path, document.ErrMarkupParse, err)
	}

	ensureDeclaration(doc)
	doc.Indent(indent)

	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}

	return replaceFile(path, data)
}

// ensureDeclaration prepends an XML declaration when the document has none.
func ensureDeclaration(doc *etree.Document) {
	for _, token := range doc.Child {
		if pi, ok := token.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}

	decl := doc.CreateProcInst("xml", xmlDeclaration)
	doc.RemoveChild(decl)
	doc.InsertChildAt(0, decl)
}

// replaceFile atomically replaces path with the given content,
// keeping the original file mode.
func replaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("write temp for %s: %w", path, err)
	}

	if err = tmp.Chmod(info.Mode()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("close temp for %s: %w", path, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

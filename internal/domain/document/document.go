package document

import (
	"errors"
	"path/filepath"
	"strings"
)

const (
	// PackageExt is the file extension of a presentation package.
	// Matching is case-sensitive; editors produce lowercase extensions.
	PackageExt = ".pptx"

	// ExplodedSuffix marks a directory as the exploded form of a package.
	ExplodedSuffix = "_pptx"

	// TempFilePrefix marks lock/autosave files left behind by presentation
	// editors next to an open document. Such files are never real packages.
	TempFilePrefix = "~$"
)

var (
	// ErrPathNotFound indicates the given source path does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrPackageRead indicates a corrupt or unreadable package archive.
	ErrPackageRead = errors.New("package not readable")

	// ErrTreeRead indicates a missing or invalid exploded tree.
	ErrTreeRead = errors.New("exploded tree not readable")

	// ErrMarkupParse indicates malformed markup encountered during prettify.
	ErrMarkupParse = errors.New("markup not well-formed")
)

// IsPackage reports whether the base name looks like a presentation package.
func IsPackage(name string) bool {
	return strings.HasSuffix(name, PackageExt)
}

// IsExplodedTree reports whether the base name carries the exploded-tree suffix.
func IsExplodedTree(name string) bool {
	return strings.HasSuffix(name, ExplodedSuffix)
}

// IsEditorTempFile reports whether the base name is an editor temp/lock file.
func IsEditorTempFile(name string) bool {
	return strings.HasPrefix(name, TempFilePrefix)
}

// ExplodedDirName derives the exploded-tree directory name for a package path:
// "slides-1.pptx" becomes "slides-1_pptx". The extension is stripped whatever
// it is, so a single explicitly given file never needs to match PackageExt.
func ExplodedDirName(packagePath string) string {
	base := filepath.Base(packagePath)

	return strings.TrimSuffix(base, filepath.Ext(base)) + ExplodedSuffix
}

// PackageFileName derives the package file name for an exploded-tree path:
// "slides-1_pptx" becomes "slides-1.pptx".
func PackageFileName(treePath string) string {
	base := filepath.Base(treePath)

	return strings.TrimSuffix(base, ExplodedSuffix) + PackageExt
}

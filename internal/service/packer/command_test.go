package packer

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/dotpptx/internal/domain/document"
)

// writeTree lays out member files under root.
func writeTree(t *testing.T, root string, members map[string]string) {
	t.Helper()

	for name, content := range members {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// memberNames lists the member paths of a package.
func memberNames(t *testing.T, packagePath string) []string {
	t.Helper()

	reader, err := zip.OpenReader(packagePath)
	require.NoError(t, err)

	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, 0, len(reader.File))
	for _, member := range reader.File {
		names = append(names, member.Name)
	}

	return names
}

// TestRunSingleTree packs one exploded tree into a sibling package.
func TestRunSingleTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree := filepath.Join(dir, "slides-1_pptx")
	writeTree(t, tree, map[string]string{
		"[Content_Types].xml":   "<Types/>",
		"ppt/presentation.xml":  "<presentation/>",
		"ppt/slides/slide1.xml": "<sld/>",
	})

	err := Run(context.Background(), &Options{Path: tree})
	require.NoError(t, err)

	pkg := filepath.Join(dir, "slides-1.pptx")
	require.FileExists(t, pkg)
	require.ElementsMatch(t,
		[]string{"[Content_Types].xml", "ppt/presentation.xml", "ppt/slides/slide1.xml"},
		memberNames(t, pkg))

	// The source tree stays put without --delete-original.
	require.DirExists(t, tree)
}

// TestRunSuffixGating produces no package for a directory without the suffix.
func TestRunSuffixGating(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	deck := filepath.Join(dir, "deck")
	writeTree(t, deck, map[string]string{"part.xml": "<x/>"})

	err := Run(context.Background(), &Options{Path: deck})
	require.NoError(t, err)

	require.NoFileExists(t, filepath.Join(dir, "deck.pptx"))
	require.NoFileExists(t, filepath.Join(deck, "deck.pptx"))
}

// TestRunParentDirectory packs every suffixed subdirectory of the given parent.
func TestRunParentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "a_pptx"), map[string]string{"part.xml": "<a/>"})
	writeTree(t, filepath.Join(dir, "b_pptx"), map[string]string{"part.xml": "<b/>"})
	writeTree(t, filepath.Join(dir, "ignored"), map[string]string{"part.xml": "<c/>"})

	err := Run(context.Background(), &Options{Path: dir})
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(dir, "a.pptx"))
	require.FileExists(t, filepath.Join(dir, "b.pptx"))
	require.NoFileExists(t, filepath.Join(dir, "ignored.pptx"))
}

// TestRunDeleteOriginal removes the source tree only after the package is written.
func TestRunDeleteOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree := filepath.Join(dir, "deck_pptx")
	writeTree(t, tree, map[string]string{"part.xml": "<x/>"})

	err := Run(context.Background(), &Options{Path: tree, DeleteOriginal: true})
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(dir, "deck.pptx"))
	require.NoDirExists(t, tree)
}

// TestRunPathNotFound fails before creating anything.
func TestRunPathNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := Run(context.Background(), &Options{Path: filepath.Join(dir, "gone_pptx")})
	require.ErrorIs(t, err, document.ErrPathNotFound)
	require.NoFileExists(t, filepath.Join(dir, "gone.pptx"))
}

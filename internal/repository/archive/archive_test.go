package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/dotpptx/internal/domain/document"
)

// testMembers is a minimal package layout used across the tests.
var testMembers = map[string]string{
	"[Content_Types].xml":    `<?xml version="1.0"?><Types/>`,
	"ppt/presentation.xml":   `<?xml version="1.0"?><presentation/>`,
	"ppt/slides/slide1.xml":  `<?xml version="1.0"?><sld><t>Hello</t></sld>`,
	"docProps/thumbnail.bin": "\x00\x01\x02\x03",
}

// writeTestPackage creates a zip file containing the provided members.
func writeTestPackage(t *testing.T, path string, members map[string]string) {
	t.Helper()

	out, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(out)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)

		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
}

// TestExtract unpacks every member to its relative path with identical content.
func TestExtract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := filepath.Join(dir, "slides-1.pptx")
	writeTestPackage(t, pkg, testMembers)

	dest := filepath.Join(dir, "slides-1_pptx")
	names, err := Extract(context.Background(), pkg, dest)
	require.NoError(t, err)
	require.ElementsMatch(t, keys(testMembers), names)

	for name, content := range testMembers {
		got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(name)))
		require.NoError(t, err)
		require.Equal(t, content, string(got))
	}
}

// TestExtractOverwrites replaces colliding files without merge semantics.
func TestExtractOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := filepath.Join(dir, "a.pptx")
	writeTestPackage(t, pkg, map[string]string{"part.xml": "<new/>"})

	dest := filepath.Join(dir, "a_pptx")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "part.xml"), []byte("<old/>"), 0o644))

	_, err := Extract(context.Background(), pkg, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "part.xml"))
	require.NoError(t, err)
	require.Equal(t, "<new/>", string(got))
}

// TestExtractCorruptPackage classifies unreadable archives as a package read error.
func TestExtractCorruptPackage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := filepath.Join(dir, "broken.pptx")
	require.NoError(t, os.WriteFile(pkg, []byte("this is not a zip file"), 0o644))

	_, err := Extract(context.Background(), pkg, filepath.Join(dir, "broken_pptx"))
	require.ErrorIs(t, err, document.ErrPackageRead)
}

// TestExtractRejectsEscapingMember refuses member names that climb out of the destination.
func TestExtractRejectsEscapingMember(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := filepath.Join(dir, "evil.pptx")
	writeTestPackage(t, pkg, map[string]string{"../escape.xml": "<x/>"})

	_, err := Extract(context.Background(), pkg, filepath.Join(dir, "evil_pptx"))
	require.ErrorIs(t, err, document.ErrPackageRead)
	require.NoFileExists(t, filepath.Join(dir, "escape.xml"))
}

// TestCreate packs only regular files, names them with forward slashes,
// and compresses them with deflate.
func TestCreate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree := filepath.Join(dir, "slides-1_pptx")
	writeTestTree(t, tree, testMembers)

	pkg := filepath.Join(dir, "slides-1.pptx")
	names, err := Create(context.Background(), tree, pkg)
	require.NoError(t, err)
	require.ElementsMatch(t, keys(testMembers), names)

	reader, err := zip.OpenReader(pkg)
	require.NoError(t, err)

	defer func() {
		_ = reader.Close()
	}()

	require.Len(t, reader.File, len(testMembers))

	for _, member := range reader.File {
		require.Equal(t, uint16(zip.Deflate), member.Method)

		rc, err := member.Open()
		require.NoError(t, err)

		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		require.Equal(t, testMembers[member.Name], buf.String())
	}
}

// TestCreateSkipsDirectories never emits archive members for directory entries.
func TestCreateSkipsDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree := filepath.Join(dir, "deck_pptx")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "empty", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "part.xml"), []byte("<x/>"), 0o644))

	pkg := filepath.Join(dir, "deck.pptx")
	names, err := Create(context.Background(), tree, pkg)
	require.NoError(t, err)
	require.Equal(t, []string{"part.xml"}, names)
}

// TestCreateMissingTree classifies a nonexistent source tree as a tree read error.
func TestCreateMissingTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := filepath.Join(dir, "out.pptx")

	_, err := Create(context.Background(), filepath.Join(dir, "gone_pptx"), pkg)
	require.ErrorIs(t, err, document.ErrTreeRead)
	require.NoFileExists(t, pkg)
}

// TestCreateTreeIsFile rejects a regular file given as the tree path.
func TestCreateTreeIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notATree := filepath.Join(dir, "file_pptx")
	require.NoError(t, os.WriteFile(notATree, []byte("x"), 0o644))

	_, err := Create(context.Background(), notATree, filepath.Join(dir, "file.pptx"))
	require.ErrorIs(t, err, document.ErrTreeRead)
}

// writeTestTree lays out the provided members as files under root.
func writeTestTree(t *testing.T, root string, members map[string]string) {
	t.Helper()

	for name, content := range members {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// keys returns the member names of a test layout.
func keys(members map[string]string) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}

	return names
}

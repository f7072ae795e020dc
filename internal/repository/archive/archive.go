package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/oshokin/dotpptx/internal/domain/document"
	"github.com/oshokin/dotpptx/internal/logger"
)

const (
	// defaultDirMode is used for directories created during extraction.
	defaultDirMode os.FileMode = 0o755

	// defaultFileMode is used for extracted member files.
	defaultFileMode os.FileMode = 0o644
)

// Extract unpacks the package at packagePath into destDir, creating the
// directory and all intermediates. Colliding files are overwritten silently.
// It returns the forward-slash relative paths of all extracted members.
func Extract(ctx context.Context, packagePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(packagePath)
	if err != nil {
		return nil, fmt.Errorf("open package %s: %w: %w", packagePath, document.ErrPackageRead, err)
	}

	// Best-effort cleanup.
	defer func() {
		_ = reader.Close()
	}()

	if err = os.MkdirAll(destDir, defaultDirMode); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", destDir, err)
	}

	names := make([]string, 0, len(reader.File))

	for _, member := range reader.File {
		if member.FileInfo().IsDir() {
			// Directory entries shape the tree but are not members.
			target, targetErr := memberTarget(destDir, member.Name)
			if targetErr != nil {
				return nil, targetErr
			}

			if err = os.MkdirAll(target, defaultDirMode); err != nil {
				return nil, fmt.Errorf("create directory %s: %w", member.Name, err)
			}

			continue
		}

		if err = extractMember(destDir, member); err != nil {
			return nil, err
		}

		names = append(names, member.Name)
		logger.DebugKV(ctx, "Extracted member", "name", member.Name)
	}

	return names, nil
}

// extractMember writes a single archive member to its path under destDir.
func extractMember(destDir string, member *zip.File) error {
	target, err := memberTarget(destDir, member.Name)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(target), defaultDirMode); err != nil {
		return fmt.Errorf("create directory for %s: %w", member.Name, err)
	}

	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w: %w", member.Name, document.ErrPackageRead, err)
	}

	defer func() {
		_ = rc.Close()
	}()

	out, err := os.OpenFile(filepath.Clean(target), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	if _, err = io.Copy(out, rc); err != nil {
		_ = out.Close()

		return fmt.Errorf("extract member %s: %w: %w", member.Name, document.ErrPackageRead, err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}

	return nil
}

// memberTarget resolves a member name to a path under destDir and rejects
// names that would escape it.
func memberTarget(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("member %s escapes destination: %w", name, document.ErrPackageRead)
	}

	return target, nil
}

// Create packs the exploded tree at treeDir into a fresh package file at
// packagePath, truncating any existing file there. Every regular file found
// by a recursive walk becomes a deflate-compressed member named by its
// forward-slash relative path; directories are skipped. Member order equals
// walk order. It returns the member names in that order.
func Create(ctx context.Context, treeDir, packagePath string) ([]string, error) {
	info, err := os.Stat(treeDir)
	if err != nil {
		return nil, fmt.Errorf("stat tree %s: %w: %w", treeDir, document.ErrTreeRead, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("tree %s is not a directory: %w", treeDir, document.ErrTreeRead)
	}

	out, err := os.Create(filepath.Clean(packagePath))
	if err != nil {
		return nil, fmt.Errorf("create package %s: %w", packagePath, err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	names, err := writeTree(ctx, zw, treeDir)
	if err == nil {
		err = zw.Close()
	} else {
		_ = zw.Close()
	}

	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		// Do not leave a half-written package behind.
		_ = os.Remove(packagePath)

		return nil, err
	}

	return names, nil
}

// writeTree walks treeDir and appends every regular file as an archive member.
func writeTree(ctx context.Context, zw *zip.Writer, treeDir string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(treeDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w: %w", path, document.ErrTreeRead, err)
		}

		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(treeDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		name := filepath.ToSlash(rel)
		if err = writeMember(zw, path, name); err != nil {
			return err
		}

		names = append(names, name)
		logger.DebugKV(ctx, "Added member", "name", name)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// writeMember copies one file into the archive under the given member name.
func writeMember(zw *zip.Writer, path, name string) error {
	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", path, document.ErrTreeRead, err)
	}

	defer func() {
		_ = in.Close()
	}()

	//nolint:exhaustruct // Remaining header fields are filled in by the writer.
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("create member %s: %w", name, err)
	}

	if _, err = io.Copy(w, in); err != nil {
		return fmt.Errorf("write member %s: %w", name, err)
	}

	return nil
}

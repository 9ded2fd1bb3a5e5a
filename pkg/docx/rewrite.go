package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SanitizedPrefix marks derived template copies so discovery can skip them.
const SanitizedPrefix = "sanitized_"

// Rewrite produces a sanitized copy of the template at templatePath inside
// destDir, named SanitizedPrefix + the original basename. Every {{...}}
// occurrence whose cleaned inner text is a key of mapping is rewritten to the
// mapped identifier; every other occurrence, and every other byte of the
// archive, passes through unchanged. The original file is never touched.
//
// The archive is unpacked into a scratch directory that is unique per call
// and removed on every return path.
func Rewrite(templatePath string, mapping map[string]string, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("docx: create destination dir: %w", err)
	}

	scratch, err := os.MkdirTemp("", "docforge-rewrite-")
	if err != nil {
		return "", fmt.Errorf("docx: create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := unpack(templatePath, scratch); err != nil {
		return "", err
	}

	docPath := filepath.Join(scratch, filepath.FromSlash(DocumentPath))
	xmlContent, err := os.ReadFile(docPath)
	if err != nil {
		return "", fmt.Errorf("docx: read unpacked %s: %w", DocumentPath, err)
	}

	rewritten := tokenPattern.ReplaceAllStringFunc(string(xmlContent), func(occurrence string) string {
		inner := occurrence[2 : len(occurrence)-2]
		if key, ok := mapping[CleanToken(inner)]; ok {
			return "{{" + key + "}}"
		}
		return occurrence
	})

	if err := os.WriteFile(docPath, []byte(rewritten), 0o644); err != nil {
		return "", fmt.Errorf("docx: write rewritten %s: %w", DocumentPath, err)
	}

	outPath := filepath.Join(destDir, SanitizedPrefix+filepath.Base(templatePath))
	if err := repack(scratch, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// unpack extracts every archive member below root, refusing entries that
// would escape it.
func unpack(archivePath, root string) error {
	reader, _, err := OpenFile(archivePath)
	if err != nil {
		return err
	}
	for _, file := range reader.Parts() {
		target := filepath.Join(root, filepath.FromSlash(file.Name))
		if !strings.HasPrefix(target, filepath.Clean(root)+string(os.PathSeparator)) {
			return fmt.Errorf("docx: archive member %s escapes extraction dir", file.Name)
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("docx: create dir %s: %w", file.Name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("docx: create dir for %s: %w", file.Name, err)
		}
		if err := extractMember(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractMember(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("docx: open member %s: %w", file.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("docx: create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("docx: extract member %s: %w", file.Name, err)
	}
	return nil
}

// repack walks root and writes every regular file into a new deflate-
// compressed archive at outPath, preserving slash-separated relative paths.
func repack(root, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("docx: create archive %s: %w", outPath, err)
	}

	w := zip.NewWriter(out)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// zip.Writer.Create defaults to the deflate method.
		fw, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(fw, src)
		src.Close()
		return err
	})
	if walkErr != nil {
		w.Close()
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("docx: repack archive: %w", walkErr)
	}
	if err := w.Close(); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("docx: finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("docx: close archive: %w", err)
	}
	return nil
}

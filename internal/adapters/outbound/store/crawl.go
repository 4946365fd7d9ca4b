package store

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/domain"
)

// Crawl yields the regular files below root whose name ends with one of
// extensions. A directory nested maxDepth or more levels below root is
// neither listed nor descended. Files of a directory come in name order
// before its subdirectories. Symlinks are never followed.
//
// The sequence is lazy and can be ranged over more than once; every range
// walks the tree again.
func (s *Store) Crawl(root string, extensions []string, maxDepth int) iter.Seq[domain.CrawlEntry] {
	exts := normalizeExtensions(extensions)

	return func(yield func(domain.CrawlEntry) bool) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			s.logger.Error("scan root unusable", zap.String("root", root), zap.Error(err))
			return
		}
		info, err := os.Stat(absRoot)
		if err != nil {
			s.logger.Error("scan root does not exist", zap.String("root", absRoot), zap.Error(err))
			return
		}
		if !info.IsDir() {
			s.logger.Debug("scan root is not a directory", zap.String("root", absRoot))
			return
		}
		s.walk(absRoot, 0, exts, maxDepth, yield)
	}
}

// walk visits dir at the given depth and reports whether the caller should keep going.
func (s *Store) walk(dir string, depth int, exts []string, maxDepth int, yield func(domain.CrawlEntry) bool) bool {
	if depth >= maxDepth {
		return true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
		return true
	}

	var subdirs []string
	for _, e := range entries {
		switch {
		case e.Type()&os.ModeSymlink != 0:
			continue
		case e.IsDir():
			subdirs = append(subdirs, filepath.Join(dir, e.Name()))
		case e.Type().IsRegular() && hasExtension(e.Name(), exts):
			abs := filepath.Join(dir, e.Name())
			if !yield(domain.CrawlEntry{AbsPath: abs, RelPath: s.relative(abs)}) {
				return false
			}
		}
	}

	for _, sub := range subdirs {
		if !s.walk(sub, depth+1, exts, maxDepth, yield) {
			return false
		}
	}
	return true
}

// relative returns abs relative to the workspace in slash form, or abs itself
// when it lies outside the workspace.
func (s *Store) relative(abs string) string {
	rel, err := filepath.Rel(s.workspace, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.ToSlash(rel)
}

func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, e := range extensions {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func hasExtension(name string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

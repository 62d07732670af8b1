package provider

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
)

const gitDir = ".git"

// NewWorkspace serves a repository checkout. Paths are slash separated and relative to its root.
func NewWorkspace(fs afero.Fs) service.Workspace {
	return &workspace{fs: fs}
}

// NewRootWorkspace opens the repository at root on the local disk.
func NewRootWorkspace(root string) (service.Workspace, error) {
	// BasePathFs rejects every path below a relative base such as "."
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve repository root %v", root)
	}
	return NewWorkspace(afero.NewBasePathFs(afero.NewOsFs(), absRoot)), nil
}

type workspace struct {
	fs afero.Fs

	// built on first lookup, the file tree makes existence checks independent of the OS casing rules
	exact     map[string]struct{}
	canonical map[string]string
}

func (w *workspace) Exists(filePath string) bool {
	_, ok := w.Canonical(filePath)
	return ok
}

// Canonical returns the path with the casing it has on disk.
func (w *workspace) Canonical(filePath string) (string, bool) {
	w.buildIndex()
	canonical, ok := w.canonical[strings.ToLower(clean(filePath))]
	return canonical, ok
}

func (w *workspace) ExistsCaseSensitive(filePath string) bool {
	w.buildIndex()
	_, ok := w.exact[clean(filePath)]
	return ok
}

func (w *workspace) IsFile(filePath string) bool {
	info, err := w.fs.Stat(native(filePath))
	return err == nil && info.Mode().IsRegular()
}

func (w *workspace) IsDir(filePath string) bool {
	ok, err := afero.DirExists(w.fs, native(filePath))
	return err == nil && ok
}

func (w *workspace) ReadFile(filePath string) (string, error) {
	content, err := afero.ReadFile(w.fs, native(filePath))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read file %v", filePath)
	}
	return string(content), nil
}

func (w *workspace) WriteFile(filePath, content string) error {
	mode := os.FileMode(0o644)
	if info, err := w.fs.Stat(native(filePath)); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(w.fs, native(filePath), []byte(content), mode); err != nil {
		return errors.Wrapf(err, "failed to write file %v", filePath)
	}
	if w.exact != nil {
		w.add(clean(filePath))
	}
	return nil
}

// ListFiles returns every file below the directories, sorted. Missing directories are skipped.
func (w *workspace) ListFiles(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		if !w.IsDir(dir) {
			continue
		}
		err := afero.Walk(w.fs, native(dir), func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if info.Name() == gitDir {
					return filepath.SkipDir
				}
				return nil
			}
			files = append(files, clean(filepath.ToSlash(filePath)))
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list files in %v", dir)
		}
	}
	sort.Strings(files)
	return files, nil
}

// ListDir returns the names of the files directly inside dir, sorted.
func (w *workspace) ListDir(dir string) ([]string, error) {
	infos, err := afero.ReadDir(w.fs, native(dir))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %v", dir)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (w *workspace) buildIndex() {
	if w.exact != nil {
		return
	}
	w.exact = make(map[string]struct{})
	w.canonical = make(map[string]string)
	_ = afero.Walk(w.fs, ".", func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && info.Name() == gitDir {
			return filepath.SkipDir
		}
		w.add(clean(filepath.ToSlash(filePath)))
		return nil
	})
}

func (w *workspace) add(filePath string) {
	for p := filePath; p != "." && p != "/"; p = path.Dir(p) {
		w.exact[p] = struct{}{}
		if _, ok := w.canonical[strings.ToLower(p)]; !ok {
			w.canonical[strings.ToLower(p)] = p
		}
	}
}

func clean(filePath string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(filePath)), "/")
}

func native(filePath string) string {
	return filepath.FromSlash(clean(filePath))
}

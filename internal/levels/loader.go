package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/levelsim/internal/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading levels from a file tree.
type Loader struct {
	FS   fs.FS
	Root string // label used in errors and FilePath
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader over the levels shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadAll recursively scans and loads all level files. Any file that fails
// to parse or validate fails the whole load. Levels are sorted by number,
// then ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if prev, dup := seen[level.ID]; dup {
			return fmt.Errorf("duplicate level id %q in %s and %s", level.ID, prev, level.FilePath)
		}
		seen[level.ID] = level.FilePath

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading levels from %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Number != levels[j].Number {
			return levels[i].Number < levels[j].Number
		}
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, given relative to the loader's root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parseLevel(data, filepath.Join(l.Root, filepath.FromSlash(p)))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in load order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadPath loads a level file from disk outside any loader root.
func LoadPath(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parseLevel(data, p)
}

// IsLevelFile reports whether p names a file with a level extension.
func IsLevelFile(p string) bool {
	return isSupportedExtension(strings.ToLower(filepath.Ext(p)))
}

func parseLevel(data []byte, p string) (Level, error) {
	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	level, err := fromYAML(parsed)
	if err != nil {
		return Level{}, fmt.Errorf("invalid level %s: %w", p, err)
	}
	level.FilePath = p
	return level, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.YAMLLevel, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.YAMLLevel{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

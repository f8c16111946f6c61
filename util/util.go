package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return errors.Wrapf(err, "could not create output dir %v", dir)
	}
	return nil
}

func IsMidiPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".mid") || strings.HasSuffix(lower, ".midi")
}

// GatherAllMidiPaths returns path itself when it is a file, otherwise every
// .mid/.midi file below it. maxNum of 0 means no limit.
func GatherAllMidiPaths(path string, maxNum int) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not stat input")
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsMidiPath(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, errors.Wrapf(err, "error walking %v", path)
	}
	return res, nil
}

// TitleFromPath strips directory and extension: "songs/rickroll.mid" -> "rickroll".
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TitleFromRelPath names an input by its path below root with separators
// turned into underscores: root "songs", "songs/a/x.mid" -> "a_x". When root
// is the file itself the base name is used.
func TitleFromRelPath(root string, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return TitleFromPath(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "_")
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func GetKeysSorted[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

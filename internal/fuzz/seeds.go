package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"main :: (args: [][^]u8) -> int {\n\t0\n}\n",
	"a : u8 : 255\nb :: a\n",
	"f :: (s: []u8) -> uint { s.length }\n",
	"g :: (n: uint) -> int { int(n) }\n",
	"T :: [^]u8\nP :: ^T\n",
	"p :: (x: int, y: int) -> int { y }\nq :: () -> int { p(1, 2) }\n",
	"(a: int, b: int)\n",
	"x := 1\n",
	"main :: () -> int { { x := 1; x } }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.nkl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".nkl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src, maxSeedBytes))
		return nil
	})
}

func clampSeed(src []byte, limit int) []byte {
	if len(src) <= limit {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:limit]...)
}

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

var pythonSeeds = []string{
	"",
	"def add(a, b=0):\n    return a + b\n",
	"def f():\n    \"\"\"Doc.\"\"\"\n    return 1\n",
	"class A:\n    def __init__(self, x: int) -> None:\n        self.x = x\n\n    @property\n    def x2(self):\n        return self.x * 2\n",
	"async def g(*args, key=None, **kwargs) -> dict[str, int]:\n    raise ValueError(key)\n",
	"def h(a,\n      b: tuple[int, int] = (1, 2),\n      /, *, c=lambda x, y: x):\n    pass\n",
	"if True:\n    def inner():\n        pass\nelse:\n\tdef other(): pass\n",
	"def crlf(x):\r\n    return x\r\n",
	"\ufeffdef bom():\n    pass\n",
	"def s():\n    x = f\"{'a' + \"b\"}\"\n    return x\n",
	"def broken(:\n    pass\n",
	"def unterminated():\n    \"\"\"never closed\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range pythonSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

package build_behavior

import (
	"path/filepath"

	"github.com/vk/litemake/internal/config"
	"github.com/vk/litemake/internal/hcl"
	"github.com/vk/litemake/internal/layout"
)

const projectHCL = `
package "calc" {
  version {
    major = 0
    minor = 3
  }
}

target "calc" {
  sources = ["src/**/*.c"]
  include = ["include"]
}

target "mathlib" {
  library = true
  sources = ["lib/*.c"]
  include = ["include"]
}
`

var calcVersion = layout.Version{Minor: 3}

func projectFiles() map[string]string {
	return map[string]string{
		hcl.FileName:     projectHCL,
		"include/calc.h": "int add(int, int);\n",
		"src/main.c":     "#include \"calc.h\"\nint main(void) { return add(1, -1); }\n",
		"src/ops/add.c":  "int add(int a, int b) { return a + b; }\n",
		"lib/mul.c":      "int mul(int a, int b) { return a * b; }\n",
		"lib/README.txt": "not a source\n",
	}
}

func objectPath(dir, target, rel string) string {
	return layout.New(dir, config.DefaultOutput).ObjectPath("calc", target, calcVersion, filepath.FromSlash(rel))
}

func executablePath(dir string) string {
	return layout.New(dir, config.DefaultOutput).ExecutablePath("calc", "calc", calcVersion)
}

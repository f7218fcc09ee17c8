package source

import (
	"embed"
	"io/fs"
)

// BuiltinName is the name of the embedded template source.
const BuiltinName = "builtin"

//go:embed all:builtin
var builtinFS embed.FS

// NewBuiltinSource returns the templates compiled into the binary.
func NewBuiltinSource() Source {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails for an invalid directory name.
		panic(err)
	}
	return &fsSource{
		name: BuiltinName,
		fsys: sub,
	}
}

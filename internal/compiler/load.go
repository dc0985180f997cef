package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/trs/internal/ir"
)

// LoadFile compiles every problem declared in one CUE file.
func LoadFile(path string) ([]ir.ProblemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}
	return LoadSource(path, data)
}

// LoadSource compiles CUE source. filename is used in error positions.
func LoadSource(filename string, src []byte) ([]ir.ProblemSpec, error) {
	v := cuecontext.New().CompileBytes(src, cue.Filename(filename))
	return CompileProblems(v)
}

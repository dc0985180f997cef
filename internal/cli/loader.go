package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/trs/internal/compiler"
	"github.com/roach88/trs/internal/ir"
)

// Error codes shared by all commands. Problem validation codes (E1xx)
// come from the compiler package.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Problem could not be built
	ErrCodeDatabase    = "E007" // History database error

	ErrCodeSignature    = "E200" // Signature text rejected
	ErrCodeParse        = "E201" // Term or equation text rejected
	ErrCodeNoUnifier    = "E202" // Unification problem has no solution
	ErrCodeSearchLimit  = "E203" // Unification search budget exhausted
	ErrCodeUnorientable = "E204" // Completion met an unorientable identity
	ErrCodeQuota        = "E205" // Completion step quota exhausted
	ErrCodeNoProblem    = "E206" // Requested problem is not declared
)

// LoadResult holds the problems found under a path.
type LoadResult struct {
	Problems  []ir.ProblemSpec
	FileCount int
}

// LoadError represents an error that occurred while loading problems.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProblems compiles the problems declared in path, a .cue file or a
// directory of them. Files are read in name order and every file is its
// own CUE value, so two files may not declare the same problem.
func LoadProblems(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("problem path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing problem path: %v", err)}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(files) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
	}

	result := &LoadResult{FileCount: len(files)}
	seen := make(map[string]string)
	for _, f := range files {
		specs, err := compiler.LoadFile(f)
		if err != nil {
			return nil, convertCompileError(err, f)
		}
		for _, spec := range specs {
			if prev, dup := seen[spec.Name]; dup {
				return nil, &LoadError{
					Code:    ErrCodeLoadFailed,
					Message: fmt.Sprintf("problem %q declared in both %s and %s", spec.Name, prev, f),
				}
			}
			seen[spec.Name] = f
			result.Problems = append(result.Problems, spec)
		}
	}
	return result, nil
}

// SelectProblem picks the named problem. An empty name selects the only
// problem, and is an error when there are several.
func SelectProblem(problems []ir.ProblemSpec, name string) (ir.ProblemSpec, error) {
	if name == "" {
		if len(problems) == 1 {
			return problems[0], nil
		}
		return ir.ProblemSpec{}, &LoadError{
			Code:    ErrCodeNoProblem,
			Message: fmt.Sprintf("several problems declared, choose one with --problem: %s", strings.Join(problemNames(problems), ", ")),
		}
	}
	for _, p := range problems {
		if p.Name == name {
			return p, nil
		}
	}
	return ir.ProblemSpec{}, &LoadError{
		Code:    ErrCodeNoProblem,
		Message: fmt.Sprintf("problem %q not found (declared: %s)", name, strings.Join(problemNames(problems), ", ")),
	}
}

func problemNames(problems []ir.ProblemSpec) []string {
	names := make([]string, len(problems))
	for i, p := range problems {
		names[i] = p.Name
	}
	return names
}

// FindCUEFiles walks the directory and returns all .cue file paths, sorted.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, file string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: fmt.Sprintf("%s: %v", file, err),
	}
}

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "signature":
		return compiler.ErrInvalidSignature
	case "identities":
		return compiler.ErrNoIdentities
	case "precedence":
		return compiler.ErrInvalidPrecedence
	case "strategy":
		return compiler.ErrInvalidStrategy
	case "max_steps":
		return compiler.ErrInvalidMaxSteps
	case "problem":
		return ErrCodeNoProblem
	default:
		return ErrCodeLoadFailed
	}
}

// Command extract_tests converts end-to-end Go test functions into
// Markdown test cases for the mdtest harness. It scans *_test.go files
// for calls to compileAndExecute plus a be.Equal on the output, and
// prints the equivalent "### Test:" sections with streamlang-program
// and execute fences to stdout.
//
// Usage: go run scripts/extract_tests.go > test/extracted_test.md
package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

type testCase struct {
	Name       string
	Input      string
	Expected   string
	SourceFile string
	FuncName   string
}

type extractor struct {
	fileSet *token.FileSet
	cases   []testCase
}

func newExtractor() *extractor {
	return &extractor{fileSet: token.NewFileSet()}
}

func (e *extractor) extractFromTestFiles(pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := e.visitFile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to process %s: %v\n", file, err)
		}
	}
	return nil
}

func (e *extractor) visitFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	file, err := parser.ParseFile(e.fileSet, filename, src, parser.ParseComments)
	if err != nil {
		return err
	}

	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			if strings.HasPrefix(fn.Name.Name, "Test") {
				e.extractFromFunction(fn, filepath.Base(filename))
			}
		}
	}
	return nil
}

func (e *extractor) extractFromFunction(fn *ast.FuncDecl, sourceFile string) {
	var input string
	var expected string

	ast.Inspect(fn, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		// compileAndExecute(t, source) carries the program source.
		if ident, ok := call.Fun.(*ast.Ident); ok && ident.Name == "compileAndExecute" {
			if len(call.Args) >= 2 {
				if val, ok := resolveStringLiteral(call.Args[1]); ok {
					input = val
				}
			}
		}

		// be.Equal(t, out, expected) carries the expected output.
		if sel, ok := call.Fun.(*ast.SelectorExpr); ok {
			if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == "be" && sel.Sel.Name == "Equal" {
				if len(call.Args) >= 3 {
					if val, ok := resolveStringLiteral(call.Args[2]); ok {
						expected = val
					}
				}
			}
		}
		return true
	})

	if input == "" || expected == "" {
		return
	}

	tc := testCase{
		Name:       generateTestName(fn.Name.Name),
		Input:      strings.TrimSpace(input),
		Expected:   strings.TrimSuffix(expected, "\n"),
		SourceFile: sourceFile,
		FuncName:   fn.Name.Name,
	}

	if !e.isDuplicate(tc) {
		e.cases = append(e.cases, tc)
	}
}

func (e *extractor) isDuplicate(newCase testCase) bool {
	for _, existing := range e.cases {
		if existing.Input == newCase.Input && existing.Expected == newCase.Expected {
			return true
		}
	}
	return false
}

func generateTestName(funcName string) string {
	name := strings.TrimPrefix(funcName, "Test")
	name = strings.TrimPrefix(name, "Execute")

	var result []rune
	for i, r := range name {
		if i > 0 && 'A' <= r && r <= 'Z' {
			result = append(result, ' ')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

func resolveStringLiteral(expr ast.Expr) (string, bool) {
	if lit, ok := expr.(*ast.BasicLit); ok && lit.Kind == token.STRING {
		if val, err := strconv.Unquote(lit.Value); err == nil {
			return val, true
		}
	}
	return "", false
}

func (e *extractor) generateMarkdown() string {
	if len(e.cases) == 0 {
		return "# No test cases found\n"
	}

	sort.Slice(e.cases, func(i, j int) bool {
		if e.cases[i].SourceFile != e.cases[j].SourceFile {
			return e.cases[i].SourceFile < e.cases[j].SourceFile
		}
		return e.cases[i].FuncName < e.cases[j].FuncName
	})

	var sb strings.Builder
	sb.WriteString("# Extracted execution tests\n\n")
	sb.WriteString("Generated from existing Go test files.\n\n")

	currentFile := ""
	for _, tc := range e.cases {
		if tc.SourceFile != currentFile {
			currentFile = tc.SourceFile
			sb.WriteString(fmt.Sprintf("## Tests from %s\n\n", currentFile))
		}

		sb.WriteString(fmt.Sprintf("### Test: %s\n", tc.Name))
		sb.WriteString("```streamlang-program\n")
		sb.WriteString(tc.Input)
		sb.WriteString("\n```\n")
		sb.WriteString("```execute\n")
		sb.WriteString(tc.Expected)
		sb.WriteString("\n```\n\n")
	}

	return sb.String()
}

func main() {
	e := newExtractor()

	if err := e.extractFromTestFiles("*_test.go"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(e.generateMarkdown())
}

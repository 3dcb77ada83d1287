package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultArtifact is the output file name when -o is not given.
const DefaultArtifact = "out.svm"

func showUsage() {
	fmt.Fprintf(os.Stderr, `StreamLang - a scripting language for media playback, compiled for the StreamVM

Usage:
    slc <command> [arguments]

Commands:
    build [file]    Compile a .sl file (or stdin) to a StreamVM listing
    run [file]      Compile and execute a .sl file (or stdin)
    eval <code>     Evaluate inline StreamLang code
    check [file]    Parse and analyze a .sl file (or stdin)
    help            Show this help message

Examples:
    slc build -o intro.svm intro.sl
    slc build < intro.sl
    slc run examples/loop.sl
    slc eval 'open("Trailer 1"); play(); wait(5); pause();'
    slc check myscript.sl

Use "slc <command> -h" for more information about a command.
`)
}

// compileSource runs the full pipeline on a NUL-free source buffer and
// returns the instruction stream. With strict set, semantic
// diagnostics are fatal.
func compileSource(source []byte, strict bool) (string, error) {
	input := append(source, '\x00')

	l := NewLexer(input)
	l.NextToken()
	ast := ParseProgram(l)
	if l.Errors.HasErrors() {
		return "", l.Errors.Err()
	}

	if strict {
		if diags := Analyze(ast); diags.HasErrors() {
			return "", fmt.Errorf("%s", diags.String())
		}
	}

	cg := NewCodeGen()
	return cg.Generate(ast), nil
}

// readSource reads the named file, or stdin when name is empty or "-".
func readSource(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func sourceArg(fs *flag.FlagSet) string {
	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", DefaultArtifact, "Output file path")
	strict := fs.Bool("strict", false, "Treat semantic diagnostics as errors")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slc build [-o output] [-strict] [file]\n")
		fmt.Fprintf(os.Stderr, "Compile a .sl file (stdin when no file is given) to a StreamVM listing\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	source, err := readSource(sourceArg(fs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
		os.Exit(1)
	}

	// No partial artifacts: the stream is written only after a clean
	// compile.
	listing, err := compileSource(source, *strict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, []byte(listing), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d instructions)\n", *output, strings.Count(listing, "\n"))
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show the compiled instruction stream before running")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slc run [-v] [file]\n")
		fmt.Fprintf(os.Stderr, "Compile and execute a .sl file (stdin when no file is given)\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	source, err := readSource(sourceArg(fs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
		os.Exit(1)
	}

	compileAndRun(source, *verbose)
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show the compiled instruction stream before running")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slc eval [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Evaluate inline StreamLang code\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	compileAndRun([]byte(fs.Arg(0)), *verbose)
}

func compileAndRun(source []byte, verbose bool) {
	listing, err := compileSource(source, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Print(listing)
	}

	vm := NewVM()
	vm.Stdout = os.Stdout
	vm.Trace = os.Stdout
	if err := vm.Load(listing); err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}
	if err := vm.Run(0); err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show the parsed AST")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slc check [-v] [file]\n")
		fmt.Fprintf(os.Stderr, "Parse and analyze a .sl file (stdin when no file is given)\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	name := sourceArg(fs)
	source, err := readSource(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
		os.Exit(1)
	}
	if name == "" || name == "-" {
		name = "<stdin>"
	}

	input := append(source, '\x00')
	l := NewLexer(input)
	l.NextToken()
	ast := ParseProgram(l)
	if l.Errors.HasErrors() {
		fmt.Printf("Syntax errors in %s:\n%s\n", name, l.Errors.String())
		os.Exit(1)
	}

	if diags := Analyze(ast); diags.HasErrors() {
		fmt.Printf("Diagnostics in %s:\n%s\n", name, diags.String())
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", name)

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(ast))
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "run":
		runCommand(args)
	case "eval":
		evalCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}

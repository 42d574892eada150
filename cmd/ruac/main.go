// Command ruac is the compiler's command-line front end: it reads a
// source file, runs it through the lexer, parser and code generator, and
// reports either the resulting bytecode or the first compile error. There
// is no accompanying VM in this tool, so "run" is not a subcommand here —
// compile and inspect are as far as it goes.
package main

import (
	"fmt"
	"log"
	"os"

	"rua/internal/codegen"
	"rua/internal/compileerr"
	"rua/internal/disasm"
	"rua/internal/lexer"
	"rua/internal/parser"
)

const version = "0.1.0"

var commandAliases = map[string]string{
	"c":    "compile",
	"d":    "dump",
	"v":    "version",
	"help": "usage",
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ruac: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "compile":
		runCompile(os.Args[2:], false)
	case "dump":
		runCompile(os.Args[2:], true)
	case "version":
		fmt.Println("ruac", version)
	case "usage":
		usage()
	default:
		log.Printf("unknown command %q", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ruac <command> [path]

commands:
  compile <path>   compile a source file and report success or the first error
  dump <path>      compile a source file and print its disassembly
  version          print the compiler version`)
}

func runCompile(args []string, dump bool) {
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}

	tokens := lexer.NewScanner(string(src)).ScanTokens()
	tree, err := parser.NewParser(tokens).Parse()
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}

	fc, err := codegen.New().Compile(tree)
	if err != nil {
		if ce, ok := err.(*compileerr.CompileError); ok {
			log.Fatalf("%s: %s", path, ce.Error())
		}
		log.Fatalf("%s: %v", path, err)
	}

	if dump {
		fmt.Print(disasm.Chunk(fc))
		return
	}
	fmt.Printf("%s: compiled ok (%d instructions, %d constants)\n", path, len(fc.Instructions), len(fc.Constants))
}

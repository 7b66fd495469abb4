package main

import (
	"fmt"
	"os"

	"floop/interpreter-go/pkg/builder"
	"floop/interpreter-go/pkg/interpreter"
	"floop/interpreter-go/pkg/parser"
	"floop/interpreter-go/pkg/runtime"
)

const cliToolVersion = "floop-cli 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments after %s\n", args[0])
		return 1
	}
	return interpretFile(args[0])
}

func interpretFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return 1
	}

	fmt.Printf("Interpreting %s...\n", path)

	tree, err := parser.Parse(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		return 1
	}
	prog, err := builder.Build(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		return 1
	}

	result, err := interpreter.Run(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		return 1
	}
	if result != nil {
		fmt.Printf("Result: %s\n", runtime.Format(result))
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: floop [--help | --version] FILE")
	fmt.Fprintln(os.Stderr, "Interprets a Floop program and prints the entry call's result.")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	"github.com/castform/castform"
	"github.com/castform/castform/format"
	"github.com/castform/castform/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `castform CLI

Usage:
  castform check -schema schema.yaml -input input.json [-patterns patterns.yaml]

check validates a JSON document against a YAML schema. On success it prints
the typed changes as JSON; on validation failure it prints the rendered error
tree and exits 1.`)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath, inputPath, patternsPath string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file")
	fs.StringVar(&inputPath, "input", "", "JSON input file")
	fs.StringVar(&patternsPath, "patterns", "", "optional YAML file of custom format patterns")
	_ = fs.Parse(args)
	if schemaPath == "" || inputPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	schema, err := schemafile.LoadFile(schemaPath)
	if err != nil {
		fatalf("load schema: %v", err)
	}

	opts := []castform.Option{}
	if patternsPath != "" {
		reg, err := format.LoadFile(patternsPath)
		if err != nil {
			fatalf("load patterns: %v", err)
		}
		opts = append(opts, castform.WithPatterns(reg))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fatalf("read input: %v", err)
	}
	input, err := castform.FromJSON(data)
	if err != nil {
		fatalf("parse input: %v", err)
	}

	changes, err := schema.Validate(context.Background(), input, opts...)
	if err != nil {
		if tree, ok := castform.AsTree(err); ok {
			printJSON(tree.MessageMap())
			os.Exit(1)
		}
		fatalf("validate: %v", err)
	}
	printJSON(changes)
}

func printJSON(v any) {
	enc := gojson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("encode output: %v", err)
	}
}

func fatalf(fstr string, args ...any) {
	fmt.Fprintf(os.Stderr, "castform: "+fstr+"\n", args...)
	os.Exit(1)
}

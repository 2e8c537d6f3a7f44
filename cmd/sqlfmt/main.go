// Command sqlfmt reads SQL statements from a file or stdin, parses each
// one, and either writes a re-rendered canonical form back out or dumps
// the parsed AST for inspection. It exists mainly as a smoke test for the
// parser: a file that round-trips through parse-then-render without
// changing meaning is a file the grammar handles correctly.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/litesql/litesql/internal/astdump"
	"github.com/litesql/litesql/parser"
)

// Config holds defaults loaded from a YAML file (see --config), overridden
// by any flag the user passes explicitly on the command line.
type Config struct {
	DumpAST bool `yaml:"dump_ast"`
	Quiet   bool `yaml:"quiet"`
}

var opts struct {
	Config  string `short:"c" long:"config" description:"path to a YAML config file" value-name:"PATH"`
	DumpAST bool   `long:"dump-ast" description:"print the parsed AST instead of re-rendered SQL"`
	Quiet   bool   `short:"q" long:"quiet" description:"suppress per-statement output, only report parse errors"`
	Version bool   `long:"version" description:"print the version and exit"`
}

const version = "0.1.0"

func main() {
	optParser := flags.NewParser(&opts, flags.Default)
	optParser.Usage = "[OPTIONS] [FILE]"
	args, err := optParser.ParseArgs(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if opts.Version {
		fmt.Println("sqlfmt", version)
		os.Exit(0)
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sqlfmt:", err)
		os.Exit(1)
	}
	dumpAST := cfg.DumpAST || opts.DumpAST
	quiet := cfg.Quiet || opts.Quiet

	input, err := readInput(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sqlfmt:", err)
		os.Exit(1)
	}

	if err := run(os.Stdout, input, dumpAST, quiet); err != nil {
		fmt.Fprintln(os.Stderr, "sqlfmt:", err)
		os.Exit(1)
	}
}

// loadConfig reads path as YAML into a Config, returning a zero Config
// when path is empty. A missing explicitly-named file is an error; an
// unset --config flag just means "use the flag defaults".
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func run(w io.Writer, input string, dumpAST, quiet bool) error {
	p := parser.New(input)
	for {
		cmd, err := p.Next()
		if err != nil {
			if pe, ok := parser.AsParseError(err); ok {
				return pe
			}
			return err
		}
		if cmd == nil {
			return nil
		}
		if quiet {
			continue
		}
		if dumpAST {
			astdump.Dump(w, cmd)
			continue
		}
		fmt.Fprintln(w, parser.Render(cmd))
	}
}

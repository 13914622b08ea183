package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-valueprinter/printer"
)

type options struct {
	wasmFile    string
	funcName    string
	args        string
	typesFile   string
	typeExpr    string
	addr        string
	list        bool
	verbose     bool
	interactive bool
	maxElements uint
	maxString   uint
}

func parseFlags(fs *flag.FlagSet, argv []string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.wasmFile, "wasm", "", "Path to core wasm module")
	fs.StringVar(&o.funcName, "func", "", "Export to call")
	fs.StringVar(&o.args, "args", "", "Arguments to pass (comma-separated)")
	fs.StringVar(&o.typesFile, "types", "", "YAML type description")
	fs.StringVar(&o.typeExpr, "type", "int", `Result type, e.g. "char *", "Point", "wit:u32"`)
	fs.StringVar(&o.addr, "addr", "", "Print the value at this address instead of calling")
	fs.BoolVar(&o.list, "list", false, "List exported functions and exit")
	fs.BoolVar(&o.verbose, "v", false, "Log degraded values and calls to stderr")
	fs.BoolVar(&o.interactive, "i", false, "Interactive mode with TUI")
	fs.UintVar(&o.maxElements, "max-elements", printer.DefaultMaxElements, "Container elements shown before eliding")
	fs.UintVar(&o.maxString, "max-string", printer.DefaultMaxStringLength, "Code units read from unsized strings")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if o.wasmFile == "" {
		return nil, errUsage
	}
	if !o.interactive && !o.list && o.funcName == "" && o.addr == "" {
		return nil, errUsage
	}
	return o, nil
}

var errUsage = errors.New("missing arguments")

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: vprint -wasm <file.wasm> -func name [-args 1,2] [-type expr] [-types types.yaml]")
	fmt.Fprintln(w, "       vprint -wasm <file.wasm> -addr 0x1000 -type expr [-types types.yaml]")
	fmt.Fprintln(w, "       vprint -wasm <file.wasm> -list")
	fmt.Fprintln(w, "       vprint -wasm <file.wasm> -i  (interactive mode)")
}

func main() {
	fs := flag.NewFlagSet("vprint", flag.ExitOnError)
	o, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		usage(os.Stderr)
		os.Exit(1)
	}

	log := zap.NewNop()
	if o.verbose && !o.interactive {
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = log.Sync() }()
	}

	if err := run(context.Background(), o, log, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o *options, log *zap.Logger, stdout *os.File) error {
	data, err := os.ReadFile(o.wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	sess, err := openSession(ctx, sessionConfig{
		wasm:        data,
		typesFile:   o.typesFile,
		logger:      log,
		maxElements: uint32(o.maxElements),
		maxString:   uint32(o.maxString),
	})
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	if o.interactive {
		return runInteractive(ctx, sess, o.wasmFile, o.typeExpr)
	}

	out := detectOutput(stdout)

	if o.list {
		for _, e := range sess.exports() {
			fmt.Fprintln(stdout, out.signature(e.signature()))
		}
		return nil
	}

	var result string
	if o.addr != "" {
		addr, err := strconv.ParseUint(o.addr, 0, 32)
		if err != nil {
			return fmt.Errorf("bad address %q: %w", o.addr, err)
		}
		result, err = sess.inspect(uint32(addr), o.typeExpr)
		if err != nil {
			return err
		}
	} else {
		result, err = sess.eval(ctx, o.funcName, splitArgs(o.args), o.typeExpr)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, out.result(result))
	return nil
}

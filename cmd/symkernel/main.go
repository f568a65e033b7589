// cmd/symkernel/main.go: simplify MathJSON expressions from the command line
//
// Usage:
//
//	symkernel '["Add","x",["Multiply",2,"x"]]'
//	echo '["Sqrt",["Power","x",6]]' | symkernel -infix
//
// Each argument, or each non-empty stdin line when no argument is given, is
// one expression.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	sk "github.com/njchilds90/symkernel"
	"github.com/njchilds90/symkernel/internal/config"
	"github.com/njchilds90/symkernel/internal/logging"
	"github.com/njchilds90/symkernel/mathjson"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "symkernel:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	canonical  bool
	infix      bool
	precision  uint
	verbose    bool
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("symkernel", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "YAML or TOML config file")
	fs.BoolVar(&opts.canonical, "canonical", false, "only canonicalize, do not apply rewrite rules")
	fs.BoolVar(&opts.infix, "infix", false, "print infix notation instead of MathJSON")
	fs.UintVar(&opts.precision, "precision", 0, "significant digits for decimals (overrides config)")
	fs.BoolVar(&opts.verbose, "v", false, "log rule firings to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine, err := newEngine(opts)
	if err != nil {
		return err
	}
	codec := mathjson.New(engine.Numbers())

	eval := func(src string) error {
		x, err := codec.Decode([]byte(src))
		if err != nil {
			return err
		}
		if opts.canonical {
			x = engine.Canonicalize(x)
		} else {
			x = engine.Simplify(x)
		}
		if opts.infix {
			_, err = fmt.Fprintln(stdout, x.String())
			return err
		}
		out, err := codec.Encode(x)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	}

	if fs.NArg() > 0 {
		for _, src := range fs.Args() {
			if err := eval(src); err != nil {
				return err
			}
		}
		return nil
	}
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		src := strings.TrimSpace(sc.Text())
		if src == "" {
			continue
		}
		if err := eval(src); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func newEngine(opts options) (*sk.Engine, error) {
	cfg := config.LoadOrDefault()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.precision > 0 {
		cfg.Engine.Precision = uint32(opts.precision)
	}
	engineCfg, err := cfg.ToEngine()
	if err != nil {
		return nil, err
	}
	var engineOpts []sk.Option
	if opts.verbose {
		engineOpts = append(engineOpts, sk.WithLogger(logging.NewDevelopment().Logger))
	}
	return sk.New(engineCfg, engineOpts...)
}

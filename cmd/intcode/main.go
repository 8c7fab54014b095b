package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eigerco/intcode/internal/config"
	"github.com/eigerco/intcode/internal/intcode"
	"github.com/eigerco/intcode/internal/runner"
	"github.com/eigerco/intcode/internal/store"
	"github.com/eigerco/intcode/pkg/db"
	"github.com/eigerco/intcode/pkg/db/pebble"
	"github.com/eigerco/intcode/pkg/log"
)

const usage = `usage: intcode <command> [flags]

commands:
  run     run a program file or a stored program
  save    store a program file under a name
  list    list stored programs
  delete  remove a stored program

run "intcode <command> -h" for the flags of a command`

// inputList collects repeated -input flags; each one is a separate run
type inputList [][]int64

func (l *inputList) String() string {
	parts := make([]string, len(*l))
	for i, in := range *l {
		parts[i] = intcode.FormatProgram(in)
	}
	return strings.Join(parts, " ")
}

func (l *inputList) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		*l = append(*l, nil)
		return nil
	}
	values, err := intcode.ParseProgram(s)
	if err != nil {
		return fmt.Errorf("input %q: %w", s, err)
	}
	*l = append(*l, values)
	return nil
}

type common struct {
	configPath string
	logLevel   string
	storePath  string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to an intcode.toml configuration file")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level, overrides the configuration")
	fs.StringVar(&c.storePath, "db", "", "Program library directory, overrides the configuration")
}

// setup loads configuration, initialises logging and opens the library
func (c *common) setup() (*config.Config, db.KVStore, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.storePath != "" {
		cfg.Store.Path = c.storePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	opts, err := cfg.LogOptions()
	if err != nil {
		return nil, nil, err
	}
	log.Init(opts)

	var kv db.KVStore
	if cfg.Store.Path == "" {
		kv, err = pebble.NewKVStore()
	} else {
		kv, err = pebble.Open(cfg.Store.Path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open program library: %w", err)
	}
	log.CLI.Debug().Str("path", cfg.Store.Path).Msg("program library opened")
	return cfg, kv, nil
}

func closeStore(kv db.KVStore) {
	if err := kv.Close(); err != nil {
		log.CLI.Error().Err(err).Msg("error closing program library")
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "run":
		err = runCommand(args)
	case "save":
		err = saveCommand(args)
	case "list":
		err = listCommand(args)
	case "delete":
		err = deleteCommand(args)
	case "-h", "-help", "--help", "help":
		fmt.Println(usage)
		return
	default:
		err = fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	if code := exitCode(os.Stderr, err); code != 0 {
		os.Exit(code)
	}
}

// exitCode reports err on w once and maps it to the process exit code
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		// the flag set has already printed its usage
		return 2
	}
	fmt.Fprintf(w, "intcode: %v\n", err)
	return 1
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var c common
	c.register(fs)
	programPath := fs.String("program", "", "Path to a program file")
	name := fs.String("name", "", "Name of a stored program")
	showMemory := fs.Bool("memory", false, "Print the full final memory instead of memory[0]")
	var inputs inputList
	fs.Var(&inputs, "input", "Comma separated input values; repeat for independent runs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*programPath == "") == (*name == "") {
		return errors.New("exactly one of -program or -name is required")
	}

	cfg, kv, err := c.setup()
	if err != nil {
		return err
	}
	defer closeStore(kv)
	library := store.NewLibrary(kv)

	var program []int64
	if *programPath != "" {
		program, err = readProgram(*programPath)
	} else {
		program, err = library.Program(*name)
	}
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		inputs = inputList{nil}
	}

	opts := []runner.Option{
		runner.WithLogger(log.Runner),
		runner.WithEngineLogger(log.Engine),
		runner.WithParallelism(cfg.Runner.Parallelism),
	}
	if cfg.Runner.Cache {
		opts = append(opts, runner.WithLibrary(library))
	}
	results, err := runner.New(opts...).RunAll(context.Background(), program, inputs)
	if err != nil {
		return err
	}

	for i, res := range results {
		if len(results) > 1 {
			fmt.Printf("run %d input=[%s]\n", i, intcode.FormatProgram(inputs[i]))
		}
		fmt.Printf("output: [%s]\n", intcode.FormatProgram(res.Output))
		if *showMemory {
			fmt.Printf("memory: %s\n", intcode.FormatProgram(res.Memory))
		} else {
			fmt.Printf("memory[0]: %d\n", res.Memory[0])
		}
		log.CLI.Info().Int("run", i).Uint64("steps", res.Steps).Msg("program halted")
	}
	return nil
}

func saveCommand(args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	var c common
	c.register(fs)
	programPath := fs.String("program", "", "Path to a program file")
	name := fs.String("name", "", "Name to store the program under")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *programPath == "" || *name == "" {
		return errors.New("-program and -name are required")
	}

	program, err := readProgram(*programPath)
	if err != nil {
		return err
	}

	cfg, kv, err := c.setup()
	if err != nil {
		return err
	}
	defer closeStore(kv)
	if cfg.Store.Path == "" {
		return errors.New("save needs a persistent library; set -db or store.path")
	}

	library := store.NewLibrary(kv)
	if existing, ok, err := library.Lookup(program); err != nil {
		return err
	} else if ok && existing != *name {
		log.CLI.Warn().Str("existing", existing).Msg("identical program already stored")
	}

	hash, err := library.SaveProgram(*name, program)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s (%d words) %s\n", *name, len(program), hash)
	return nil
}

func listCommand(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, kv, err := c.setup()
	if err != nil {
		return err
	}
	defer closeStore(kv)

	names, err := store.NewLibrary(kv).Programs()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func deleteCommand(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	var c common
	c.register(fs)
	name := fs.String("name", "", "Name of the stored program")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("-name is required")
	}

	_, kv, err := c.setup()
	if err != nil {
		return err
	}
	defer closeStore(kv)

	return store.NewLibrary(kv).DeleteProgram(*name)
}

func readProgram(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading program: %w", err)
	}
	program, err := intcode.ParseProgram(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}

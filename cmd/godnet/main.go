package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"github.com/inet-vm/godnet/pkg/compiler"
	"github.com/inet-vm/godnet/pkg/inet"
	"github.com/inet-vm/godnet/pkg/rulelang"
	"github.com/inet-vm/godnet/pkg/semantic"
	"github.com/inet-vm/godnet/pkg/vm"
)

func main() {
	app := cli.NewApp()
	app.Name = "godnet"
	app.Usage = "parse, compile and reduce an interaction-net rewrite program"
	app.ArgsUsage = "[source-file]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "trace",
			Usage: "print the type table and a reduction trace before the normal form",
		},
		cli.IntFlag{
			Name:  "trace-steps",
			Usage: "redex dispatches to record when --trace is set",
			Value: 64,
		},
		cli.BoolFlag{
			Name:  "stats",
			Usage: "print reduction wall-clock time to stderr",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	src, err := readSource(c.Args().First())
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	ast, err := rulelang.Parse(src)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	program, err := semantic.FromAST(ast)
	if err != nil {
		return fmt.Errorf("building program: %w", err)
	}

	machine, types, err := compiler.CompileProgram(program)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	trace := c.Bool("trace")
	if trace {
		machine.EnableTrace(c.Int("trace-steps"))
		printTypeTable(types)
		fmt.Fprintf(os.Stderr, "rules installed: %d\n", len(machine.Rules))
	}

	start := time.Now()
	machine.Reduce()
	elapsed := time.Since(start)

	if trace {
		printReduceTrace(machine.TraceSnapshot(), types)
	}

	printHeap(machine.Net, types)
	if trace || c.Bool("stats") {
		color.New(color.Faint).Fprintf(os.Stderr, "reduced in %v\n", elapsed)
	}
	return nil
}

func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func atypeNames(types *compiler.TypeTable) map[uint64]string {
	names := types.Names()
	byType := make(map[uint64]string, len(names))
	for name, atype := range names {
		byType[atype] = name
	}
	return byType
}

func printTypeTable(types *compiler.TypeTable) {
	color.New(color.Bold).Fprintln(os.Stderr, "type table:")
	names := types.Names()
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Slice(ordered, func(i, j int) bool { return names[ordered[i]] < names[ordered[j]] })
	for _, name := range ordered {
		fmt.Fprintf(os.Stderr, "  %s -> %d\n", name, names[name])
	}
}

func printReduceTrace(events []vm.TraceEvent, types *compiler.TypeTable) {
	byType := atypeNames(types)
	yellow := color.New(color.FgYellow)
	color.New(color.Bold).Fprintln(os.Stderr, "reduction trace:")
	for _, ev := range events {
		left, right := byType[ev.Key.Left], byType[ev.Key.Right]
		status := yellow.Sprint("no rule")
		if ev.Matched {
			status = color.New(color.FgGreen).Sprint("matched")
		}
		fmt.Fprintf(os.Stderr, "  [%d] #%d(%s) ~ #%d(%s): %s\n",
			ev.Step, ev.Redex.A, left, ev.Redex.B, right, status)
	}
}

func printHeap(net *inet.Net, types *compiler.TypeTable) {
	byType := atypeNames(types)

	snapshot := net.Snapshot()
	ids := make([]uint64, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	color.New(color.FgGreen).Printf("normal form: %d agent(s)\n", len(ids))
	for _, id := range ids {
		a := snapshot[id]
		name, ok := byType[a.AType]
		if !ok {
			name = fmt.Sprintf("<%d>", a.AType)
		}
		fmt.Printf("  #%d %s ports=%v\n", a.ID, name, a.Ports)
	}
}

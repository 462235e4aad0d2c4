// Package main provides the entry point for tomasim, a cycle-accurate
// Tomasulo-algorithm-with-ROB simulator.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/tomasim/config"
	"github.com/sarchlab/tomasim/core"
	"github.com/sarchlab/tomasim/insts"
)

var (
	inPath     = flag.String("in", "../input/input1.txt", "Path to the input instruction listing")
	outPath    = flag.String("out", "../output/output1.txt", "Path to write the trace and retirement log")
	configPath = flag.String("config", "", "Path to a machine configuration JSON file")
	verbose    = flag.Bool("v", false, "Print structural stall events to stderr")
)

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	program, err := loadProgram(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	drv := core.New(cfg, program)
	output := drv.Run()

	if err := drv.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Simulation error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		for _, s := range drv.Stalls() {
			fmt.Fprintf(os.Stderr, "cycle %d: stall (%s): %s\n", s.Cycle, s.Structure, s.Reason)
		}
	}

	if err := os.WriteFile(*outPath, []byte(output), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// loadProgram reads and decodes the input assembly listing, one
// instruction per non-blank line.
func loadProgram(path string) ([]insts.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := insts.NewDecoder()
	var program []insts.Instruction

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inst, err := decoder.Decode(line)
		if err != nil {
			return nil, err
		}
		program = append(program, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return program, nil
}

package lts

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Analyzer runs the whole pipeline over an OSM extract: read, build the
// street graph, classify every edge, summarize.
type Analyzer struct {
	filename   string
	workersNum int
	verbose    bool
}

func (analyzer *Analyzer) String() string {
	return fmt.Sprintf(`
Stress analyzer parameters:
	filename: '%s'
	workers_num: %d
	verbose?: %t
	`,
		analyzer.filename,
		analyzer.workersNum,
		analyzer.verbose,
	)
}

func NewAnalyzer(fileName string, options ...func(*Analyzer)) *Analyzer {
	analyzer := &Analyzer{
		filename:   fileName,
		workersNum: 1,
		verbose:    false,
	}
	for _, option := range options {
		option(analyzer)
	}
	return analyzer
}

func WithWorkersNum(workersNum int) func(*Analyzer) {
	return func(analyzer *Analyzer) {
		analyzer.workersNum = workersNum
	}
}

func WithVerbose(verbose bool) func(*Analyzer) {
	return func(analyzer *Analyzer) {
		analyzer.verbose = verbose
	}
}

// Result bundles the classified graph with its summary and every diagnostic
// collected along the way.
type Result struct {
	Graph       *Graph
	Summary     Summary
	Diagnostics []Diagnostic
}

// Run reads the file given to NewAnalyzer and processes it.
func (analyzer *Analyzer) Run() (*Result, error) {
	ways, nodes, err := readOSM(analyzer.filename, analyzer.verbose)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read OSM data")
	}
	return analyzer.RunData(ways, nodes)
}

// RunData processes already extracted ways and nodes. It is the entry point
// for callers which collect OSM records themselves.
func (analyzer *Analyzer) RunData(ways []RawWay, nodes []RawNode) (*Result, error) {
	diag := NewDiagnostics(analyzer.verbose)

	if analyzer.verbose {
		fmt.Printf("\tBuilding street graph... ")
	}
	st := time.Now()
	graph, err := BuildGraph(ways, nodes, diag)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build street graph")
	}
	if analyzer.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if analyzer.verbose {
		fmt.Printf("\tClassifying edges... ")
	}
	st = time.Now()
	ClassifyGraph(graph, analyzer.workersNum, diag)
	if analyzer.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	return &Result{
		Graph:       graph,
		Summary:     Summarize(graph),
		Diagnostics: diag.Entries(),
	}, nil
}

// qprof inspects circuits serialized with quantum.Circuit.ToBytes: it prints
// a gate histogram and can render it as an HTML bar chart.
//
// Usage:
//
//	qprof [-html chart.html] circuit.bin
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/quarclib/quarc/quantum"
)

func main() {
	htmlOut := flag.String("html", "", "write the gate histogram as an HTML bar chart")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qprof [-html chart.html] circuit.bin")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *htmlOut); err != nil {
		fmt.Fprintln(os.Stderr, "qprof:", err)
		os.Exit(1)
	}
}

func run(path, htmlOut string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var c quantum.Circuit
	if err := c.FromBytes(data); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	hist := histogram(c)
	names := make([]string, 0, len(hist))
	for name := range hist {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if hist[names[i]] != hist[names[j]] {
			return hist[names[i]] > hist[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Printf("%s: %d qubits, %d gates\n", path, c.NbQubits, len(c.Gates))
	for _, name := range names {
		fmt.Printf("%8d  %s\n", hist[name], name)
	}

	if htmlOut == "" {
		return nil
	}
	return renderChart(htmlOut, names, hist)
}

// histogram counts gates by kind and control arity, e.g. "x", "ccx", "cphase".
func histogram(c quantum.Circuit) map[string]int {
	hist := make(map[string]int, 8)
	for _, g := range c.Gates {
		name := g.Kind.String()
		for range g.Controls {
			name = "c" + name
		}
		hist[name]++
	}
	return hist
}

func renderChart(path string, names []string, hist map[string]int) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "gate histogram"}),
	)

	values := make([]opts.BarData, len(names))
	for i, name := range names {
		values[i] = opts.BarData{Value: hist[name]}
	}
	bar.SetXAxis(names).AddSeries("gates", values)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}

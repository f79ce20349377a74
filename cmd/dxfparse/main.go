// Command dxfparse parses DXF files and optionally re-emits normalized DXF.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dxfcore/dxfcore/dxf"
)

func main() {
	outputDxf := flag.Bool("dxf", false, "Re-emit normalized DXF")
	outputFile := flag.String("o", "", "Output file (default: stdout)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.dxf>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputFile := flag.Arg(0)

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var progress dxf.ProgressFunc
	if *verbose {
		progress = func(percent int) bool {
			fmt.Fprintf(os.Stderr, "\rparsing... %3d%%", percent)
			if percent == 100 {
				fmt.Fprintln(os.Stderr)
			}
			return true
		}
	}

	d, err := dxf.Parse(context.Background(), string(data), progress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DXF: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		ext := dxf.Extents(d.Entities, d.Blocks)
		fmt.Fprintf(os.Stderr, "DXF File: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "  Entities: %d\n", len(d.Entities))
		fmt.Fprintf(os.Stderr, "  Layers: %d\n", len(d.Layers))
		fmt.Fprintf(os.Stderr, "  Blocks: %d\n", len(d.Blocks))
		fmt.Fprintf(os.Stderr, "  Styles: %d\n", len(d.Styles))
		fmt.Fprintf(os.Stderr, "  Extents: (%g, %g) - (%g, %g)\n", ext.Min.X, ext.Min.Y, ext.Max.X, ext.Max.Y)
	}

	// Auto-enable DXF output if -o flag is specified
	if *outputFile != "" {
		*outputDxf = true
	}

	if *outputDxf {
		dxfStr := dxf.ToString(d)
		if *outputFile != "" {
			if err := os.WriteFile(*outputFile, []byte(dxfStr), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				os.Exit(1)
			}
			if *verbose {
				fmt.Fprintf(os.Stderr, "DXF written to: %s\n", *outputFile)
			}
		} else {
			fmt.Print(dxfStr)
		}
	} else if !*verbose {
		ext := dxf.Extents(d.Entities, d.Blocks)
		fmt.Printf("DXF File: %s\n", inputFile)
		fmt.Printf("  Entities: %d\n", len(d.Entities))
		fmt.Printf("  Layers: %d\n", len(d.Layers))
		fmt.Printf("  Blocks: %d\n", len(d.Blocks))
		fmt.Printf("  Styles: %d\n", len(d.Styles))
		fmt.Printf("  Extents: (%g, %g) - (%g, %g)\n", ext.Min.X, ext.Min.Y, ext.Max.X, ext.Max.Y)
	}
}

// Command dxfstat collects entity statistics from a directory of DXF files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dxfcore/dxfcore/dxf"
)

type FileStats struct {
	Name      string
	Entities  int
	Lines     int
	Arcs      int
	Polylines int
	Texts     int
	Inserts   int
	Layers    int
	Blocks    int
	Unknown   []string
	Error     string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <dir>\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	dir := flag.Arg(0)
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".dxf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	sort.Strings(files)

	// Process files in parallel
	allStats := make([]FileStats, len(files))
	var wg sync.WaitGroup

	for i, file := range files {
		wg.Add(1)
		go func(idx int, filePath string) {
			defer wg.Done()
			allStats[idx] = parseFile(filePath)
		}(i, file)
	}

	wg.Wait()

	var rows [][]string
	for _, s := range allStats {
		errStr := ""
		if s.Error != "" {
			errStr = "❌ " + s.Error
		}
		rows = append(rows, []string{
			"`" + filepath.Base(s.Name) + "`",
			fmt.Sprintf("%d", s.Entities),
			fmt.Sprintf("%d", s.Lines),
			fmt.Sprintf("%d", s.Arcs),
			fmt.Sprintf("%d", s.Polylines),
			fmt.Sprintf("%d", s.Texts),
			fmt.Sprintf("%d", s.Inserts),
			fmt.Sprintf("%d", s.Layers),
			fmt.Sprintf("%d", s.Blocks),
			errStr,
		})
	}

	fmt.Println("## DXF File Matrix")
	fmt.Println()
	printTable([]string{"File", "Entities", "Line", "Arc", "Polyline", "Text", "Insert", "Layers", "Blocks", "Error"}, rows)

	unknownMap := make(map[string]int)
	for _, s := range allStats {
		for _, u := range s.Unknown {
			unknownMap[u]++
		}
	}

	if len(unknownMap) > 0 {
		fmt.Println()
		fmt.Println("## Unknown/Unclassified Entities")
		fmt.Println()
		fmt.Println("| Entity Type | Occurrences |")
		fmt.Println("|-------------|-------------|")
		for k, v := range unknownMap {
			fmt.Printf("| `%s` | %d |\n", k, v)
		}
	}

	fmt.Println()
	fmt.Println("## Summary")
	fmt.Println()
	totalFiles := len(allStats)
	successFiles := 0
	errorFiles := 0
	totalEntities := 0
	for _, s := range allStats {
		if s.Error == "" {
			successFiles++
			totalEntities += s.Entities
		} else {
			errorFiles++
		}
	}
	fmt.Printf("- Total files: %d\n", totalFiles)
	fmt.Printf("- Successfully parsed: %d\n", successFiles)
	fmt.Printf("- Parse errors: %d\n", errorFiles)
	fmt.Printf("- Total entities: %d\n", totalEntities)
}

func parseFile(path string) FileStats {
	stats := FileStats{Name: path}

	data, err := os.ReadFile(path)
	if err != nil {
		stats.Error = err.Error()
		return stats
	}

	d, err := dxf.Parse(context.Background(), string(data), nil)
	if err != nil {
		stats.Error = err.Error()
		return stats
	}

	stats.Entities = len(d.Entities)
	stats.Layers = len(d.Layers)
	stats.Blocks = len(d.Blocks)

	for _, e := range d.Entities {
		switch e.Kind() {
		case "LINE", "RAY", "XLINE":
			stats.Lines++
		case "ARC", "CIRCLE", "ELLIPSE":
			stats.Arcs++
		case "LWPOLYLINE", "POLYLINE", "SPLINE":
			stats.Polylines++
		case "TEXT", "MTEXT", "ATTRIB", "ATTDEF":
			stats.Texts++
		case "INSERT":
			stats.Inserts++
		case "POINT", "SOLID", "3DFACE", "HATCH", "DIMENSION", "LEADER":
			// counted in the Entities column only
		default:
			stats.Unknown = append(stats.Unknown, e.Kind())
		}
	}

	return stats
}

// printTable prints a markdown table with aligned columns.
func printTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Print("|")
	for i, h := range headers {
		fmt.Printf(" %-*s |", widths[i], h)
	}
	fmt.Println()

	fmt.Print("|")
	for _, w := range widths {
		fmt.Print(strings.Repeat("-", w+2) + "|")
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Print("|")
		for i, cell := range row {
			if i < len(widths) {
				fmt.Printf(" %-*s |", widths[i], cell)
			}
		}
		fmt.Println()
	}
}

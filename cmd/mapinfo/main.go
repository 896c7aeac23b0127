// Command mapinfo decodes a map file and prints its terrain breakdown.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexfront/internal/mapfile"
	"github.com/talgya/hexfront/internal/world"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: mapinfo <file.Civ5Map>\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("read failed", "path", path, "error", err)
		os.Exit(1)
	}

	m, err := mapfile.Decode(data)
	if err != nil {
		slog.Error("decode failed", "path", path, "error", err)
		os.Exit(1)
	}

	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("%s - %s\n", path, name)
	fmt.Printf("size: %dx%d (%s cells, %s on disk)\n",
		m.Width, m.Height,
		humanize.Comma(int64(m.CellCount())),
		humanize.Bytes(uint64(len(data))),
	)

	counts := m.TerrainCounts()
	terrains := make([]world.Terrain, 0, len(counts))
	for t := range counts {
		terrains = append(terrains, t)
	}
	sort.Slice(terrains, func(i, j int) bool { return counts[terrains[i]] > counts[terrains[j]] })
	for _, t := range terrains {
		share := float64(counts[t]) / float64(m.CellCount()) * 100
		fmt.Printf("  %-10s %6s  %5.1f%%\n", t, humanize.Comma(int64(counts[t])), share)
	}

	if start, ok := m.FirstPassable(); ok {
		fmt.Printf("first passable cell: (%d,%d)\n", start.Col, start.Row)
	} else {
		fmt.Println("no passable cells")
	}
}

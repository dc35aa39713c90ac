package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/swegeo/swesearch/internal/search"
	"github.com/swegeo/swesearch/internal/transform"
	"github.com/swegeo/swesearch/pkg/sweref"
)

// cliMap is a fixed host map built from the flags.
type cliMap struct {
	lon    float64
	hasLon bool
	srid   int
}

func (m *cliMap) CenterLongitude() (float64, bool) {
	return m.lon, m.hasLon
}

func (m *cliMap) SRID() int {
	return m.srid
}

func main() {
	format := flag.String("format", "json", "output format (json|yaml)")
	pref := flag.String("pref", "auto", "projection preference (auto|tm|zone)")
	lon := flag.Float64("lon", 0, "map center longitude for zone ranking")
	srid := flag.Int("srid", transform.SRIDWgs84, "target srid")
	debug := flag.Bool("debug", false, "debug logging")

	flag.Parse()

	text := strings.Join(flag.Args(), " ")

	if text == "" {
		fmt.Println("usage: swesearch [flags] <coordinate text>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	host := &cliMap{srid: *srid}

	if isFlagSet("lon") {
		host.lon = *lon
		host.hasLon = true
	}

	searcher := search.New(host, transform.New(transform.NewSwerefModule(), transform.DefaultLoadTimeout))
	searcher.SetPreference(sweref.Preference(*pref))

	exit := 0

	searcher.Search(context.Background(), text,
		func(r *search.Result) { dump(*format, r) },
		func(key string) {
			fmt.Fprintln(os.Stderr, key)
			exit = 1
		})

	os.Exit(exit)
}

func isFlagSet(name string) bool {
	found := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})

	return found
}

func dump(format string, r *search.Result) {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			panic(err)
		}

		enc.Close()
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(r); err != nil {
			panic(err)
		}
	}
}

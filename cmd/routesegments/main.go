package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/geotrace/routesegments/discovery"
	"github.com/geotrace/routesegments/export"
	"github.com/geotrace/routesegments/pathfind"
	"github.com/geotrace/routesegments/refselect"
	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

func main() {
	var (
		tracksPath = flag.String("tracks", "tracks.json", "path to a JSON file of [][]store.TrackPointInput")
		refIdx     = flag.Int("ref", 0, "1-based reference track position; 0 picks automatically")
		gridSizeM  = flag.Float64("grid-size-m", 25, "hotspot grid cell size in meters, for automatic reference selection")
		minReps    = flag.Int("min-reps", 3, "minimum distinct tracks visiting a cell for it to count as a hotspot")
		maxLengthM = flag.Float64("max-length-m", 500, "target minimum candidate segment length in meters")
		tolM       = flag.Float64("tol-m", 5, "discrete Fréchet acceptance tolerance in meters")
		windowStep = flag.Int("window-step", 1, "stride between candidate window starts on the reference track")
		minRuns    = flag.Int("min-runs", 2, "minimum supporting tracks for a segment to be reported")
		pathFrom   = flag.Int("path-from", 0, "1-based segment index to start a path from; 0 disables pathfinding")
		pathTo     = flag.Int("path-to", 0, "1-based segment index to reach")
		pathTolM   = flag.Float64("path-tol-m", 15, "endpoint connection tolerance in meters, for pathfinding")
		format     = flag.String("format", "summary", "output format: summary, json, or csv")
		outPath    = flag.String("out", "", "output file path; empty writes to stdout")
		pretty     = flag.Bool("pretty-log", true, "use a human-readable console log instead of leveled JSON")
	)
	flag.Parse()

	obs := telemetry.NewZerologObserver(*pretty)

	tracks, err := loadTracks(*tracksPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading tracks: %v\n", err)
		os.Exit(1)
	}

	s, err := store.BuildStore(tracks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("loaded %d tracks, %d points\n", s.NumTracks(), s.NumPoints())

	refRideIdx := *refIdx
	if refRideIdx == 0 {
		start := time.Now()
		refRideIdx, err = refselect.FindBestRefRide(s, *gridSizeM, *minReps, obs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error selecting reference track: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("selected reference track %d in %v\n", refRideIdx, time.Since(start))
	}

	params := discovery.NewParams().
		WithMaxLengthM(*maxLengthM).
		WithTolM(*tolM).
		WithWindowStep(*windowStep).
		WithMinRuns(*minRuns)

	start := time.Now()
	segments, closeTracks, err := discovery.FindOverlappingSegments(s, refRideIdx, params, obs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running discovery: %v\n", err)
		os.Exit(1)
	}
	duration := time.Since(start)
	fmt.Printf("found %d segments over %d close tracks in %v\n", len(segments), len(closeTracks), duration)

	var path []pathfind.PathSegment
	if *pathFrom != 0 && *pathTo != 0 {
		pathParams := pathfind.Params{}.WithToleranceM(*pathTolM).WithMinLength(1).WithMinRuns(*minRuns)
		path, err = pathfind.FindPathBetweenSegments(segments, s, *pathFrom, *pathTo, pathParams)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error pathfinding: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("found a path of %d segments from %d to %d\n", len(path), *pathFrom, *pathTo)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "summary":
		printSummary(segments, closeTracks, path)
	case "json":
		if path != nil {
			err = export.PathJSON(out, path)
		} else {
			err = export.SegmentsJSON(out, segments)
		}
	case "csv":
		err = export.SegmentsCSV(out, segments)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}
}

// loadTracks decodes a JSON file holding an ordered list of tracks,
// each an ordered list of store.TrackPointInput.
func loadTracks(path string) ([][]store.TrackPointInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tracks [][]store.TrackPointInput
	if err := json.NewDecoder(f).Decode(&tracks); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return tracks, nil
}

func printSummary(segments []discovery.Segment, closeTracks []int, path []pathfind.PathSegment) {
	fmt.Printf("\nclose tracks: %v\n", closeTracks)
	fmt.Printf("segments:\n")
	for i, seg := range segments {
		fmt.Printf("  [%d] ref_range=%v length_m=%.1f runs=%d\n", i+1, seg.RefRange, seg.CandidateLengthM, len(seg.RunRanges))
	}
	if len(path) > 0 {
		fmt.Printf("\npath:\n")
		for _, ps := range path {
			fmt.Printf("  segment %d (%s)\n", ps.Index, ps.Orientation)
		}
	}
}

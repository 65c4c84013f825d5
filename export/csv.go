package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/geotrace/routesegments/discovery"
)

// SegmentsCSV writes one row per run across every segment, mirroring
// writeCSV's shape (header row, then one row per entity) from
// repository/gtfs_repository.go, generalized from reflection-driven
// struct fields to this package's fixed column set. Runs within a
// segment are written in ascending track_position order so the output
// is stable across runs over the same input, not dependent on Go's
// randomized map iteration order.
func SegmentsCSV(w io.Writer, segments []discovery.Segment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"segment_index", "candidate_length_m", "track_position", "run_first_index", "run_last_index", "run_point_count"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for segIdx, seg := range segments {
		trackPositions := make([]int, 0, len(seg.RunRanges))
		for trackPos := range seg.RunRanges {
			trackPositions = append(trackPositions, trackPos)
		}
		sort.Ints(trackPositions)

		for _, trackPos := range trackPositions {
			indices := seg.RunRanges[trackPos]
			if len(indices) == 0 {
				continue
			}
			row := []string{
				strconv.Itoa(segIdx + 1),
				strconv.FormatFloat(seg.CandidateLengthM, 'f', 3, 64),
				strconv.Itoa(trackPos),
				strconv.FormatUint(uint64(indices[0]), 10),
				strconv.FormatUint(uint64(indices[len(indices)-1]), 10),
				strconv.Itoa(len(indices)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	return cw.Error()
}

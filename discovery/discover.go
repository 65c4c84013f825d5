// Package discovery implements the repeated route segment discovery
// engine: a two-stage pipeline, parallel counting followed by
// sequential dedup and detail assembly. Follows
// producer/route_producer.go's multi-phase pipeline style (enumerate,
// filter, assemble) and loader/streaming_loader.go's bounded-worker
// fan-out, here replaced with golang.org/x/sync/errgroup.
package discovery

import (
	"fmt"

	"github.com/geotrace/routesegments/routeerr"
	"github.com/geotrace/routesegments/store"
	"github.com/geotrace/routesegments/telemetry"
)

// FindOverlappingSegments runs the discovery engine over the reference
// track at 1-based position refRideIdx. Returns the discovered segments
// (order not part of the contract) and the 1-based positions of the
// tracks selected as "close" to the reference.
func FindOverlappingSegments(s *store.Store, refRideIdx int, params Params, obs telemetry.Observer) ([]Segment, []int, error) {
	obs = telemetry.OrNoop(obs)
	params = params.normalize()

	if err := validateParams(params); err != nil {
		return nil, nil, err
	}
	if _, ok := s.Track(refRideIdx); !ok {
		return nil, nil, routeerr.New(routeerr.InvalidInput, fmt.Sprintf("ref_ride_idx %d out of range", refRideIdx))
	}

	prep := prepare(s, refRideIdx, params, obs)

	if len(prep.closeTracks) == 0 {
		obs.OnWarn("no close tracks found", map[string]any{"ref_ride_idx": refRideIdx})
		return nil, nil, nil
	}
	if len(prep.candidates) == 0 {
		obs.OnWarn("reference track has no window reaching max_length_m", map[string]any{
			"ref_ride_idx": refRideIdx,
			"max_length_m": params.MaxLengthM,
		})
		return nil, prep.closeTracks, nil
	}

	obs.OnStageStart("stage1_counting")
	results := runStage1(s, prep, params, obs)

	promoted := promote(results, params)
	if len(promoted) == 0 {
		return nil, prep.closeTracks, nil
	}

	obs.OnStageStart("stage2_details")
	segments := runStage2(s, prep, promoted, params, refRideIdx)

	return segments, prep.closeTracks, nil
}

func validateParams(p Params) error {
	switch {
	case p.WindowStep <= 0:
		return routeerr.New(routeerr.InvalidInput, "window_step must be positive")
	case p.DedupOverlapFrac < 0 || p.DedupOverlapFrac > 1:
		return routeerr.New(routeerr.InvalidInput, "dedup_overlap_frac must be in [0,1]")
	case p.MaxLengthM <= 0:
		return routeerr.New(routeerr.InvalidInput, "max_length_m must be positive")
	case p.TolM < 0:
		return routeerr.New(routeerr.InvalidInput, "tol_m must be non-negative")
	default:
		return nil
	}
}

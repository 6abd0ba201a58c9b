package detect

import (
	"fmt"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/geoloc"
)

// Join merges per-face azimuths and distances into geocoded
// detections, walking a Destination out from origin for every pair
// that has both a bearing and a real distance. An azimuth with no
// matching distance record, or a null distance, is silently dropped;
// that is the normal fate of boxes the depth estimator had nothing
// for. Output keeps the azimuth file's faces (empty ones included)
// and each face keeps its azimuth list's order.
func Join(origin geoloc.Position, az map[cubemap.Face][]AzimuthRecord, dist map[cubemap.Face][]DistanceRecord) (map[cubemap.Face][]GeocodedDetection, error) {
	out := map[cubemap.Face][]GeocodedDetection{}
	for _, f := range cubemap.AllFaces() {
		azList, ok := az[f]
		if !ok {
			continue
		}

		// First record wins if an index somehow repeats.
		distByIndex := map[int]DistanceRecord{}
		for _, d := range dist[f] {
			if _, seen := distByIndex[d.BBoxIndex]; !seen {
				distByIndex[d.BBoxIndex] = d
			}
		}

		geo := []GeocodedDetection{}
		for _, a := range azList {
			d, ok := distByIndex[a.BBoxIndex]
			if !ok || d.DistanceM == nil {
				continue
			}

			pos, err := geoloc.Destination(origin, a.AzimuthDeg, *d.DistanceM)
			if err != nil {
				return nil, fmt.Errorf("destination %s box %d: %v", f, a.BBoxIndex, err)
			}
			geo = append(geo, GeocodedDetection{
				BBoxIndex:  a.BBoxIndex,
				ClassID:    a.ClassID,
				Score:      d.Score,
				AzimuthDeg: a.AzimuthDeg,
				DistanceM:  *d.DistanceM,
				Latitude:   pos.Latitude,
				Longitude:  pos.Longitude,
			})
		}
		out[f] = geo
	}
	return out, nil
}

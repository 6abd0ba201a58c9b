package detect

import (
	"fmt"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
)

// ComputeAzimuths resolves every detection's centroid to a compass
// bearing against the cube size the faces were rasterized at. Faces
// present in the input stay present in the output even when empty;
// downstream consumers iterate the azimuth file's faces.
func ComputeAzimuths(dets map[cubemap.Face][]Detection, cubeSize int) (map[cubemap.Face][]AzimuthRecord, error) {
	out := map[cubemap.Face][]AzimuthRecord{}
	for _, f := range cubemap.AllFaces() {
		faceDets, ok := dets[f]
		if !ok {
			continue
		}

		recs := make([]AzimuthRecord, 0, len(faceDets))
		for _, d := range faceDets {
			az, err := cubemap.Azimuth(f, d.Box, cubeSize)
			if err != nil {
				return nil, fmt.Errorf("azimuth %s box %d: %v", f, d.BBoxIndex, err)
			}
			rec := AzimuthRecord{BBoxIndex: d.BBoxIndex, AzimuthDeg: az}
			if d.ClassID >= 0 {
				id := d.ClassID
				rec.ClassID = &id
			}
			recs = append(recs, rec)
		}
		out[f] = recs
	}
	return out, nil
}

// Package detect carries detector output through the geometric
// pipeline: bounding boxes on cube faces in, compass bearings and
// GPS positions out. The object detector and the depth estimator are
// separate programs; this package speaks their JSON file formats and
// joins their outputs by (face, bbox_index).
package detect

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
)

// A Detection is one detector hit on one cube face. BBoxIndex is the
// hit's position in its face's detection list; it is the join key
// every downstream file shares, so it survives unchanged all the way
// to the geocoded output.
type Detection struct {
	BBoxIndex int
	Box       cubemap.Box
	ClassID   int     // -1 when the detector reported no class
	Score     float64 // 0 when the detector reported no score
}

// AzimuthRecord gives the compass bearing of one detection's
// centroid. ClassID stays a pointer so a detection with no reported
// class serializes as null instead of masquerading as class 0.
type AzimuthRecord struct {
	BBoxIndex  int     `json:"bbox_index"`
	ClassID    *int    `json:"class_id"`
	AzimuthDeg float64 `json:"azimuth_deg"`
}

// A DistanceRecord is one entry of the depth estimator's output.
// DistanceM is null when the estimator had no depth samples inside
// the box.
type DistanceRecord struct {
	BBoxIndex int      `json:"bbox_index"`
	ClassID   *int     `json:"class_id"`
	Score     *float64 `json:"score"`
	DistanceM *float64 `json:"distance_m"`
}

// UnmarshalJSON also accepts the "distance" key written by the older
// relative-depth estimator.
func (d *DistanceRecord)UnmarshalJSON(data []byte) error {
	var raw struct {
		BBoxIndex int      `json:"bbox_index"`
		ClassID   *int     `json:"class_id"`
		Score     *float64 `json:"score"`
		DistanceM *float64 `json:"distance_m"`
		Distance  *float64 `json:"distance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = DistanceRecord{BBoxIndex: raw.BBoxIndex, ClassID: raw.ClassID, Score: raw.Score, DistanceM: raw.DistanceM}
	if d.DistanceM == nil {
		d.DistanceM = raw.Distance
	}
	return nil
}

// A GeocodedDetection is the final joined record for one object:
// its bearing from the camera, its distance, and the GPS position
// those work out to.
type GeocodedDetection struct {
	BBoxIndex  int      `json:"bbox_index"`
	ClassID    *int     `json:"class_id"`
	Score      *float64 `json:"score"`
	AzimuthDeg float64  `json:"azimuth_deg"`
	DistanceM  float64  `json:"distance_m"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
}

// rawBox tolerates both detector generations: a bare [x1,y1,x2,y2]
// array, or an object carrying coordinates plus its own score and
// class.
type rawBox struct {
	Box   cubemap.Box
	Score *float64
	Class *int
}

func (r *rawBox)UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err == nil {
		return r.setCoords(coords)
	}

	var obj struct {
		Coordinates []float64 `json:"coordinates"`
		Score       *float64  `json:"score"`
		Class       *int      `json:"class"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("box is neither a coordinate array nor a box object: %v", err)
	}
	r.Score, r.Class = obj.Score, obj.Class
	return r.setCoords(obj.Coordinates)
}

func (r *rawBox)setCoords(c []float64) error {
	if len(c) != 4 {
		return fmt.Errorf("box has %d coordinates, want 4", len(c))
	}
	r.Box = cubemap.Box{X1: c[0], Y1: c[1], X2: c[2], Y2: c[3]}
	return nil
}

type faceWire struct {
	Boxes   []rawBox  `json:"boxes"`
	Scores  []float64 `json:"scores"`
	Classes []int     `json:"classes"`
}

// ParseDetections reads a detections.json body. Face keys may be
// names or indices, and per-box score/class may ride inside each box
// object or in positionally aligned arrays. A face whose arrays are
// shorter than its box list keeps its boxes, with class -1 and score
// 0 filling the gaps, so bbox_index stays aligned with the box list.
func ParseDetections(data []byte) (map[cubemap.Face][]Detection, error) {
	var wire map[cubemap.Face]faceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("detections parse: %v", err)
	}

	out := map[cubemap.Face][]Detection{}
	for f, fw := range wire {
		if n := len(fw.Boxes); (len(fw.Scores) > 0 && len(fw.Scores) < n) || (len(fw.Classes) > 0 && len(fw.Classes) < n) {
			log.Printf("detections %s: %d boxes but %d scores / %d classes, padding the gaps\n",
				f, n, len(fw.Scores), len(fw.Classes))
		}
		dets := make([]Detection, 0, len(fw.Boxes))
		for idx, rb := range fw.Boxes {
			d := Detection{BBoxIndex: idx, Box: rb.Box, ClassID: -1}
			switch {
			case rb.Class != nil:
				d.ClassID = *rb.Class
			case idx < len(fw.Classes):
				d.ClassID = fw.Classes[idx]
			}
			switch {
			case rb.Score != nil:
				d.Score = *rb.Score
			case idx < len(fw.Scores):
				d.Score = fw.Scores[idx]
			}
			dets = append(dets, d)
		}
		out[f] = dets
	}
	return out, nil
}

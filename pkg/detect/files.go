package detect

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
)

func ReadDetections(filename string) (map[cubemap.Face][]Detection, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("detections read %s: %v", filename, err)
	}
	dets, err := ParseDetections(data)
	if err != nil {
		return nil, fmt.Errorf("detections parse %s: %v", filename, err)
	}
	return dets, nil
}

func ReadAzimuths(filename string) (map[cubemap.Face][]AzimuthRecord, error) {
	az := map[cubemap.Face][]AzimuthRecord{}
	if err := readJSON(filename, &az); err != nil {
		return nil, err
	}
	return az, nil
}

func ReadDistances(filename string) (map[cubemap.Face][]DistanceRecord, error) {
	dist := map[cubemap.Face][]DistanceRecord{}
	if err := readJSON(filename, &dist); err != nil {
		return nil, err
	}
	return dist, nil
}

func WriteAzimuths(filename string, az map[cubemap.Face][]AzimuthRecord) error {
	return writeJSON(filename, az)
}

func WriteCoords(filename string, coords map[cubemap.Face][]GeocodedDetection) error {
	return writeJSON(filename, coords)
}

func readJSON(filename string, v interface{}) error {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read %s: %v", filename, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %v", filename, err)
	}
	return nil
}

func writeJSON(filename string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %v", filename, err)
	}
	if err := ioutil.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write %s: %v", filename, err)
	}
	return nil
}

package publish

import(
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"

	"github.com/overdonebirch/scripts-yolo-madrid/pkg/cubemap"
	"github.com/overdonebirch/scripts-yolo-madrid/pkg/detect"
)

// Publisher wraps a kafka producer. Produce is async; delivery
// reports come back on deliveryChan and a goroutine counts them up.
type Publisher struct {
	producer     *kafka.Producer
	cfg          Config
	deliveryChan chan kafka.Event

	sent, acked, failed atomic.Int64

	wg sync.WaitGroup
}

func NewPublisher(cfg Config) (*Publisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
		"acks":              cfg.Acks,
		"compression.type":  cfg.CompressionType,
		"linger.ms":         cfg.LingerMS,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %v", err)
	}

	pub := &Publisher{
		producer:     p,
		cfg:          cfg,
		deliveryChan: make(chan kafka.Event, 1000),
	}

	pub.wg.Add(1)
	go pub.handleDeliveryReports()

	log.Printf("kafka publisher up: topic %s on %s\n", cfg.Topic, cfg.BootstrapServers)
	return pub, nil
}

func (pub *Publisher)handleDeliveryReports() {
	defer pub.wg.Done()

	for e := range pub.deliveryChan {
		m, ok := e.(*kafka.Message)
		if !ok {
			continue
		}
		if m.TopicPartition.Error != nil {
			pub.failed.Add(1)
			log.Printf("kafka delivery failed: %v\n", m.TopicPartition.Error)
		} else {
			pub.acked.Add(1)
		}
	}
}

// One detection, one message. Nullable fields stay null on the wire,
// same as coords.json.
type message struct {
	DetectionID string   `json:"detection_id"`
	Image       string   `json:"image"`
	Face        string   `json:"face"`
	BBoxIndex   int      `json:"bbox_index"`
	ClassID     *int     `json:"class_id"`
	Score       *float64 `json:"score"`
	AzimuthDeg  float64  `json:"azimuth_deg"`
	DistanceM   float64  `json:"distance_m"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	PublishedAt string   `json:"published_at"`
}

func newMessage(imageName string, f cubemap.Face, d detect.GeocodedDetection) message {
	return message{
		DetectionID: uuid.New().String(),
		Image:       imageName,
		Face:        f.Name(),
		BBoxIndex:   d.BBoxIndex,
		ClassID:     d.ClassID,
		Score:       d.Score,
		AzimuthDeg:  d.AzimuthDeg,
		DistanceM:   d.DistanceM,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Publish queues one geocoded detection. Keyed by detection id, so
// messages spread across partitions.
func (pub *Publisher)Publish(imageName string, f cubemap.Face, d detect.GeocodedDetection) error {
	msg := newMessage(imageName, f, d)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s box %d: %v", f, d.BBoxIndex, err)
	}

	headers := []kafka.Header{
		{Key: "image", Value: []byte(imageName)},
		{Key: "face", Value: []byte(f.Name())},
	}
	if d.ClassID != nil {
		headers = append(headers, kafka.Header{Key: "class", Value: []byte(strconv.Itoa(*d.ClassID))})
	}

	err = pub.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &pub.cfg.Topic, Partition: kafka.PartitionAny},
		Key:            []byte(msg.DetectionID),
		Value:          payload,
		Headers:        headers,
	}, pub.deliveryChan)
	if err != nil {
		return fmt.Errorf("produce %s box %d: %v", f, d.BBoxIndex, err)
	}

	pub.sent.Add(1)
	return nil
}

// Close flushes what it can, then reports the final counts. Call it
// once, after the last Publish.
func (pub *Publisher)Close() {
	if remaining := pub.producer.Flush(15 * 1000); remaining > 0 {
		log.Printf("kafka flush timed out, %d messages still queued\n", remaining)
	}
	pub.producer.Close()
	close(pub.deliveryChan)
	pub.wg.Wait()

	log.Printf("kafka publisher done: %d sent, %d acked, %d failed\n",
		pub.sent.Load(), pub.acked.Load(), pub.failed.Load())
}

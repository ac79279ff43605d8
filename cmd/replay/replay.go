package main

// Replays a recorded session document over MQTT at a fixed frame rate, as a
// stand-in for a live capture loop feeding the real-time tracker.

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/motionlab/baduanjin/pkg/pose"
)

func main() {
	parser := argparse.NewParser("replay", "Replay a recorded keypoint session over MQTT")
	input := parser.String("i", "input", &argparse.Options{Help: "Input session document (JSON)", Required: true})
	broker := parser.String("b", "broker", &argparse.Options{Help: "MQTT broker URL", Required: false, Default: "tcp://localhost:1883"})
	topic := parser.String("t", "topic", &argparse.Options{Help: "MQTT topic for keypoint frames", Required: false, Default: "baduanjin/keypoints"})
	fps := parser.Int("f", "fps", &argparse.Options{Help: "Playback frame rate", Required: false, Default: 15})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	raw, err := os.ReadFile(*input)
	if err != nil {
		logger.Errorf("Failed to read %v: %v", *input, err)
		os.Exit(1)
	}
	doc, err := pose.ParseDocument(raw)
	if err != nil {
		logger.Errorf("Invalid session document: %v", err)
		os.Exit(1)
	}
	frames, skipped := doc.Frames()
	if skipped > 0 {
		logger.Warnf("Skipping %v malformed frames", skipped)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID("baduanjin-replay")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Errorf("MQTT connect failed: %v", token.Error())
		os.Exit(1)
	}
	defer client.Disconnect(250)
	logger.Infof("Replaying %v frames to %v at %v fps", len(frames), *topic, *fps)

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	for i := range frames {
		<-ticker.C
		det := pose.Detection{
			Keypoints:   make([][]float32, pose.NumKeypoints),
			Confidences: make([]float32, pose.NumKeypoints),
		}
		for k := 0; k < pose.NumKeypoints; k++ {
			kp := frames[i].Pose[k]
			det.Keypoints[k] = []float32{kp.X, kp.Y}
			det.Confidences[k] = kp.Score
		}
		payload, err := json.Marshal([]pose.Detection{det})
		if err != nil {
			logger.Errorf("Marshal failed for frame %v: %v", frames[i].ID, err)
			continue
		}
		client.Publish(*topic, 0, false, payload).Wait()
	}
	logger.Infof("Replay finished")
}

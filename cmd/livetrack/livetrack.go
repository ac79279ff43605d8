package main

// Live tracking loop: consumes keypoint frames from MQTT (one message per
// captured frame), feeds them through the real-time tracker, and broadcasts
// each feedback object to connected websocket clients.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/motionlab/baduanjin/pkg/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// feedbackHub fans each feedback object out to the connected websocket
// clients.
type feedbackHub struct {
	log     logs.Log
	lock    sync.Mutex
	clients map[*websocket.Conn]bool
}

func newFeedbackHub(log logs.Log) *feedbackHub {
	return &feedbackHub{
		log:     log,
		clients: map[*websocket.Conn]bool{},
	}
}

func (h *feedbackHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	h.lock.Lock()
	h.clients[conn] = true
	h.lock.Unlock()
	h.log.Infof("Feedback client connected from %v", r.RemoteAddr)
}

func (h *feedbackHub) broadcast(fb *realtime.Feedback) {
	payload, err := json.Marshal(fb)
	if err != nil {
		h.log.Errorf("Feedback marshal failed: %v", err)
		return
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func main() {
	parser := argparse.NewParser("livetrack", "Track a live Baduanjin exercise from an MQTT keypoint stream")
	broker := parser.String("b", "broker", &argparse.Options{Help: "MQTT broker URL", Required: false, Default: "tcp://localhost:1883"})
	topic := parser.String("t", "topic", &argparse.Options{Help: "MQTT topic carrying keypoint frames", Required: false, Default: "baduanjin/keypoints"})
	exercise := parser.Int("e", "exercise", &argparse.Options{Help: "Exercise id (1-8)", Required: true})
	addr := parser.String("l", "listen", &argparse.Options{Help: "Websocket listen address for feedback", Required: false, Default: ":8793"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	tracker := realtime.NewTracker(realtime.DefaultConfig(), logger)
	start := tracker.StartExercise(*exercise)
	if !start.Success {
		logger.Errorf("%v", start.Error)
		os.Exit(1)
	}
	logger.Infof("Tracking '%v' (phases: %v)", start.Name, start.Phases)

	hub := newFeedbackHub(logger)
	http.HandleFunc("/ws/feedback", hub.handleWS)
	go func() {
		if err := http.ListenAndServe(*addr, nil); err != nil {
			logger.Errorf("Websocket server failed: %v", err)
		}
	}()

	// The tracker is not thread safe, and MQTT delivers messages from its own
	// goroutine, so all tracker calls are serialized through this mutex.
	var trackerLock sync.Mutex

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID("baduanjin-livetrack")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Errorf("MQTT connect failed: %v", token.Error())
		os.Exit(1)
	}
	token := client.Subscribe(*topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var detections []pose.Detection
		if err := json.Unmarshal(msg.Payload(), &detections); err != nil {
			logger.Warnf("Bad keypoint payload: %v", err)
			return
		}
		trackerLock.Lock()
		fb := tracker.ProcessRealTimePose(detections)
		trackerLock.Unlock()
		if fb != nil {
			hub.broadcast(fb)
		}
	})
	token.Wait()
	if token.Error() != nil {
		logger.Errorf("MQTT subscribe failed: %v", token.Error())
		os.Exit(1)
	}
	logger.Infof("Subscribed to %v, feedback on ws://%v/ws/feedback", *topic, *addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	trackerLock.Lock()
	end := tracker.EndExercise()
	export := tracker.ExportSessionData()
	trackerLock.Unlock()
	if end.Success {
		logger.Infof("Exercise ended: average form %.1f (completed=%v)", end.Summary.AverageFormScore, end.Summary.Completed)
	}
	out, _ := json.MarshalIndent(export.Statistics, "", "  ")
	fmt.Println(string(out))

	client.Disconnect(250)
}

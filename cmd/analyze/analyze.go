package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/motionlab/baduanjin/pkg/analysis"
	"github.com/motionlab/baduanjin/pkg/pose"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// Report is the full offline metric set for one recorded session.
type Report struct {
	Frames      int                        `json:"frames"`
	Skipped     int                        `json:"skippedFrames"`
	JointAngles *analysis.JointAngleSeries `json:"jointAngles,omitempty"`
	KeyPoses    []analysis.KeyPose         `json:"keyPoses"`
	Smoothness  map[string]float64         `json:"smoothness"`
	Symmetry    map[string]float64         `json:"symmetry"`
	Balance     *analysis.BalanceMetrics   `json:"balance"`
}

func main() {
	parser := argparse.NewParser("analyze", "Compute movement-quality metrics for a recorded keypoint session")
	input := parser.String("i", "input", &argparse.Options{Help: "Input session document (JSON)", Required: true})
	output := parser.File("o", "output", os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0664, &argparse.Options{Help: "Output report file", Required: true})
	poses := parser.Int("k", "keyposes", &argparse.Options{Help: "Maximum number of key poses", Required: false, Default: 8})
	withAngles := parser.Flag("a", "angles", &argparse.Options{Help: "Include the full joint-angle table in the report", Required: false})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	raw, err := os.ReadFile(*input)
	check(err)
	doc, err := pose.ParseDocument(raw)
	check(err)

	cfg := analysis.DefaultConfig()
	cfg.KeyPoseCount = *poses

	analyzer, err := analysis.NewAnalyzer(doc, cfg, logger)
	check(err)

	report := Report{
		Frames:     analyzer.NumFrames(),
		Skipped:    analyzer.SkippedFrames(),
		KeyPoses:   analyzer.KeyPoses(),
		Smoothness: analyzer.Smoothness(),
		Symmetry:   analyzer.Symmetry(),
		Balance:    analyzer.Balance(),
	}
	if *withAngles {
		report.JointAngles = analyzer.JointAngles()
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(report)
	check(err)
}

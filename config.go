package main

import "time"

// Window, timing, and overlay constants for the interactive viewer.
const (
	defaultWidth, defaultHeight = 1024, 640
	windowScale                 = 1.0
	windowTitle                 = "Subwoofer Array Interference"
	defaultTPS                  = 60.0

	panSpeed          = 6.0  // pixels per tick for keyboard panning
	frequencyStep     = 1.0  // Hz per tick while held
	delayStep         = 0.05 // ms per tick while held
	statsLogInterval  = 5 * time.Second
	snapshotDefaultTo = "subarray.png"

	// Overlay layout in screen pixels.
	bottomRulerInset = 20
	leftRulerX       = 30
	majorTickLen     = 8
	minorTickLen     = 3
	scopeWidth       = 120
	scopeHeight      = 60
	scopeOffsetX     = -140
	scopeOffsetY     = -30
	scopeGain        = 15
	debugCharWidth   = 6
	debugLineHeight  = 16

	// Overlay geometry in metres.
	glyphRadius       = 0.2
	glyphStroke       = 0.04
	arrowHalfWidth    = 0.1
	arrowLength       = 0.25
	delayLabelRise    = 0.6
	probeRadius       = 0.8
	probeCross        = 0.6
	probeStroke       = 0.05
	stageDepth        = 10.0
	defaultStageWidth = 8.0
	stageStep         = 0.1
	marginStep        = 0.1
	stageLabelOffset  = 0.8

	audioSampleRate          = 48000
	audioPlayerBufferLatency = 60 * time.Millisecond
	toneLevel                = 0.25
	toneSmoothing            = 0.002
)

package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/MauroCasarin/SONIDO/internal/logging"
	"github.com/MauroCasarin/SONIDO/internal/tone"
)

// startAudio plays what a listener standing on the probe would hear. A tone
// WAV that fails to load falls back to a sine at the array frequency.
func (g *Game) startAudio() {
	var loop []float32
	if g.opts.toneWAV != "" {
		samples, err := loadLoopSamples(audioSampleRate, g.opts.toneWAV)
		if err != nil {
			g.log.Warn(g.ctx, "tone loop unavailable, using sine", logging.Err(err))
		} else {
			loop = samples
		}
	}
	ctx := audio.NewContext(audioSampleRate)
	stream := tone.NewStream(audioSampleRate, toneLevel, toneSmoothing, loop)
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		g.log.Error(g.ctx, "audio player creation failed", logging.Err(err))
		return
	}
	player.SetBufferSize(audioPlayerBufferLatency)
	player.Play()
	g.audioCtx, g.audioStream, g.audioPlayer = ctx, stream, player
	g.log.Info(g.ctx, "probe audio enabled",
		logging.Bool("loop", loop != nil),
		logging.Int("sample_rate", audioSampleRate))
}

package heatmap

import "math"

// Band edges in dB, loudest first.
const (
	bandYellow  = 0.0
	bandOrange  = -3.0
	bandRed     = -6.0
	bandDarkRed = -12.0
	bandBlue    = -24.0
	bandSilent  = -60.0

	opaqueAlpha = 230
)

// FillColor writes the RGBA colour for a dB level into px[0:4]. The mapping is
// a pure piecewise-linear ramp: white/yellow above 0 dB, through orange, red,
// dark red and blue, fading to transparent black at -60 dB.
func FillColor(db float64, px []byte) {
	_ = px[3]
	var r, g, b, a float64 = 0, 0, 0, opaqueAlpha
	switch {
	case db > bandYellow:
		r, g, b = 255, 255, math.Min(255, math.Floor(db*40))
	case db > bandOrange:
		r, g = 255, math.Floor(160+((db-bandOrange)/3)*95)
	case db > bandRed:
		r, g = 255, math.Floor(((db-bandRed)/3)*160)
	case db > bandDarkRed:
		r = math.Floor(100 + ((db-bandDarkRed)/6)*155)
	case db > bandBlue:
		t := (db - bandBlue) / 12
		r, b = math.Floor(t*100), math.Floor((1-t)*200)
	case db > bandSilent:
		t := (db - bandSilent) / 36
		b, a = math.Floor(t*200), math.Floor(t*opaqueAlpha)
	default:
		a = 0
	}
	px[0] = byte(r)
	px[1] = byte(g)
	px[2] = byte(b)
	px[3] = byte(a)
}

// Color returns the mapped colour as a 4-byte array.
func Color(db float64) [4]byte {
	var px [4]byte
	FillColor(db, px[:])
	return px
}

package acoustic

// Focus returns c with per-source delays chosen so that every real source's
// wavefront reaches the probe at the same time. The farthest source gets no
// delay. In dual mode a slot drives both lanes, so the lane closest to the
// probe decides that slot's delay. Polarity is left as configured.
func Focus(c Config, probe Point) Config {
	sources := GenerateSources(c)
	var near [MaxSources]float64
	seen := [MaxSources]bool{}
	far := 0.0
	for _, s := range sources {
		d := probe.Dist(s.Pos)
		if !seen[s.Index] || d < near[s.Index] {
			near[s.Index] = d
			seen[s.Index] = true
		}
	}
	for i := 0; i < c.Count; i++ {
		if near[i] > far {
			far = near[i]
		}
	}
	for i := 0; i < c.Count; i++ {
		c = c.SetDelay(i, (far-near[i])/SpeedOfSound*1000)
	}
	c.Optimized = true
	return c
}

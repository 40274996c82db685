package heatmap

// rowBand is the set of rows one worker shades. Rows are dealt round robin so
// that expensive regions near the sources spread across workers.
type rowBand struct {
	rows []int
}

// assignRows distributes height rows across workerCount bands.
func assignRows(workerCount, height int) []rowBand {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > height {
		workerCount = height
	}
	bands := make([]rowBand, workerCount)
	per := (height + workerCount - 1) / max(workerCount, 1)
	for i := range bands {
		bands[i].rows = make([]int, 0, per)
	}
	for y := 0; y < height; y++ {
		b := &bands[y%workerCount]
		b.rows = append(b.rows, y)
	}
	return bands
}

package workflow

// Bands maps the mean of the extracted samples to the next endpoint to call.
// The thresholds split the number line into three monotone bands:
// mean < Low, Low <= mean < High, and mean >= High.
type Bands struct {
	Low  float64
	High float64
	// Endpoint targets, one per band.
	EndpointLow  string
	EndpointMid  string
	EndpointHigh string
}

// Selector decides the next endpoint of a run, or that the run is over.
type Selector struct {
	bands    Bands
	maxDepth int
}

// NewSelector creates a Selector bounded at maxDepth hops.
func NewSelector(bands Bands, maxDepth int) *Selector {
	return &Selector{bands: bands, maxDepth: maxDepth}
}

// Next returns the endpoint for the given samples and depth. The second return
// is false when the run must terminate: the depth bound has been reached or
// there are no samples to decide from. Band boundaries are inclusive on the
// upper band, so a mean of exactly Low selects the middle endpoint.
func (s *Selector) Next(samples []float64, depth int) (string, bool) {
	if depth >= s.maxDepth || len(samples) == 0 {
		return "", false
	}
	avg := mean(samples)
	switch {
	case avg < s.bands.Low:
		return s.bands.EndpointLow, true
	case avg < s.bands.High:
		return s.bands.EndpointMid, true
	default:
		return s.bands.EndpointHigh, true
	}
}

func mean(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

package gestures

import "time"

// velocityHorizon is how far back samples contribute to the estimate.
const velocityHorizon = 100 * time.Millisecond

// maxVelocitySamples bounds the sample window.
const maxVelocitySamples = 20

type velocitySample struct {
	position float64
	at       time.Time
}

// VelocityTracker estimates release velocity from recent pointer samples.
//
// Hosts that already compute a release velocity can skip this and fill
// DragEndDetails directly; hosts that only see positions feed each one to
// AddSample and read Velocity on release. The estimate is a least-squares
// fit over the last [velocityHorizon] of samples, which smooths out the
// jitter a last-two-samples quotient would amplify.
type VelocityTracker struct {
	samples []velocitySample
}

// AddSample records a pointer position at the given time.
func (v *VelocityTracker) AddSample(position float64, at time.Time) {
	v.samples = append(v.samples, velocitySample{position: position, at: at})
	if len(v.samples) > maxVelocitySamples {
		v.samples = v.samples[len(v.samples)-maxVelocitySamples:]
	}
}

// Reset discards all recorded samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

// Velocity returns the estimated velocity in logical pixels per second at
// the time of the most recent sample. With fewer than two usable samples
// it returns 0.
func (v *VelocityTracker) Velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	newest := v.samples[len(v.samples)-1].at

	// Least-squares fit of position over time for samples inside the
	// horizon, with t measured backward from the newest sample.
	var n, sumT, sumX, sumTT, sumTX float64
	for _, s := range v.samples {
		age := newest.Sub(s.at)
		if age > velocityHorizon {
			continue
		}
		t := -age.Seconds()
		n++
		sumT += t
		sumX += s.position
		sumTT += t * t
		sumTX += t * s.position
	}
	if n < 2 {
		return 0
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	return (n*sumTX - sumT*sumX) / denom
}

package flight

import "math"

// WingAngle returns the wing rotation in radians at elapsed seconds for a butterfly
// with the given phase and speed multiplier. The result always stays within
// ±min(FlapAmplitude, MaxFlapAmplitude).
func WingAngle(elapsed, phase, speed float64, p *Params) float64 {
	amplitude := math.Min(math.Max(p.FlapAmplitude, 0), MaxFlapAmplitude)
	angle := math.Sin(elapsed*p.FlapRate*speed+phase) * amplitude
	if math.IsNaN(angle) {
		return 0
	}
	return angle
}

// Flap sets both wings to the current flap angle. It runs every frame whatever the state.
func (b *Butterfly) Flap(elapsed float64, p *Params) {
	angle := WingAngle(elapsed, b.FlapPhase, b.FlapSpeed, p)
	b.LeftWing = angle
	b.RightWing = angle
}

package period

// Test exports for internal state.

func (d *Detector) WeightForTest() float64 { return d.weight }

func (d *Detector) MidPointForTest() int { return d.midPoint }

func (d *Detector) MismatchForTest(lag int) int { return d.corr.Mismatch(lag) }

func (d *Detector) LocalSearchForTest(period int) (int, int) {
	return d.localSearch(period, d.corr.Mismatch(period))
}

package bot

// MovingAverage tracks the mean of the last N samples, used to watch
// planner cost per tick without keeping full history.
type MovingAverage struct {
	window  int
	samples []float64
	next    int
	filled  bool
	sum     float64
}

// NewMovingAverage averages over a window of the given size.
func NewMovingAverage(window int) *MovingAverage {
	if window < 1 {
		window = 1
	}
	return &MovingAverage{window: window, samples: make([]float64, window)}
}

// Add records one sample, evicting the oldest when the window is full.
func (m *MovingAverage) Add(v float64) {
	m.sum += v - m.samples[m.next]
	m.samples[m.next] = v
	m.next++
	if m.next == m.window {
		m.next = 0
		m.filled = true
	}
}

// Value returns the current average, zero before any sample.
func (m *MovingAverage) Value() float64 {
	n := m.Count()
	if n == 0 {
		return 0
	}
	return m.sum / float64(n)
}

// Count returns how many samples the window currently holds.
func (m *MovingAverage) Count() int {
	if m.filled {
		return m.window
	}
	return m.next
}

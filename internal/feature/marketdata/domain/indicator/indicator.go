// Package indicator implements the technical indicator calculations applied
// to a close-price series. All functions are pure: they return new slices the
// same length as the input, with math.NaN() marking rows inside an
// indicator's warm-up window.
package indicator

import "math"

// Standard parameter set used across the dashboard.
const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	BollingerWindow  = 20
	BollingerStdDevs = 2.0
)

// SMA computes the simple moving average over the given window.
// The first window-1 values are NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA computes the exponential moving average over the given window, seeded
// with the simple average of the first window values. The first window-1
// values are NaN.
func EMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var seed float64
	for i := 0; i < window; i++ {
		seed += values[i]
	}
	seed /= float64(window)
	out[window-1] = seed

	alpha := 2.0 / float64(window+1)
	prev := seed
	for i := window; i < len(values); i++ {
		prev = (values[i]-prev)*alpha + prev
		out[i] = prev
	}
	return out
}

// RSI computes the Wilder-smoothed Relative Strength Index. A period of N
// consumes N price changes, so the first N values are NaN.
func RSI(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	// Initial averages over the first `period` changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	// Wilder smoothing for the remaining rows.
	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// MACD computes the Moving Average Convergence Divergence line
// (EMA fast - EMA slow), its signal line (EMA of the MACD line) and the
// histogram (MACD - signal), using the standard 12/26/9 parameters.
func MACD(values []float64) (macd, signal, hist []float64) {
	n := len(values)
	macd, signal, hist = nanSlice(n), nanSlice(n), nanSlice(n)

	fast := EMA(values, MACDFastPeriod)
	slow := EMA(values, MACDSlowPeriod)
	defined := make([]float64, 0, n)
	offset := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			continue
		}
		macd[i] = fast[i] - slow[i]
		if offset < 0 {
			offset = i
		}
		defined = append(defined, macd[i])
	}
	if offset < 0 {
		return macd, signal, hist
	}

	sig := EMA(defined, MACDSignalPeriod)
	for i, v := range sig {
		if math.IsNaN(v) {
			continue
		}
		signal[offset+i] = v
		hist[offset+i] = macd[offset+i] - v
	}
	return macd, signal, hist
}

// Bollinger computes the 20-period Bollinger bands: the middle band is the
// simple moving average, the upper and lower bands sit two population
// standard deviations away.
func Bollinger(values []float64) (upper, middle, lower []float64) {
	n := len(values)
	upper, lower = nanSlice(n), nanSlice(n)
	middle = SMA(values, BollingerWindow)
	if n < BollingerWindow {
		return upper, middle, lower
	}
	for i := BollingerWindow - 1; i < n; i++ {
		mean := middle[i]
		var variance float64
		for j := i - BollingerWindow + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(BollingerWindow))
		upper[i] = mean + BollingerStdDevs*std
		lower[i] = mean - BollingerStdDevs*std
	}
	return upper, middle, lower
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

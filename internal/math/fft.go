package math

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the amplitude spectrum of the real series up to the nyquist frequency,
// sorted by decreasing amplitude.
func FFT(xx []float64) *Spectrum {
	cc := fft.FFTReal(xx)

	ss := newSpectrum(len(cc) / 2)
	for i, n := range cc {
		if i > len(cc)/2 {
			continue
		}
		ss.add(RNum{
			Amplitude: cmplx.Abs(n),
			Frequency: i,
		})
	}

	sort.Sort(sort.Reverse(spectrums(ss.Values)))

	return ss
}

// Spectrum is a collection of spectra
type Spectrum struct {
	Values    []RNum
	Amplitude float64
	// Nyquist is the highest frequency index of the spectrum.
	Nyquist int
}

func newSpectrum(nyquist int) *Spectrum {
	return &Spectrum{
		Values:  make([]RNum, 0),
		Nyquist: nyquist,
	}
}

func (s *Spectrum) add(r RNum) {
	s.Values = append(s.Values, r)
	s.Amplitude += r.Amplitude
}

// Mean returns the average amplitude.
func (s *Spectrum) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Amplitude / float64(len(s.Values))
}

// Dominant returns the non-constant component with the largest amplitude.
func (s *Spectrum) Dominant() (RNum, bool) {
	for _, v := range s.Values {
		if v.Frequency > 0 {
			return v, true
		}
	}
	return RNum{}, false
}

// HighFrequency returns the share of the non-constant amplitude
// carried by the upper half of the spectrum.
func (s *Spectrum) HighFrequency() float64 {
	var high, total float64
	for _, v := range s.Values {
		if v.Frequency == 0 {
			continue
		}
		total += v.Amplitude
		if 2*v.Frequency > s.Nyquist {
			high += v.Amplitude
		}
	}
	if total == 0 {
		return 0
	}
	return high / total
}

// RNum defines the attributes of a spectral component
type RNum struct {
	Amplitude float64
	Frequency int
}

type spectrums []RNum

func (s spectrums) Len() int           { return len(s) }
func (s spectrums) Less(i, j int) bool { return s[i].Amplitude < s[j].Amplitude }
func (s spectrums) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

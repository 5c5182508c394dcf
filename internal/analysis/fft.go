package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"
)

var ErrShortSignal = errors.New("analysis: signal too short")

// Spectrum is a one-sided power spectrum.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Peak returns the frequency of the strongest bin above DC.
func (s *Spectrum) Peak() float64 {
	best := 1
	for i := 2; i < len(s.Power); i++ {
		if s.Power[i] > s.Power[best] {
			best = i
		}
	}
	if best >= len(s.Freqs) {
		return 0
	}
	return s.Freqs[best]
}

// PowerSpectrum applies a Hann window and returns |X(k)|²/N for bins 0..N/2.
func PowerSpectrum(data []float64, sampleRate float64) (*Spectrum, error) {
	n := len(data)
	if n < 4 {
		return nil, ErrShortSignal
	}

	buf := make([]float64, n)
	copy(buf, data)
	window.Apply(buf, window.Hann)

	coeffs := fft.FFTReal(buf)
	bins := n/2 + 1
	s := &Spectrum{
		Freqs: make([]float64, bins),
		Power: make([]float64, bins),
	}
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(coeffs[k])
		s.Freqs[k] = float64(k) * sampleRate / float64(n)
		s.Power[k] = mag * mag / float64(n)
	}
	return s, nil
}

// WelchSpectrum averages Hann-windowed segments of nfft samples with 50%
// overlap.
func WelchSpectrum(data []float64, sampleRate float64, nfft int) (*Spectrum, error) {
	if nfft < 4 {
		nfft = 4096
	}
	if len(data) < nfft {
		return nil, ErrShortSignal
	}

	pxx, freqs := spectral.Pwelch(data, sampleRate, &spectral.PwelchOptions{
		NFFT:     nfft,
		Noverlap: nfft / 2,
		Window:   window.Hann,
	})
	return &Spectrum{Freqs: freqs, Power: pxx}, nil
}

// DominantFrequency is the peak of the Welch spectrum.
func DominantFrequency(data []float64, sampleRate float64, nfft int) (float64, error) {
	s, err := WelchSpectrum(data, sampleRate, nfft)
	if err != nil {
		return 0, err
	}
	return s.Peak(), nil
}

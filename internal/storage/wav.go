package storage

import (
	"encoding/binary"
	"math"

	"github.com/san-kum/attractors/internal/engine"
)

// WAVGain maps modular volts to full scale: ±10 V becomes ±1.
const WAVGain = 0.1

// EncodeWAVFloat32LE builds a WAVE_FORMAT_IEEE_FLOAT file from interleaved
// samples.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}

func interleave(result *engine.Result) []float32 {
	out := make([]float32, 0, len(result.Frames)*len(result.Outputs))
	for _, frame := range result.Frames {
		for _, v := range frame {
			out = append(out, float32(v*WAVGain))
		}
	}
	return out
}

package service

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Canned sample records, one per production service, standing in for one
// measurement from a single attached device. Integer and float fields
// are little-endian, matching the native packing the real service uses;
// only the frame length prefix is network byte order.

// PreviewSample is one preview-format record: a uint32 frame counter
// followed by 14 float32 channels (orientation, acceleration, etc.).
func PreviewSample() []byte {
	return packRecord(1, floatSeq(10, 14), nil)
}

// SensorSample is one sensor-format record: a uint32 frame counter
// followed by 9 float32 channels.
func SensorSample() []byte {
	return packRecord(1, floatSeq(10, 9), nil)
}

// RawSample is one raw-format record: a uint32 frame counter followed by
// 9 int16 channels.
func RawSample() []byte {
	return packRecord(1, nil, int16Seq(10, 9))
}

// ConfigurableSample is one configurable-format record: frame counter,
// channel count, then 8 float32 channels.
func ConfigurableSample() []byte {
	var buf bytes.Buffer
	writeUint32(&buf, 1)
	writeUint32(&buf, 8)
	for _, f := range floatSeq(10, 8) {
		writeFloat32(&buf, f)
	}
	return buf.Bytes()
}

// ConsoleSample is the fixed 6-byte console service record.
func ConsoleSample() []byte {
	return []byte("\x00true\n")
}

func packRecord(counter uint32, floats []float32, shorts []int16) []byte {
	var buf bytes.Buffer
	writeUint32(&buf, counter)
	for _, f := range floats {
		writeFloat32(&buf, f)
	}
	for _, s := range shorts {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(s))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeFloat32(buf *bytes.Buffer, v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	buf.Write(b[:])
}

// floatSeq returns count float32 values starting at first and counting
// up by one, the ramp the mock service streams as fake channel data.
func floatSeq(first float32, count int) []float32 {
	out := make([]float32, count)
	for i := range out {
		out[i] = first + float32(i)
	}
	return out
}

func int16Seq(first int16, count int) []int16 {
	out := make([]int16, count)
	for i := range out {
		out[i] = first + int16(i)
	}
	return out
}

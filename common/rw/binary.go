// Package rw is a little-endian binary reader/writer used by the navmesh
// snapshot format.
package rw

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

type ReaderWriter struct {
	order   binary.ByteOrder
	dataBuf []byte
	rw      bytes.Buffer
	err     error
}

func NewWriter() *ReaderWriter {
	return &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
}

func NewReader(data []byte) *ReaderWriter {
	r := &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
	r.rw.Write(data)
	return r
}

// Err reports the first short-read encountered, if any.
func (w *ReaderWriter) Err() error {
	return w.err
}

func (w *ReaderWriter) Bytes() []byte {
	return w.rw.Bytes()
}

func (w *ReaderWriter) read(n int) []byte {
	if w.err != nil {
		return w.dataBuf[:n]
	}
	got, err := w.rw.Read(w.dataBuf[:n])
	if err != nil || got != n {
		w.err = fmt.Errorf("truncated data: want %d bytes", n)
		for i := 0; i < n; i++ {
			w.dataBuf[i] = 0
		}
	}
	return w.dataBuf[:n]
}

func (w *ReaderWriter) WriteUint8(v uint8) {
	w.rw.WriteByte(v)
}

func (w *ReaderWriter) ReadUint8() uint8 {
	return w.read(1)[0]
}

func (w *ReaderWriter) WriteUint32(v uint32) {
	w.order.PutUint32(w.dataBuf[:4], v)
	w.rw.Write(w.dataBuf[:4])
}

func (w *ReaderWriter) ReadUint32() uint32 {
	return w.order.Uint32(w.read(4))
}

func (w *ReaderWriter) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *ReaderWriter) ReadInt32() int32 {
	return int32(w.ReadUint32())
}

func (w *ReaderWriter) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *ReaderWriter) ReadFloat32() float32 {
	return math.Float32frombits(w.ReadUint32())
}

func (w *ReaderWriter) WriteFloat32s(vs []float32) {
	for _, v := range vs {
		w.WriteFloat32(v)
	}
}

func (w *ReaderWriter) ReadFloat32s(vs []float32) {
	for i := range vs {
		vs[i] = w.ReadFloat32()
	}
}

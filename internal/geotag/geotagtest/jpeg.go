package geotagtest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

const markerAPP1 = 0xE1

var exifHeader = []byte("Exif\x00\x00")

// JPEG encodes a small baseline JPEG whose APP1 segment carries
// TIFF(gps...). With no entries the segment is present but has no GPS
// pointer.
func JPEG(gps ...Entry) []byte {
	plain := PlainJPEG()

	payload := append(append([]byte{}, exifHeader...), TIFF(gps...)...)
	segment := []byte{0xFF, markerAPP1}
	segment = binary.BigEndian.AppendUint16(segment, uint16(2+len(payload)))
	segment = append(segment, payload...)

	// APP1 goes right after SOI.
	out := make([]byte, 0, len(plain)+len(segment))
	out = append(out, plain[:2]...)
	out = append(out, segment...)
	return append(out, plain[2:]...)
}

// PlainJPEG encodes a small JPEG with no metadata segments.
func PlainJPEG() []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, sample(), nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PlainPNG encodes a small PNG with no metadata chunks.
func PlainPNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, sample()); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

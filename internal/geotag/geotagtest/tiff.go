// Package geotagtest builds minimal little-endian TIFF files carrying a GPS
// IFD, and JPEG files wrapping them, for tests of code that reads geotags.
package geotagtest

import (
	"bytes"
	"encoding/binary"
	"sort"
)

const (
	typeASCII    = 2
	typeShort    = 3
	typeLong     = 4
	typeRational = 5

	tagImageWidth = 0x0100
	tagGPSInfo    = 0x8825
)

// Entry is one tag of the GPS IFD. Exactly one of ASCII, Rationals and
// Shorts should be set.
type Entry struct {
	ID        uint16
	ASCII     string
	Rationals [][2]uint32
	Shorts    []uint16
}

type rawTag struct {
	id    uint16
	typ   uint16
	count uint32
	data  []byte
}

func (e Entry) raw() rawTag {
	le := binary.LittleEndian
	switch {
	case e.Rationals != nil:
		data := make([]byte, 0, 8*len(e.Rationals))
		for _, r := range e.Rationals {
			data = le.AppendUint32(data, r[0])
			data = le.AppendUint32(data, r[1])
		}
		return rawTag{id: e.ID, typ: typeRational, count: uint32(len(e.Rationals)), data: data}
	case e.Shorts != nil:
		data := make([]byte, 0, 2*len(e.Shorts))
		for _, s := range e.Shorts {
			data = le.AppendUint16(data, s)
		}
		return rawTag{id: e.ID, typ: typeShort, count: uint32(len(e.Shorts)), data: data}
	default:
		data := append([]byte(e.ASCII), 0)
		return rawTag{id: e.ID, typ: typeASCII, count: uint32(len(data)), data: data}
	}
}

// DMS returns a three-component rational value with denominators of 1, 1 and 100.
func DMS(degrees, minutes uint32, secondsHundredths uint32) [][2]uint32 {
	return [][2]uint32{{degrees, 1}, {minutes, 1}, {secondsHundredths, 100}}
}

// Coordinates returns the four entries that make up a complete geotag.
func Coordinates(latRef string, lat [][2]uint32, lonRef string, lon [][2]uint32) []Entry {
	return []Entry{
		{ID: 0x01, ASCII: latRef},
		{ID: 0x02, Rationals: lat},
		{ID: 0x03, ASCII: lonRef},
		{ID: 0x04, Rationals: lon},
	}
}

// Without drops the entry with the given id.
func Without(entries []Entry, id uint16) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// TIFF encodes a TIFF file whose IFD0 points at a GPS IFD holding gps.
// With no entries IFD0 carries no GPS pointer at all.
func TIFF(gps ...Entry) []byte {
	le := binary.LittleEndian

	ifd0 := []rawTag{{id: tagImageWidth, typ: typeShort, count: 1, data: le.AppendUint16(nil, 1)}}
	ifd0Size := uint32(2 + 12*(len(ifd0)+1) + 4)
	gpsOffset := 8 + ifd0Size
	if len(gps) > 0 {
		ifd0 = append(ifd0, rawTag{id: tagGPSInfo, typ: typeLong, count: 1, data: le.AppendUint32(nil, gpsOffset)})
	} else {
		ifd0Size -= 12
	}

	var buf bytes.Buffer
	buf.WriteString("II")
	buf.Write(le.AppendUint16(nil, 42))
	buf.Write(le.AppendUint32(nil, 8))
	writeIFD(&buf, ifd0, 8+ifd0Size)

	if len(gps) == 0 {
		return buf.Bytes()
	}

	tags := make([]rawTag, len(gps))
	for i, e := range gps {
		tags[i] = e.raw()
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].id < tags[j].id })
	writeIFD(&buf, tags, gpsOffset+uint32(2+12*len(tags)+4))
	return buf.Bytes()
}

// DanglingGPS encodes the header and IFD0 of TIFF(gps...) and nothing after
// them, so the GPS pointer refers past the end of the file. gps must not be
// empty.
func DanglingGPS(gps ...Entry) []byte {
	// header, entry count, ImageWidth and GPS pointer, next-IFD offset
	const ifd0End = 8 + 2 + 12*2 + 4
	return TIFF(gps...)[:ifd0End]
}

// writeIFD appends an IFD followed by its out-of-line values, which start at dataAt.
func writeIFD(buf *bytes.Buffer, tags []rawTag, dataAt uint32) {
	le := binary.LittleEndian
	var data []byte

	buf.Write(le.AppendUint16(nil, uint16(len(tags))))
	for _, t := range tags {
		buf.Write(le.AppendUint16(nil, t.id))
		buf.Write(le.AppendUint16(nil, t.typ))
		buf.Write(le.AppendUint32(nil, t.count))
		if len(t.data) <= 4 {
			inline := make([]byte, 4)
			copy(inline, t.data)
			buf.Write(inline)
			continue
		}
		buf.Write(le.AppendUint32(nil, dataAt+uint32(len(data))))
		data = append(data, t.data...)
		if len(data)%2 == 1 {
			data = append(data, 0)
		}
	}
	buf.Write(le.AppendUint32(nil, 0))
	buf.Write(data)
}

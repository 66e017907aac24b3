package geotag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Value is a decoded GPS tag: Text for ASCII and undefined tags, Numbers for
// everything else.
type Value struct {
	Text    string
	Numbers []Number
}

// Block is a GPS IFD keyed by field.
type Block map[Field]Value

// ReadBlock locates the GPS IFD referenced from the top-level directories of
// x and decodes it. It returns ErrNoGPS when no directory carries the pointer.
func ReadBlock(x *exif.Exif) (Block, error) {
	if x == nil || x.Tiff == nil {
		return nil, ErrNoMetadata
	}

	offset, found, err := gpsOffset(x.Tiff)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoGPS
	}

	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to GPS IFD at %d: %w", offset, err)
	}
	dir, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil, fmt.Errorf("decode GPS IFD: %w", err)
	}

	block := make(Block, len(dir.Tags))
	for _, tag := range dir.Tags {
		field, ok := lookupField(tag.Id)
		if !ok {
			continue
		}
		v, err := decodeValue(tag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		block[field] = v
	}
	return block, nil
}

// gpsOffset scans every top-level tag for the GPS info pointer.
func gpsOffset(t *tiff.Tiff) (int64, bool, error) {
	for _, dir := range t.Dirs {
		for _, tag := range dir.Tags {
			if tag.Id != GPSInfoPointer {
				continue
			}
			offset, err := tag.Int64(0)
			if err != nil {
				return 0, true, fmt.Errorf("GPS IFD pointer: %w", err)
			}
			return offset, true, nil
		}
	}
	return 0, false, nil
}

func decodeValue(tag *tiff.Tag) (Value, error) {
	n := int(tag.Count)
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return Value{}, err
		}
		return Value{Text: s}, nil
	case tiff.RatVal:
		nums := make([]Number, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return Value{}, err
			}
			nums = append(nums, Rational{Num: num, Den: den})
		}
		return Value{Numbers: nums}, nil
	case tiff.IntVal:
		nums := make([]Number, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return Value{}, err
			}
			nums = append(nums, Scalar(v))
		}
		return Value{Numbers: nums}, nil
	case tiff.FloatVal:
		nums := make([]Number, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				return Value{}, err
			}
			nums = append(nums, Scalar(v))
		}
		return Value{Numbers: nums}, nil
	default:
		return Value{Text: string(tag.Val)}, nil
	}
}

// Missing lists the required fields absent from b.
func (b Block) Missing() []Field {
	var missing []Field
	for _, f := range requiredFields {
		if _, ok := b[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Coordinates converts the latitude and longitude fields to signed decimal degrees.
func (b Block) Coordinates() (Coordinates, error) {
	if missing := b.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.String()
		}
		return Coordinates{}, fmt.Errorf("%w: missing %s", ErrIncompleteGPS, strings.Join(names, ", "))
	}

	lat, err := b.signed(GPSLatitude, GPSLatitudeRef)
	if err != nil {
		return Coordinates{}, err
	}
	lon, err := b.signed(GPSLongitude, GPSLongitudeRef)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

func (b Block) signed(value, ref Field) (float64, error) {
	dms, err := NewDMS(b[value].Numbers)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", value, err)
	}
	magnitude, err := dms.Decimal()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", value, err)
	}
	return ParseHemisphere(b[ref].Text).Sign() * magnitude, nil
}

// Altitude returns the altitude in meters when the block carries one.
// A GPSAltitudeRef of 1 means below sea level.
func (b Block) Altitude() (float64, bool) {
	v, ok := b[GPSAltitude]
	if !ok || len(v.Numbers) == 0 {
		return 0, false
	}
	alt, err := v.Numbers[0].Float64()
	if err != nil {
		return 0, false
	}
	if ref, ok := b[GPSAltitudeRef]; ok && len(ref.Numbers) > 0 {
		if r, err := ref.Numbers[0].Float64(); err == nil && r == 1 {
			alt = -alt
		}
	}
	return alt, true
}

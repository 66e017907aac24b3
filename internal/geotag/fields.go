package geotag

import "fmt"

// GPSInfoPointer is the top-level tag whose value is the offset of the GPS IFD.
const GPSInfoPointer uint16 = 0x8825

// Field identifies a tag inside the GPS IFD.
type Field uint16

const (
	GPSVersionID         Field = 0x00
	GPSLatitudeRef       Field = 0x01
	GPSLatitude          Field = 0x02
	GPSLongitudeRef      Field = 0x03
	GPSLongitude         Field = 0x04
	GPSAltitudeRef       Field = 0x05
	GPSAltitude          Field = 0x06
	GPSTimeStamp         Field = 0x07
	GPSSatellites        Field = 0x08
	GPSStatus            Field = 0x09
	GPSMeasureMode       Field = 0x0A
	GPSDOP               Field = 0x0B
	GPSSpeedRef          Field = 0x0C
	GPSSpeed             Field = 0x0D
	GPSTrackRef          Field = 0x0E
	GPSTrack             Field = 0x0F
	GPSImgDirectionRef   Field = 0x10
	GPSImgDirection      Field = 0x11
	GPSMapDatum          Field = 0x12
	GPSDestLatitudeRef   Field = 0x13
	GPSDestLatitude      Field = 0x14
	GPSDestLongitudeRef  Field = 0x15
	GPSDestLongitude     Field = 0x16
	GPSDestBearingRef    Field = 0x17
	GPSDestBearing       Field = 0x18
	GPSDestDistanceRef   Field = 0x19
	GPSDestDistance      Field = 0x1A
	GPSProcessingMethod  Field = 0x1B
	GPSAreaInformation   Field = 0x1C
	GPSDateStamp         Field = 0x1D
	GPSDifferential      Field = 0x1E
	GPSHPositioningError Field = 0x1F
)

var fieldNames = [...]string{
	GPSVersionID:         "GPSVersionID",
	GPSLatitudeRef:       "GPSLatitudeRef",
	GPSLatitude:          "GPSLatitude",
	GPSLongitudeRef:      "GPSLongitudeRef",
	GPSLongitude:         "GPSLongitude",
	GPSAltitudeRef:       "GPSAltitudeRef",
	GPSAltitude:          "GPSAltitude",
	GPSTimeStamp:         "GPSTimeStamp",
	GPSSatellites:        "GPSSatellites",
	GPSStatus:            "GPSStatus",
	GPSMeasureMode:       "GPSMeasureMode",
	GPSDOP:               "GPSDOP",
	GPSSpeedRef:          "GPSSpeedRef",
	GPSSpeed:             "GPSSpeed",
	GPSTrackRef:          "GPSTrackRef",
	GPSTrack:             "GPSTrack",
	GPSImgDirectionRef:   "GPSImgDirectionRef",
	GPSImgDirection:      "GPSImgDirection",
	GPSMapDatum:          "GPSMapDatum",
	GPSDestLatitudeRef:   "GPSDestLatitudeRef",
	GPSDestLatitude:      "GPSDestLatitude",
	GPSDestLongitudeRef:  "GPSDestLongitudeRef",
	GPSDestLongitude:     "GPSDestLongitude",
	GPSDestBearingRef:    "GPSDestBearingRef",
	GPSDestBearing:       "GPSDestBearing",
	GPSDestDistanceRef:   "GPSDestDistanceRef",
	GPSDestDistance:      "GPSDestDistance",
	GPSProcessingMethod:  "GPSProcessingMethod",
	GPSAreaInformation:   "GPSAreaInformation",
	GPSDateStamp:         "GPSDateStamp",
	GPSDifferential:      "GPSDifferential",
	GPSHPositioningError: "GPSHPositioningError",
}

// lookupField maps a raw GPS IFD tag id to its field. Unknown ids report false.
func lookupField(id uint16) (Field, bool) {
	if int(id) >= len(fieldNames) {
		return 0, false
	}
	return Field(id), true
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("GPSTag(0x%04x)", uint16(f))
}

// requiredFields must all be present for a GPS block to yield coordinates.
var requiredFields = []Field{GPSLatitude, GPSLatitudeRef, GPSLongitude, GPSLongitudeRef}

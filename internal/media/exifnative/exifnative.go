package exifnative

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"snapsort/internal/capturedate"
	"snapsort/internal/outcome"
)

// Labels match the ones exiftool prints so both readers feed the same
// resolution priority.
const (
	LabelDateTimeOriginal = "Date/Time Original"
	LabelCreateDate       = "Create Date"
	LabelModifyDate       = "Modify Date"
	LabelGPSDateTime      = "GPS Date/Time"
	LabelFileModification = "File Modification Date/Time"
)

// exifContainers are the MIME types goexif can decode.
var exifContainers = []string{"image/jpeg", "image/tiff"}

// Reader extracts timestamps in-process, without an external tool.
type Reader struct{}

// Read returns label -> timestamp for path. The filesystem modification time
// is always present; EXIF tags are added when the content is a JPEG or TIFF
// carrying them.
func (Reader) Read(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "native", "cancelled", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "native", "stat file", err)
	}
	fields := map[string]string{
		LabelFileModification: info.ModTime().Format(capturedate.Layout),
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "native", "detect content type", err)
	}
	if !mimetype.EqualsAny(mtype.String(), exifContainers...) {
		return fields, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "native", "open file", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Images without an EXIF block still resolve from the file time.
		return fields, nil
	}
	addTag(fields, x, exif.DateTimeOriginal, LabelDateTimeOriginal)
	addTag(fields, x, exif.DateTimeDigitized, LabelCreateDate)
	addTag(fields, x, exif.DateTime, LabelModifyDate)
	if stamp, ok := gpsTimestamp(x); ok {
		fields[LabelGPSDateTime] = stamp
	}
	return fields, nil
}

func addTag(fields map[string]string, x *exif.Exif, name exif.FieldName, label string) {
	tag, err := x.Get(name)
	if err != nil {
		return
	}
	value, err := tag.StringVal()
	if err != nil {
		return
	}
	if stamp := capturedate.Pattern.FindString(value); stamp != "" {
		fields[label] = stamp
	}
}

func gpsTimestamp(x *exif.Exif) (string, bool) {
	dateTag, err := x.Get(exif.GPSDateStamp)
	if err != nil {
		return "", false
	}
	date, err := dateTag.StringVal()
	if err != nil {
		return "", false
	}
	timeTag, err := x.Get(exif.GPSTimeStamp)
	if err != nil {
		return "", false
	}
	var hms [3]float64
	for i := range hms {
		v, ok := rational(timeTag, i)
		if !ok {
			return "", false
		}
		hms[i] = v
	}
	return gpsDateTime(date, hms[0], hms[1], hms[2])
}

func rational(tag *tiff.Tag, i int) (float64, bool) {
	num, den, err := tag.Rat2(i)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// gpsDateTime joins the GPS date stamp and the hour/minute/second rationals
// into the EXIF timestamp layout. GPS time is UTC.
func gpsDateTime(date string, hour, minute, second float64) (string, bool) {
	day, err := time.ParseInLocation("2006:01:02", strings.TrimSpace(strings.TrimRight(date, "\x00")), time.UTC)
	if err != nil {
		return "", false
	}
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 || second < 0 || second >= 61 {
		return "", false
	}
	offset := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	return day.Add(offset).Format(capturedate.Layout), true
}

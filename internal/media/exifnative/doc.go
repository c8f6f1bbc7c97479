// Package exifnative reads capture timestamps in-process with goexif, as an
// alternative to shelling out to exiftool.
//
// Content is sniffed with mimetype first; only JPEG and TIFF containers are
// decoded. Every file also reports its filesystem modification time under the
// same label exiftool uses, so resolution behaves the same with either reader.
package exifnative

// Command snapsort sorts photos and videos into dated folders.
//
//	snapsort [flags] <target> <source>
//
// Every media file under source is moved to
// target/{year}/{month}/{YYYY_MM_DD_HH_mm_ss}.{ext} using the capture time
// read by exiftool. Duplicates and empty files are removed from source;
// files without a usable timestamp stay where they are. Per-file details go
// to the log file; the console shows a progress bar and a one-line summary.
//
// `snapsort config init [path]` writes a sample configuration file.
package main

// Package subtitles acquires and cleans subtitle tracks via yt-dlp.
//
// The package builds the yt-dlp argument vector, stages cookie files into the
// per-request scratch directory, runs the extraction subprocess, and escalates
// through a fixed ladder of fallback attempts (regular subtitles on, fallback
// language list, both) until one produces subtitle text. The cue markup of the
// produced file is reduced to deduplicated plain text by the cleaner.
package subtitles

package sources

// YouTube implementation is split across two files by responsibility:
//   youtube_innertube.go : player response and timedtext types, constants, and the HTTP primitive
//   youtube_transcript.go: watch page parsing, failure classification, track selection, timedtext decoding

// Package phash computes perceptual fingerprints of manga page images and
// Hamming distances between them.
//
// A fingerprint is a fixed-length bit vector derived from the low-frequency
// DCT coefficients of a luminance-normalized raster. Pages are converted to
// grayscale and resized to a fixed square canvas before hashing, so scans of
// the same page from different sources (color vs B&W, differing resolution
// or compression) produce nearby digests while different pages do not.
//
// Fingerprinting individual pages is independent work; AnalyzeChapter fans it
// out across a bounded worker pool and restores original page order before
// returning.
package phash

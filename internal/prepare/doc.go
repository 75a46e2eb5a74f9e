// Package prepare re-applies a page alignment to the original chapter
// archives, producing two output archives with synchronized positional
// numbering plus a JSON manifest describing the mapping.
//
// Position k in the output corresponds to the k-th alignment entry. A page
// numbered 007 in the A-side archive is the same story page as 007 in the
// B-side archive; a position missing from one side means that page exists
// only in the other language.
package prepare

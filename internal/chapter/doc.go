// Package chapter reads and writes chapter page archives (ZIP/CBZ) as
// ordered (name, bytes) page lists, and parses the <number>_<lang>.zip
// naming convention used to pair the two language versions of a chapter.
package chapter

// Package hashing computes content digests for capture files.
//
// A Digest is the 128-bit MD5 of a file's bytes and depends on nothing else:
// not the path, the modification time nor the permission bits. Files are
// streamed through a fixed-size buffer so memory use does not grow with file
// size. MD5 is used for accidental-duplicate detection only; its collision
// weaknesses do not matter when the inputs are not adversarial.
package hashing

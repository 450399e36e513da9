// Package photosize normalizes the variant-encoded thumbnail descriptors
// received from the messaging wire protocol into one canonical in-memory
// shape.
//
// The wire exposes six structurally different thumbnail encodings (empty,
// plain, cached with inline bytes, stripped inline minithumbnail,
// progressive scan list, vector path) plus a video thumbnail shape and two
// web-referenced shapes. All of them decode into PhotoSize or
// AnimationSize, or into raw inline bytes for the two encodings that carry
// their pixel data directly.
//
// Input is remote and only partially trusted. Decoding is defensive:
// malformed dimensions, wrong type tags, empty scan lists and
// format/content mismatches are logged, counted and degraded to safe
// defaults instead of failing the decode. The only hard failures are the
// web-document paths that cannot produce a file identity at all.
package photosize

// Package imagemeta probes image dimensions without decoding pixel data.
//
// The scanner only cares about width and height (icon textures must be
// 16x16), so DecodeConfig is all that is needed. Probe failures are
// reported to the caller, which generally treats them as "unknown size".
package imagemeta

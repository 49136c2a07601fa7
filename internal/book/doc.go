// Package book models the data mdBook exchanges with a preprocessor and
// implements the codec for it.
//
// The request is read from stdin either as mdBook's native
// [context, book] tuple or as a JSON object carrying the context and the
// book side by side. Everything the preprocessor does not inspect (the
// context, chapter content, nested items, unknown variants) is kept as raw
// JSON so that it round-trips without being reinterpreted.
package book

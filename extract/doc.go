// Package extract converts source documents into normalized plain text.
//
// An Extractor dispatches on the file extension to a registered Format.
// PDF and DOCX are registered by default. Every failure is reported as a
// *Failure whose Kind tells the caller why nothing was extracted:
//
//   - KindUnsupportedFormat: no Format is registered for the extension
//   - KindReadError: the file could not be opened or parsed
//   - KindEmptyDocument: parsing succeeded but produced only whitespace
//
// Parser panics are recovered and reported as read errors, so Extract never
// lets a malformed document crash its caller.
package extract

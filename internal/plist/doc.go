// Package plist models launchd service descriptors and converts them to and
// from their XML property-list text.
//
// Only the flat subset of the property-list grammar that launch agents use is
// understood: a single top-level <dict> holding strings, integers, booleans,
// arrays of strings, one string-to-string dictionary (EnvironmentVariables)
// and the string-or-array LimitLoadToSessionType value.
//
// Decode never fails. Anything it does not recognize is left out of the
// resulting Document:
//
//	doc := plist.Decode(text)
//	doc.RunAtLoad = plist.Bool(true)
//	out := plist.Encode(doc)
//
// Encode writes keys in a fixed canonical order, so re-encoding a decoded
// document is stable.
//
// XML 1.0 has no representation for control characters other than tab,
// newline and carriage return, nor for invalid UTF-8. Encode writes such
// runes as U+FFFD, so strings holding them do not survive a round trip.
package plist

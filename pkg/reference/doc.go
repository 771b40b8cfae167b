// Package reference loads and serves the region/commune/village reference
// dataset used to validate survey record locations.
//
// The dataset comes from a spreadsheet (by default Villages.xlsx) with
// columns region, commune and village. It is loaded once at startup and is
// immutable afterwards; reloads replace the whole set atomically.
package reference

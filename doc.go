// Package examplegen renders the illustrative example shown next to a
// locale data value: a pattern filled with sample data, marked up so a
// reviewer can tell the value under review from the sample text around it.
package examplegen

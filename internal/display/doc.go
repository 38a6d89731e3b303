// Package display renders user-facing notices for the davfind CLI.
//
// Warnings describe configurations that are valid but likely to surprise:
// duplicate identifiers, credentials sent without TLS, no request timeout.
// They never block a search.
package display

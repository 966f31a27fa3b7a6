// Package confparse reads the line oriented "key = value" format used by
// gitin.conf files, both the site wide one and the optional one inside each
// repository, and maps keys onto typed settings through a declarative
// Schema.
package confparse

// Package data embeds the seed tables shipped with slidesearch.
package data

import "embed"

// FS holds one CSV file per backing table.
//
//go:embed *.csv
var FS embed.FS

// Package license identifies the license of a repository working tree.
package license

import (
	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
)

// minConfidence is the lowest detector confidence we accept as a match.
const minConfidence = 0.85

// Detect returns the SPDX identifier of the best license match in dir.
// Detection failures and low-confidence matches both yield an empty string;
// a missing license is reported as absent data, never as an error.
func Detect(dir string) string {
	f, err := filer.FromDirectory(dir)
	if err != nil {
		return ""
	}

	matches, err := licensedb.Detect(f)
	if err != nil {
		return ""
	}

	best := ""
	var bestConfidence float32
	for spdx, m := range matches {
		if m.Confidence < minConfidence {
			continue
		}
		// Equal confidence breaks to the smaller identifier so repeated
		// runs report the same license.
		if m.Confidence > bestConfidence || (m.Confidence == bestConfidence && spdx < best) {
			bestConfidence = m.Confidence
			best = spdx
		}
	}
	return best
}

package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// versionTable matches table names carrying a firmware version suffix:
// anything ending in "V" plus one or two digits.
var versionTable = regexp.MustCompile(`.+V[0-9]{1,2}$`)

// DiscoverVersions inspects table names and returns the supported firmware
// versions as the contiguous range 1..max, ascending.
//
// The version number is the integer after the last "_V" in a matching name.
// Names that match the suffix pattern but yield no parseable number (no "_V"
// separator at all) are skipped rather than failing discovery. The range is
// contiguous even when an intermediate version has no tables of its own;
// such gap versions resolve through the loader's carry-over rules.
func DiscoverVersions(tables []string) []int {
	maxVersion := 0
	for _, table := range tables {
		if !versionTable.MatchString(table) {
			continue
		}
		idx := strings.LastIndex(table, "_V")
		if idx < 0 {
			continue
		}
		version, err := strconv.Atoi(table[idx+len("_V"):])
		if err != nil || version <= 0 {
			continue
		}
		if version > maxVersion {
			maxVersion = version
		}
	}

	if maxVersion == 0 {
		return nil
	}
	versions := make([]int, 0, maxVersion)
	for v := 1; v <= maxVersion; v++ {
		versions = append(versions, v)
	}
	return versions
}

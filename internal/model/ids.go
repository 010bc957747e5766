package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// Separator joins a component id and a compartment id into a metabolite id.
const Separator = "_"

// CopySuffix marks a disambiguated reaction copy: <id>_copy<N>.
const CopySuffix = "copy"

var copyIDPattern = regexp.MustCompile(`^(.*)_` + CopySuffix + `([0-9]+)$`)

// MetaboliteID returns the public identifier of a compartmentalized metabolite.
func MetaboliteID(componentID, compartmentID string) string {
	return componentID + Separator + compartmentID
}

// CopyID returns the disambiguated identifier for copy n of a reaction.
func CopyID(id string, n int) string {
	return fmt.Sprintf("%s_%s%d", id, CopySuffix, n)
}

// SplitCopyID reports the base identifier and copy number of a copy id.
// ok is false when id carries no copy suffix.
func SplitCopyID(id string) (base string, n int, ok bool) {
	m := copyIDPattern.FindStringSubmatch(id)
	if m == nil {
		return id, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return id, 0, false
	}
	return m[1], n, true
}

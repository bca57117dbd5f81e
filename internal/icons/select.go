package icons

import "errors"

// ErrNoIcon means no fetched icon had a usable nominal size.
var ErrNoIcon = errors.New("icons: no eligible icon")

// SelectDescriptor returns the fetched descriptor whose nominal size is
// closest to target. Ties go to the earliest descriptor in the set.
func SelectDescriptor(set IconSet, target int) (*IconDescriptor, error) {
	var best *IconDescriptor
	bestDist := 0
	for _, d := range set {
		if d == nil || d.LocalPath == "" || d.NominalSize <= 0 {
			continue
		}
		dist := d.NominalSize - target
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == nil {
		return nil, ErrNoIcon
	}
	return best, nil
}

// SelectBestMatch returns the local path of the best icon for target, or
// false when none is eligible.
func SelectBestMatch(set IconSet, target int) (string, bool) {
	d, err := SelectDescriptor(set, target)
	if err != nil {
		return "", false
	}
	return d.LocalPath, true
}

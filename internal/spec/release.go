package spec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnparsableReleaseError reports a release value whose next increment
// cannot be computed because it contains no trailing digit run.
type UnparsableReleaseError struct {
	Value string
}

func (e *UnparsableReleaseError) Error() string {
	return fmt.Sprintf("cannot compute next release from %q: no number found", e.Value)
}

// Leading macro-name token of a release value, e.g. "%mkrel " in
// "%mkrel 3". Preserved across both increments and resets.
var releaseMacroRE = regexp.MustCompile(`^(%\w+[ \t]+)(.*)$`)

// Trailing digit run of a release value once any suffix is stripped.
var releaseNumberRE = regexp.MustCompile(`^(.*?)(\d+)$`)

// ComputeRelease derives the next release value from the current one.
//
// An explicit release wins unconditionally and is returned verbatim.
// On a version bump the release resets to "1" plus the configured
// suffix, keeping only a leading macro-name token; whatever literal
// prefix the old value carried is dropped. Otherwise the trailing digit
// run is incremented, preserving any literal prefix and the suffix. The
// suffix is compared as an exact literal, never as a pattern.
func ComputeRelease(current string, versionBump bool, explicit, suffix string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	macro := ""
	value := current
	if m := releaseMacroRE.FindStringSubmatch(current); m != nil {
		macro = m[1]
		value = m[2]
	}

	if versionBump {
		return macro + "1" + suffix, nil
	}

	tail := ""
	if suffix != "" && strings.HasSuffix(value, suffix) {
		tail = suffix
		value = strings.TrimSuffix(value, suffix)
	}

	m := releaseNumberRE.FindStringSubmatch(value)
	if m == nil {
		return "", &UnparsableReleaseError{Value: current}
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", &UnparsableReleaseError{Value: current}
	}

	return macro + m[1] + strconv.Itoa(n+1) + tail, nil
}

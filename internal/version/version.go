// Package version holds the nkl CLI version. The variables can be
// overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Number is the plain semantic version.
	Number = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Semver parses Number. A malformed Number (bad -ldflags) falls back to 0.0.0.
func Semver() *semver.Version {
	v, err := semver.NewVersion(Number)
	if err != nil {
		return semver.New(0, 0, 0, "", "")
	}
	return v
}

// Colored renders Number with the major, minor and patch parts coloured.
func Colored() string {
	v := Semver()
	var sb strings.Builder
	sb.WriteString(versionMajorColor.Sprint(v.Major()))
	sb.WriteByte('.')
	sb.WriteString(versionMinorColor.Sprint(v.Minor()))
	sb.WriteByte('.')
	sb.WriteString(versionPatchColor.Sprint(v.Patch()))
	if pre := v.Prerelease(); pre != "" {
		sb.WriteString("-" + pre)
	}
	return sb.String()
}

// Satisfies reports whether this compiler matches the constraint, e.g.
// ">=0.1.0". Prerelease builds are compared by their release part.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}
	v := Semver()
	if v.Prerelease() != "" {
		release, err := v.SetPrerelease("")
		if err == nil {
			v = &release
		}
	}
	return c.Check(v), nil
}

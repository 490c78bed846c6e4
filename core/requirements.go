package core

import (
	"bufio"
	"os"
	"regexp"
)

// Requirement line patterns. The strict form pins an exact version; the loose
// form captures the first operator and version token of any constraint line.
var (
	strictRequirementRe = regexp.MustCompile(`^(\w+)==([\d.]+)`)
	looseRequirementRe  = regexp.MustCompile(`^([a-zA-Z0-9-_]+)([=><!~]+)(\d[\d.\w*]*)`)
)

// LoadPackageVersions reads a requirements manifest into a package -> version
// table. Pinned lines (flask==2.0.1) store the bare version; other constraint
// lines store operator plus version (click>=8.0,!=8.0.1 stores ">=8.0").
// Lines matching neither pattern are skipped; later lines win on duplicates.
func LoadPackageVersions(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	versions := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name, version, ok := parseRequirementLine(scanner.Text()); ok {
			versions[name] = version
		}
	}
	return versions, scanner.Err()
}

// parseRequirementLine parses one manifest line, trying the strict pinned
// form before the loose constraint form. ok is false for lines matching
// neither.
func parseRequirementLine(line string) (name, version string, ok bool) {
	if m := strictRequirementRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	if m := looseRequirementRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2] + m[3], true
	}
	return "", "", false
}

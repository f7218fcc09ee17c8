package element

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// Sibling package directories probed next to the output directory.
const (
	SiblingPFElement = "pfelement"
	SiblingPFESass   = "pfe-sass"
	SiblingPFEStyles = "pfe-styles"
)

// Versions are the version strings exposed to templates.
// Sibling versions are empty when the sibling package is absent.
type Versions struct {
	Generator string `json:"generatorVersion"`
	PFElement string `json:"pfelementVersion"`
	PFESass   string `json:"pfeSassVersion"`
	PFEStyles string `json:"pfeStylesVersion"`
}

// ProbeSiblingVersion reads the version field of <baseDir>/<dir>/package.json.
// A missing file is not an error and yields "". A file that cannot be read
// or parsed, or whose version is not semver, is reported as an error.
func ProbeSiblingVersion(baseDir, dir string) (string, error) {
	path := filepath.Join(baseDir, dir, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	if pkg.Version == "" {
		return "", nil
	}

	if _, err := semver.NewVersion(pkg.Version); err != nil {
		return "", fmt.Errorf("invalid version %q in %s: %w", pkg.Version, path, err)
	}
	return pkg.Version, nil
}

// ProbeVersions probes all sibling packages. Probe failures are returned
// in the error slice and leave the corresponding version empty.
func ProbeVersions(baseDir, generatorVersion string) (Versions, []error) {
	versions := Versions{Generator: generatorVersion}
	var errs []error

	probes := []struct {
		dir    string
		target *string
	}{
		{SiblingPFElement, &versions.PFElement},
		{SiblingPFESass, &versions.PFESass},
		{SiblingPFEStyles, &versions.PFEStyles},
	}

	for _, p := range probes {
		v, err := ProbeSiblingVersion(baseDir, p.dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*p.target = v
	}

	return versions, errs
}

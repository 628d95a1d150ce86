package synth

import (
	"bytes"
	"fmt"
	"strings"

	"upgrade-advisor/internal/domain"

	"github.com/aquasecurity/trivy/pkg/dependency/parser/nodejs/packagejson"
	"github.com/aquasecurity/trivy/pkg/dependency/parser/python/pip"
	xio "github.com/aquasecurity/trivy/pkg/x/io"
)

// rule describes how one ecosystem pins a package in its canonical
// manifest. render produces the intended-state fragment; verify, when
// present, re-parses the fragment with the same parser production
// dependency tooling uses and confirms the pin survived rendering.
type rule struct {
	manifestPath string
	render       func(packageName, targetVersion string) string
	verify       func(content, packageName, targetVersion string) error
}

// Synthesizer produces the file mutations implied by an upgrade.
type Synthesizer struct {
	rules map[string]rule
}

// NewSynthesizer creates a synthesizer with the default ecosystem
// registry. Ecosystems are registered here and nowhere else.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		rules: map[string]rule{
			"npm": {
				manifestPath: "package.json",
				render:       renderPackageJSON,
				verify:       verifyPackageJSON,
			},
			"cargo": {
				manifestPath: "Cargo.toml",
				render:       renderCargoTOML,
				// Cargo.toml has no manifest parser in the tooling we
				// verify with (only Cargo.lock does), so render-only.
			},
			"pip": {
				manifestPath: "requirements.txt",
				render:       renderRequirementsTxt,
				verify:       verifyRequirementsTxt,
			},
			"go": {
				manifestPath: "go.mod",
				render:       renderGoMod,
				// go.mod's grammar rejects dotless module paths and
				// two-component versions that this system accepts, so
				// render-only.
			},
		},
	}
}

// Synthesize returns the ordered changes for the request's ecosystem.
// Ecosystems without a registered rule contribute no changes. The only
// possible error is a verification failure, which indicates a rendering
// bug rather than a bad request.
func (s *Synthesizer) Synthesize(request *domain.UpgradeRequest) ([]*domain.Change, error) {
	r, ok := s.rules[request.Ecosystem]
	if !ok {
		return []*domain.Change{}, nil
	}

	content := r.render(request.PackageName, request.TargetVersion)
	if r.verify != nil {
		if err := r.verify(content, request.PackageName, request.TargetVersion); err != nil {
			return nil, fmt.Errorf("synthesized %s fragment failed verification: %w", r.manifestPath, err)
		}
	}

	return []*domain.Change{
		{
			FilePath:   r.manifestPath,
			ChangeType: domain.ChangeTypeModify,
			Content:    content,
			Metadata:   map[string]any{},
		},
	}, nil
}

// SupportedEcosystems lists the registered ecosystems.
func (s *Synthesizer) SupportedEcosystems() []string {
	ecosystems := make([]string, 0, len(s.rules))
	for ecosystem := range s.rules {
		ecosystems = append(ecosystems, ecosystem)
	}
	return ecosystems
}

func renderPackageJSON(packageName, targetVersion string) string {
	return fmt.Sprintf(`{"dependencies": {%q: %q}}`, packageName, targetVersion)
}

func verifyPackageJSON(content, packageName, targetVersion string) error {
	reader, err := xio.NewReadSeekerAt(bytes.NewReader([]byte(content)))
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}

	pkg, err := packagejson.NewParser().Parse(reader)
	if err != nil {
		return fmt.Errorf("package.json parser error: %w", err)
	}

	pinned, ok := pkg.Dependencies[packageName]
	if !ok {
		return fmt.Errorf("package %q not present in rendered dependencies", packageName)
	}
	if pinned != targetVersion {
		return fmt.Errorf("package %q pinned to %q, want %q", packageName, pinned, targetVersion)
	}
	return nil
}

func renderCargoTOML(packageName, targetVersion string) string {
	return fmt.Sprintf("[dependencies]\n%s = %q\n", packageName, targetVersion)
}

func renderRequirementsTxt(packageName, targetVersion string) string {
	return fmt.Sprintf("%s==%s\n", packageName, targetVersion)
}

func verifyRequirementsTxt(content, packageName, targetVersion string) error {
	reader, err := xio.NewReadSeekerAt(bytes.NewReader([]byte(content)))
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}

	packages, _, err := pip.NewParser(false).Parse(reader)
	if err != nil {
		return fmt.Errorf("requirements.txt parser error: %w", err)
	}

	for _, pkg := range packages {
		if normalizePipName(pkg.Name) == normalizePipName(packageName) && pkg.Version == targetVersion {
			return nil
		}
	}
	return fmt.Errorf("package %q@%q not present in rendered requirements", packageName, targetVersion)
}

// normalizePipName folds the name variations pip tooling treats as equal.
func normalizePipName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}

func renderGoMod(packageName, targetVersion string) string {
	if !strings.HasPrefix(targetVersion, "v") {
		targetVersion = "v" + targetVersion
	}
	return fmt.Sprintf("require %s %s\n", packageName, targetVersion)
}

// Package manifest implements the thin consumer the walker was built for:
// filtering a traversal down to JSON files and running them through the
// parse_and_validate oracle described in spec.md §4.5/§6. The manifest
// schema proper stays external (spec.md §1); this package depends only on
// the aggregate Metadata.Validate() interface, grounded on the teacher's
// internal/search/errors.go "classify, don't abort" shape.
package manifest

import "encoding/json"

// Metadata is the manifest DTO. Its shape is deliberately small: the spec
// treats the real schema as an external collaborator and only needs this
// core to exercise the Validate() contract.
type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description,omitempty"`
	Entry        string   `json:"entry,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Validate fans a validator out per field and collects every failure,
// rather than stopping at the first (spec.md design note §9: "Result
// accumulation"). A nil return means the record is semantically valid.
func (m Metadata) Validate() error {
	var errs ValidationErrors
	if m.Name == "" {
		errs.add("name is required")
	}
	if m.Version == "" {
		errs.add("version is required")
	}
	for i, dep := range m.Dependencies {
		if dep == "" {
			errs.add("dependencies[%d] is empty", i)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseAndValidate is the parse_and_validate(bytes) -> Option<Metadata>
// oracle from spec.md §4.5/§6.
//
//   - A decode failure always yields nil.
//   - In strict mode, a non-empty Validate() error list also yields nil.
//   - In lenient mode, the structurally valid but semantically invalid
//     record is still returned.
//
// Both modes are kept explicit per spec.md §9's open question; no merged
// semantics is guessed at.
func ParseAndValidate(data []byte, strict bool) *Metadata {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	if err := m.Validate(); err != nil && strict {
		return nil
	}
	return &m
}

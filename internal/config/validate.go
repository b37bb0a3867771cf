package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	nameMinLen     = 3
	nameMaxLen     = 30
	labelMaxLen    = 10
	freeTextMaxLen = 200
	specialChars   = "-_."
)

// ValidateName checks package and target names: 3 to 30 characters from
// letters, digits and "-_.", with no special character at either end and
// no two special characters in a row.
func ValidateName(field, name string) error {
	return validateIdentifier(field, name, nameMinLen, nameMaxLen)
}

func validateIdentifier(field, name string, minLen, maxLen int) error {
	fail := func(reason string) error {
		return &ValidationError{Field: field, Value: name, Reason: reason}
	}
	if len(name) < minLen || len(name) > maxLen {
		return fail(fmt.Sprintf("must be between %d and %d characters long", minLen, maxLen))
	}
	prevSpecial := false
	for i, r := range name {
		special := strings.ContainsRune(specialChars, r)
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		switch {
		case !special && !isAlnum:
			return fail("may only contain letters, digits and '-', '_', '.'")
		case special && (i == 0 || i == len(name)-1):
			return fail("must start and end with a letter or digit")
		case special && prevSpecial:
			return fail("must not contain consecutive special characters")
		}
		prevSpecial = special
	}
	return nil
}

// Validate checks the whole model and returns every problem found.
func (m *Model) Validate() error {
	var errs []error
	if err := ValidateName("package name", m.Package.Name); err != nil {
		errs = append(errs, err)
	}
	v := m.Package.Version
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		errs = append(errs, &ValidationError{Field: "version", Value: m.Package.Identifier(), Reason: "numbers must not be negative"})
	}
	if v.Label != "" {
		if err := validateIdentifier("version label", v.Label, 1, labelMaxLen); err != nil {
			errs = append(errs, err)
		}
	}
	if len(m.Package.Description) > freeTextMaxLen {
		errs = append(errs, &ValidationError{Field: "description", Value: m.Package.Description[:20] + "...", Reason: "must be at most 200 characters long"})
	}
	if len(m.Package.Author) > freeTextMaxLen {
		errs = append(errs, &ValidationError{Field: "author", Value: m.Package.Author[:20] + "...", Reason: "must be at most 200 characters long"})
	}
	if len(m.Targets) == 0 {
		errs = append(errs, errors.New("at least one target must be declared"))
	}

	seen := make(map[string]struct{})
	for _, t := range m.Targets {
		if err := ValidateName("target name", t.Name); err != nil {
			errs = append(errs, err)
		}
		if _, dup := seen[t.Name]; dup {
			errs = append(errs, &ValidationError{Field: "target name", Value: t.Name, Reason: "declared more than once"})
		}
		seen[t.Name] = struct{}{}
		if len(t.Sources) == 0 {
			errs = append(errs, &ValidationError{Field: "target sources", Value: t.Name, Reason: "at least one source glob is required"})
		}
	}
	return errors.Join(errs...)
}

// SelectTargets resolves requested names in request order. With no names,
// the first declared target is selected.
func (m *Model) SelectTargets(names ...string) ([]*Target, error) {
	if len(names) == 0 {
		if len(m.Targets) == 0 {
			return nil, errors.New("no targets declared")
		}
		return []*Target{m.Targets[0]}, nil
	}

	var selected []*Target
	var unknown []string
	seen := make(map[string]struct{})
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		t, ok := m.Target(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, t)
	}
	if len(unknown) > 0 {
		return nil, &UnknownTargetError{Names: unknown}
	}
	return selected, nil
}

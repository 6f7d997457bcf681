package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

All notable changes to this project.

## 1.1.0 - 2026-08-20

### Added

- Fancy new combinators.

### Fixed

- Nil handling in Bind.

## 1.0.0 - 2026-05-02

Initial release.
`

func TestLatest_MultipleSections_ReturnsFirst(t *testing.T) {
	section, err := Latest([]byte(sampleChangelog))
	require.NoError(t, err)
	require.Equal(t, "1.1.0 - 2026-08-20", section.Title)
	require.Contains(t, section.Body, "Fancy new combinators.")
	require.Contains(t, section.Body, "Nil handling in Bind.")
	require.NotContains(t, section.Body, "Initial release.")
	require.NotContains(t, section.Body, "1.0.0")
}

func TestLatest_SingleSection_BodyRunsToEnd(t *testing.T) {
	src := "# Changelog\n\n## 0.1.0\n\nFirst cut.\n"

	section, err := Latest([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "0.1.0", section.Title)
	require.Equal(t, "First cut.", section.Body)
}

func TestLatest_NoVersionHeadings_ReturnsErrNoSections(t *testing.T) {
	src := "# Changelog\n\nNothing released yet.\n"

	_, err := Latest([]byte(src))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoSections))
}

func TestLatest_EmptyInput_ReturnsErrNoSections(t *testing.T) {
	_, err := Latest(nil)
	require.True(t, errors.Is(err, ErrNoSections))
}

func TestLatest_HeadingWithEmptyBody_ReturnsEmptyBody(t *testing.T) {
	src := "## 2.0.0\n## 1.0.0\n\nOld.\n"

	section, err := Latest([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "2.0.0", section.Title)
	require.Empty(t, section.Body)
}

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldSHA, oldBT := Version, GitSHA, BuildTime
	defer func() { Version, GitSHA, BuildTime = oldV, oldSHA, oldBT }()

	Version, GitSHA, BuildTime = "1.2.3", "abc123", "2026-01-01"
	assert.Equal(t, "cornerplot 1.2.3 (abc123, built 2026-01-01)", String())
}

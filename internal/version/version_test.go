package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "gitin unknown (commit unknown, built unknown)", String())

	saved := Version
	t.Cleanup(func() { Version = saved })
	Version = "v1.2.3"
	assert.Contains(t, String(), "gitin v1.2.3 ")
}

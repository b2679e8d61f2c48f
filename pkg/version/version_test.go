package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/vtable/pkg/version"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())
	assert.NotEmpty(t, version.GetCommit())
}

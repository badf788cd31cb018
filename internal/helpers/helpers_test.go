package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDurationOr("3s", time.Second))
	assert.Equal(t, time.Second, ParseDurationOr("", time.Second))
	assert.Equal(t, time.Second, ParseDurationOr("soon", time.Second))
	assert.Equal(t, time.Second, ParseDurationOr("-2s", time.Second))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestSha256Hash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Sha256Hash(""))
}

func TestFindPathKeepsExplicitPaths(t *testing.T) {
	assert.Equal(t, "/opt/vbox/VBoxManage", FindPath(context.Background(), "/opt/vbox/VBoxManage"))
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := Errorf("docker_info", "Docker is not running")
	assert.Equal(t, "docker_info: Docker is not running", err.Error())
	assert.Equal(t, "Docker is not running", Message(err))

	assert.Equal(t, "plain", (&Error{Message: "plain"}).Error())
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("op", nil))

	err := Wrap("system_info", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var ge *Error
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, "system_info", ge.Op)
}

func TestWrap_KeepsExistingError(t *testing.T) {
	inner := Errorf("scan", "permission denied")
	wrapped := fmt.Errorf("ctx: %w", inner)

	got := Wrap("outer", wrapped)
	assert.Equal(t, wrapped, got)
	assert.Equal(t, "permission denied", Message(got))
}

func TestUnsupported(t *testing.T) {
	err := Unsupported("clean_logs")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "clean_logs: operation not supported", err.Error())
}

func TestParseDockerTarget(t *testing.T) {
	for _, s := range []string{"images", "containers", "volumes", "build-cache", "all"} {
		got, ok := ParseDockerTarget(s)
		assert.True(t, ok, s)
		assert.Equal(t, DockerTarget(s), got)
	}
	_, ok := ParseDockerTarget("networks")
	assert.False(t, ok)
}

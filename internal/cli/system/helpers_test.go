package system

import (
	"bytes"
	"testing"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/cli/clitest"
)

func newTestContext(t *testing.T, file string) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	env := clitest.New(t, file)
	return env.Context, env.Path, env.Buf
}

func newInitializedContext(t *testing.T, file string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	env := clitest.Initialized(t, file)
	return env.Context, env.Buf
}

package commands

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/josephlewis42/vshell/core/vos"
	"github.com/josephlewis42/vshell/core/vos/vostest"
)

func TestAllCommands(t *testing.T) {
	for _, cmdEntry := range ListBuiltinCommands() {
		t.Run(cmdEntry.Name, func(t *testing.T) {
			if cmdEntry.Proc == nil {
				t.Fatal("nil command", cmdEntry.Name)
			}
			if len(cmdEntry.Paths) == 0 {
				t.Fatal("command has no install paths", cmdEntry.Name)
			}
		})
	}
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
	// Setup seeds the filesystem before the command runs.
	Setup func(vos.VOS) error
}

func (gts goldenTestSuite) Run(t *testing.T, cmd vos.ProcessFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(cmd, tc.Args[0], tc.Args[1:]...)
			cmd.Resolver = BuiltinProcessResolver
			cmd.Setup = tc.Setup
			out, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, out)
		})
	}
}

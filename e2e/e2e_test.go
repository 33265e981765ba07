//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var supergemlockBinary string
var gembundleBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "supergemlock-e2e-*")
	if err != nil {
		panic(err)
	}

	supergemlockBinary = filepath.Join(tmpDir, "supergemlock")
	gembundleBinary = filepath.Join(tmpDir, "gembundle")

	if err := buildBinary(supergemlockBinary, "./cmd/supergemlock"); err != nil {
		panic("failed to build supergemlock binary: " + err.Error())
	}
	if err := buildBinary(gembundleBinary, "./cmd/gembundle"); err != nil {
		panic("failed to build gembundle binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func buildBinary(out, pkg string) error {
	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", out, pkg)
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"gembundle":    runBinaryCmd("gembundle"),
			"supergemlock": runBinaryCmd("supergemlock"),
		},
	})
}

func runBinaryCmd(name string) func(ts *testscript.TestScript, neg bool, args []string) {
	return func(ts *testscript.TestScript, neg bool, args []string) {
		err := ts.Exec(name, args...)
		if neg {
			if err == nil {
				ts.Fatalf("unexpected command success")
			}
			return
		}
		if err != nil {
			ts.Fatalf("unexpected command failure: %v", err)
		}
	}
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(supergemlockBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}

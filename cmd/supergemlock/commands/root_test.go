package commands_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/trailib/supergemlock/cmd/supergemlock/commands"
	"github.com/trailib/supergemlock/internal/app"
	"github.com/trailib/supergemlock/internal/core/domain"
	"github.com/trailib/supergemlock/internal/core/ports/mocks"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })

	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
}

func TestRootCommandRunsOrchestratorByDefault(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(app.ManifestPath, []byte("gem 'rack', '~> 3.0'\n"), 0o644))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockCatalogSource(ctrl)
	mockSource.EXPECT().Entries(gomock.Any()).Return([]domain.CatalogEntry{
		{Name: "rack", Version: domain.Version{Major: 3, Minor: 0, Patch: 8}},
	}, nil)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	orch := app.New(mockSource, mockLogger)
	cli := commands.New(orch)
	cli.SetArgs(nil)

	err := cli.Execute(context.Background())
	assert.NoError(t, err)
}

func TestRootCommandVersionFlag(t *testing.T) {
	chdirTemp(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := app.New(mocks.NewMockCatalogSource(ctrl), mocks.NewMockLogger(ctrl))
	cli := commands.New(orch)
	cli.SetArgs([]string{"--version"})

	err := cli.Execute(context.Background())
	assert.NoError(t, err)
}

func TestRootCommandRejectsPositionalArgs(t *testing.T) {
	chdirTemp(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := app.New(mocks.NewMockCatalogSource(ctrl), mocks.NewMockLogger(ctrl))
	cli := commands.New(orch)
	cli.SetArgs([]string{"unexpected"})

	err := cli.Execute(context.Background())
	assert.Error(t, err)
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scide/internal/adapters/registry"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

func storeWith(contracts ...*domain.Contract) *registry.ContractStore {
	store := registry.NewContractStore()
	store.Replace(contracts)
	return store
}

func builtContract(id string) *domain.Contract {
	c := domain.NewContract("/ws/" + id + ".c")
	c.BytecodePath = "/ws/" + id + ".wasm"
	return c
}

func TestBuildContract(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the source", func(t *testing.T) {
		store := storeWith(domain.NewContract("/ws/adder/adder.c"))
		builder := new(MockBuilder)
		builder.On("Build", ctx, "/ws/adder/adder.c").Return(nil)
		progress := &RecordingProgress{}

		result, err := usecase.NewBuildContract(store, builder, testLogger(), progress).Run(ctx, "adder")
		require.NoError(t, err)

		assert.Equal(t, "adder", result.Contract.ID)
		assert.Equal(t, []string{"building", "complete"}, progress.stages())
		builder.AssertExpectations(t)

		// The artifact is only discovered by the next reconciliation
		stored, _ := store.Get("adder")
		assert.False(t, stored.IsBuilt())
	})

	t.Run("build failure", func(t *testing.T) {
		store := storeWith(domain.NewContract("/ws/adder.c"))
		builder := new(MockBuilder)
		builder.On("Build", ctx, "/ws/adder.c").Return(errors.New("exit status 1"))
		progress := &RecordingProgress{}

		_, err := usecase.NewBuildContract(store, builder, testLogger(), progress).Run(ctx, "adder")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to build adder")
		assert.Equal(t, []string{"building", "failed"}, progress.stages())
	})

	t.Run("unknown contract", func(t *testing.T) {
		builder := new(MockBuilder)
		_, err := usecase.NewBuildContract(storeWith(), builder, testLogger(), usecase.NopProgress{}).Run(ctx, "adder")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		builder.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
	})
}

func TestDeployContract(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys hex bytecode and records the address", func(t *testing.T) {
		store := storeWith(builtContract("adder"))
		fs := new(MockFileSystem)
		fs.On("ReadBinary", "/ws/adder.wasm").Return([]byte{0x00, 0x61, 0x73, 0x6d}, nil)
		debugger := new(MockDebuggerClient)
		debugger.On("Deploy", ctx, "erd1default", "0061736d").Return("erd1adder", nil)

		contract, err := usecase.NewDeployContract(store, fs, debugger, testConfig(), testLogger()).
			Run(ctx, usecase.DeployContractParams{ID: "adder"})
		require.NoError(t, err)

		assert.Equal(t, "erd1adder", contract.Address)
		stored, _ := store.Get("adder")
		assert.Equal(t, "erd1adder", stored.Address)
		debugger.AssertExpectations(t)
	})

	t.Run("explicit sender", func(t *testing.T) {
		store := storeWith(builtContract("adder"))
		fs := new(MockFileSystem)
		fs.On("ReadBinary", "/ws/adder.wasm").Return([]byte{0x01}, nil)
		debugger := new(MockDebuggerClient)
		debugger.On("Deploy", ctx, "erd1alice", "01").Return("erd1adder", nil)

		_, err := usecase.NewDeployContract(store, fs, debugger, testConfig(), testLogger()).
			Run(ctx, usecase.DeployContractParams{ID: "adder", Sender: "erd1alice"})
		require.NoError(t, err)
		debugger.AssertExpectations(t)
	})

	t.Run("failure keeps the previous address", func(t *testing.T) {
		previous := builtContract("adder")
		previous.Address = "erd1old"
		store := storeWith(previous)
		fs := new(MockFileSystem)
		fs.On("ReadBinary", "/ws/adder.wasm").Return([]byte{0x01}, nil)
		debugger := new(MockDebuggerClient)
		debugger.On("Deploy", ctx, mock.Anything, "01").
			Return("", &domain.DebuggerError{Op: "deploy", Reason: "bad bytecode"})

		_, err := usecase.NewDeployContract(store, fs, debugger, testConfig(), testLogger()).
			Run(ctx, usecase.DeployContractParams{ID: "adder"})

		var debugErr *domain.DebuggerError
		require.ErrorAs(t, err, &debugErr)
		assert.Equal(t, "bad bytecode", debugErr.Reason)

		stored, _ := store.Get("adder")
		assert.Equal(t, "erd1old", stored.Address)
	})

	t.Run("not built", func(t *testing.T) {
		store := storeWith(domain.NewContract("/ws/adder.c"))
		debugger := new(MockDebuggerClient)

		_, err := usecase.NewDeployContract(store, new(MockFileSystem), debugger, testConfig(), testLogger()).
			Run(ctx, usecase.DeployContractParams{ID: "adder"})

		assert.ErrorIs(t, err, domain.ErrContractNotBuilt)
		debugger.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unreadable artifact", func(t *testing.T) {
		store := storeWith(builtContract("adder"))
		fs := new(MockFileSystem)
		fs.On("ReadBinary", "/ws/adder.wasm").Return(nil, errors.New("no such file"))

		_, err := usecase.NewDeployContract(store, fs, new(MockDebuggerClient), testConfig(), testLogger()).
			Run(ctx, usecase.DeployContractParams{ID: "adder"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read bytecode of adder")
	})

	t.Run("contract removed while deploying", func(t *testing.T) {
		store := storeWith(builtContract("adder"))
		fs := new(MockFileSystem)
		fs.On("ReadBinary", "/ws/adder.wasm").Return([]byte{0x01}, nil)
		debugger := new(MockDebuggerClient)
		debugger.On("Deploy", ctx, mock.Anything, "01").
			Run(func(mock.Arguments) { store.Replace(nil) }).
			Return("erd1adder", nil)

		_, err := usecase.NewDeployContract(store, fs, debugger, testConfig(), testLogger()).
			Run(ctx, usecase.DeployContractParams{ID: "adder"})
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})
}

func TestRunContract(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the vm output", func(t *testing.T) {
		deployed := builtContract("adder")
		deployed.Address = "erd1adder"
		store := storeWith(deployed)

		expected := domain.RunOptions{
			FunctionName:    "add",
			FunctionArgs:    []string{"7"},
			Value:           "42",
			GasLimit:        5432,
			GasPrice:        1,
			ContractAddress: "erd1adder",
		}
		debugger := new(MockDebuggerClient)
		debugger.On("Run", ctx, expected).Return(domain.VMOutput{"ReturnCode": "Ok"}, nil)

		run, err := usecase.NewRunContract(store, debugger, testLogger()).Run(ctx, usecase.RunContractParams{
			ID:      "adder",
			Options: domain.RunOptions{FunctionName: "add", FunctionArgs: []string{"7"}},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.VMOutput{"ReturnCode": "Ok"}, run.Output)
		assert.Empty(t, run.Err)
		assert.NotEmpty(t, run.ID)

		stored, _ := store.Get("adder")
		assert.Equal(t, run, stored.LatestRun)
	})

	t.Run("failure on an undeployed contract yields empty output", func(t *testing.T) {
		store := storeWith(builtContract("adder"))
		debugger := new(MockDebuggerClient)
		debugger.On("Run", ctx, mock.MatchedBy(func(o domain.RunOptions) bool {
			return o.ContractAddress == ""
		})).Return(nil, &domain.DebuggerError{Op: "run", Reason: "no contract at address"})

		run, err := usecase.NewRunContract(store, debugger, testLogger()).Run(ctx, usecase.RunContractParams{ID: "adder"})
		require.NoError(t, err)

		assert.Equal(t, domain.VMOutput{}, run.Output)
		assert.Equal(t, "debugger run failed: no contract at address", run.Err)
		assert.Equal(t, domain.DefaultRunOptions(), run.Options)

		stored, _ := store.Get("adder")
		assert.Equal(t, domain.VMOutput{}, stored.LatestRun.Output)
		debugger.AssertExpectations(t)
	})

	t.Run("each run supersedes the previous one", func(t *testing.T) {
		store := storeWith(builtContract("adder"))
		debugger := new(MockDebuggerClient)
		debugger.On("Run", ctx, mock.Anything).Return(domain.VMOutput{"n": 1}, nil).Once()
		debugger.On("Run", ctx, mock.Anything).Return(domain.VMOutput{"n": 2}, nil).Once()
		uc := usecase.NewRunContract(store, debugger, testLogger())

		first, err := uc.Run(ctx, usecase.RunContractParams{ID: "adder"})
		require.NoError(t, err)
		second, err := uc.Run(ctx, usecase.RunContractParams{ID: "adder"})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, domain.VMOutput{"n": 1}, first.Output)
		stored, _ := store.Get("adder")
		assert.Equal(t, second.ID, stored.LatestRun.ID)
		assert.Equal(t, domain.VMOutput{"n": 2}, stored.LatestRun.Output)
	})

	t.Run("unknown contract is an error", func(t *testing.T) {
		debugger := new(MockDebuggerClient)
		_, err := usecase.NewRunContract(storeWith(), debugger, testLogger()).Run(ctx, usecase.RunContractParams{ID: "adder"})
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		debugger.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})
}

func TestManageDebugger(t *testing.T) {
	ctx := context.Background()

	t.Run("start", func(t *testing.T) {
		debugger := new(MockDebuggerClient)
		debugger.On("StartServer", ctx).Return(nil)

		result, err := usecase.NewManageDebugger(debugger, usecase.NopProgress{}).Start(ctx)
		require.NoError(t, err)
		assert.True(t, result.Running)
	})

	t.Run("start twice", func(t *testing.T) {
		debugger := new(MockDebuggerClient)
		debugger.On("StartServer", ctx).Return(domain.ErrDebuggerRunning)

		_, err := usecase.NewManageDebugger(debugger, usecase.NopProgress{}).Start(ctx)
		assert.ErrorIs(t, err, domain.ErrDebuggerRunning)
	})

	t.Run("stop running server", func(t *testing.T) {
		debugger := new(MockDebuggerClient)
		debugger.On("Running").Return(true)
		debugger.On("StopServer", ctx, nil).Return(nil)

		result, err := usecase.NewManageDebugger(debugger, usecase.NopProgress{}).Stop(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "Debugger server stopped", result.Message)
		debugger.AssertExpectations(t)
	})

	t.Run("stop when not running is a no-op", func(t *testing.T) {
		debugger := new(MockDebuggerClient)
		debugger.On("Running").Return(false)

		result, err := usecase.NewManageDebugger(debugger, usecase.NopProgress{}).Stop(ctx, nil)
		require.NoError(t, err)
		assert.False(t, result.Running)
		debugger.AssertNotCalled(t, "StopServer", mock.Anything, mock.Anything)
	})
}

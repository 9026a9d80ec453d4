package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/ws/adder/adder.c", "adder"},
		{"/ws/lib.v2.c", "lib.v2"},
		{"/ws/noext", "noext"},
		{"relative/counter.c", "counter"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ContractIDFromPath(tt.path))
		})
	}
}

func TestNewContract(t *testing.T) {
	c := NewContract("/ws/adder/adder.c")

	assert.Equal(t, "adder", c.ID)
	assert.False(t, c.IsBuilt())
	assert.False(t, c.IsDeployed())
	require.NotNil(t, c.LatestRun)
	assert.Equal(t, DefaultRunOptions(), c.LatestRun.Options)
	assert.True(t, c.LatestRun.Output.IsEmpty())
	assert.Equal(t, "/ws/adder/adder.wasm", c.ArtifactPath(".wasm"))
}

func TestContractClone(t *testing.T) {
	c := NewContract("/ws/adder.c")
	c.LatestRun.Options.FunctionArgs = []string{"1"}
	c.LatestRun.Output = VMOutput{"returnCode": "ok"}

	clone := c.Clone()
	if diff := cmp.Diff(c, clone); diff != "" {
		t.Fatalf("clone differs (-original +clone):\n%s", diff)
	}

	clone.Address = "erd1changed"
	clone.LatestRun.Options.FunctionArgs[0] = "2"
	clone.LatestRun.Output["returnCode"] = "changed"

	assert.Empty(t, c.Address)
	assert.Equal(t, "1", c.LatestRun.Options.FunctionArgs[0])
	assert.Equal(t, "ok", c.LatestRun.Output["returnCode"])

	var nilContract *Contract
	assert.Nil(t, nilContract.Clone())
}

func TestRunOptionsWithDefaults(t *testing.T) {
	t.Run("empty options get every default", func(t *testing.T) {
		assert.Equal(t, DefaultRunOptions(), RunOptions{}.WithDefaults())
	})

	t.Run("set fields are kept", func(t *testing.T) {
		args := []string{"7"}
		got := RunOptions{FunctionName: "add", FunctionArgs: args, GasLimit: 100}.WithDefaults()

		assert.Equal(t, "add", got.FunctionName)
		assert.Equal(t, []string{"7"}, got.FunctionArgs)
		assert.Equal(t, uint64(100), got.GasLimit)
		assert.Equal(t, DefaultValue, got.Value)
		assert.Equal(t, DefaultGasPrice, got.GasPrice)

		got.FunctionArgs[0] = "8"
		assert.Equal(t, "7", args[0])
	})
}

func TestRunClone(t *testing.T) {
	r := NewRun(DefaultRunOptions())
	r.Output = nil

	clone := r.Clone()
	assert.NotNil(t, clone.Output)
	assert.Equal(t, r.ID, clone.ID)
	assert.NotEqual(t, NewRun(DefaultRunOptions()).ID, r.ID)
}

func TestUnknownContractErr(t *testing.T) {
	err := UnknownContractErr{ID: "addr"}
	assert.Equal(t, `contract "addr" not found`, err.Error())

	err = UnknownContractErr{ID: "addr", Suggestions: []string{"adder", "address"}}
	assert.Equal(t, `contract "addr" not found, did you mean: adder, address`, err.Error())
	assert.True(t, errors.Is(err, ErrContractNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDebuggerError(t *testing.T) {
	assert.Equal(t, "debugger deploy failed (HTTP 500): boom",
		(&DebuggerError{Op: "deploy", Status: 500, Reason: "boom"}).Error())
	assert.Equal(t, "debugger run failed: connection refused",
		(&DebuggerError{Op: "run", Reason: "connection refused"}).Error())
}

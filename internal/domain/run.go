package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Default run options used when a caller leaves a field empty.
const (
	DefaultFunctionName = "nothing"
	DefaultValue        = "42"
	DefaultGasLimit     = uint64(5432)
	DefaultGasPrice     = uint64(1)
)

// RunOptions describes one function invocation against a deployed contract.
type RunOptions struct {
	FunctionName    string   `json:"functionName" yaml:"functionName"`
	FunctionArgs    []string `json:"functionArgs" yaml:"functionArgs"`
	Value           string   `json:"value" yaml:"value"`
	GasLimit        uint64   `json:"gasLimit" yaml:"gasLimit"`
	GasPrice        uint64   `json:"gasPrice" yaml:"gasPrice"`
	ContractAddress string   `json:"scAddress,omitempty" yaml:"scAddress,omitempty"`
}

// DefaultRunOptions returns the options of a run nobody configured.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		FunctionName: DefaultFunctionName,
		FunctionArgs: []string{},
		Value:        DefaultValue,
		GasLimit:     DefaultGasLimit,
		GasPrice:     DefaultGasPrice,
	}
}

// WithDefaults fills every empty field from DefaultRunOptions.
func (o RunOptions) WithDefaults() RunOptions {
	defaults := DefaultRunOptions()
	if o.FunctionName == "" {
		o.FunctionName = defaults.FunctionName
	}
	if o.FunctionArgs == nil {
		o.FunctionArgs = defaults.FunctionArgs
	} else {
		o.FunctionArgs = append([]string{}, o.FunctionArgs...)
	}
	if o.Value == "" {
		o.Value = defaults.Value
	}
	if o.GasLimit == 0 {
		o.GasLimit = defaults.GasLimit
	}
	if o.GasPrice == 0 {
		o.GasPrice = defaults.GasPrice
	}
	return o
}

// VMOutput is the execution result reported by the debugger. It is opaque to
// scide; an empty object means the call produced no output.
type VMOutput map[string]any

// IsEmpty reports whether the output carries no fields.
func (o VMOutput) IsEmpty() bool {
	return len(o) == 0
}

// Run is one invocation attempt. A new Run supersedes the previous one; a
// stored Run is never modified.
type Run struct {
	ID        string     `json:"id" yaml:"id"`
	Options   RunOptions `json:"options" yaml:"options"`
	Output    VMOutput   `json:"output" yaml:"output"`
	StartedAt time.Time  `json:"startedAt" yaml:"startedAt"`
	Err       string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRun creates a run with an empty output.
func NewRun(options RunOptions) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Options:   options,
		Output:    VMOutput{},
		StartedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy of the run.
func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Options.FunctionArgs = append([]string{}, r.Options.FunctionArgs...)
	clone.Output = maps.Clone(r.Output)
	if clone.Output == nil {
		clone.Output = VMOutput{}
	}
	return &clone
}

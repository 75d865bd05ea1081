package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/desalboard/desalboard/internal/dataset"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{
			name: "dataset load error",
			err:  &dataset.LoadError{Source: "plant.yaml", Err: dataset.ErrMissingSection},
			want: 2,
		},
		{
			name: "wrapped dataset load error",
			err:  fmt.Errorf("startup: %w", &dataset.LoadError{Source: "plant.yaml", Err: dataset.ErrFileNotFound}),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv("DESALBOARD_HOME", t.TempDir())
	t.Setenv("DESALBOARD_DATA_FILE", "")

	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"compare", "--data", filepath.Join(t.TempDir(), "nope.yaml")}, &stderr))
	assert.Contains(t, stderr.String(), "Error:")

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"equipment", "solar"}, &stderr))
	assert.Contains(t, stderr.String(), "unknown system")
}

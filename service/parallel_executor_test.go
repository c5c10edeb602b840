package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParallelExecutorDefaults(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), NewParallelExecutor(0).Workers())
	assert.Equal(t, runtime.NumCPU(), NewParallelExecutor(-1).Workers())
	assert.Equal(t, 3, NewParallelExecutor(3).Workers())
	assert.Zero(t, NewParallelExecutor(0).timeout)
}

func TestExecuteOnFilesNoDefaultDeadline(t *testing.T) {
	executor := NewParallelExecutor(1)

	err := executor.ExecuteOnFiles(context.Background(), []string{"a.py"}, nil,
		func(ctx context.Context, state interface{}, path string) {
			// Without SetTimeout the worker context carries no deadline
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
		},
	)
	require.NoError(t, err)
}

func TestExecuteOnFilesProcessesEveryFile(t *testing.T) {
	var files []string
	for i := 0; i < 20; i++ {
		files = append(files, fmt.Sprintf("file_%d.py", i))
	}

	var mu sync.Mutex
	processed := make(map[string]int)

	executor := NewParallelExecutor(4)
	err := executor.ExecuteOnFiles(context.Background(), files, nil,
		func(ctx context.Context, state interface{}, path string) {
			mu.Lock()
			processed[path]++
			mu.Unlock()
		},
	)

	require.NoError(t, err)
	require.Len(t, processed, len(files))
	for _, path := range files {
		assert.Equal(t, 1, processed[path], "file %s processed more than once", path)
	}
}

func TestExecuteOnFilesPerWorkerState(t *testing.T) {
	files := []string{"a.py", "b.py", "c.py", "d.py", "e.py", "f.py"}

	var mu sync.Mutex
	created := 0
	states := make(map[interface{}]bool)

	executor := NewParallelExecutor(2)
	err := executor.ExecuteOnFiles(context.Background(), files,
		func() interface{} {
			mu.Lock()
			defer mu.Unlock()
			created++
			return new(int)
		},
		func(ctx context.Context, state interface{}, path string) {
			require.NotNil(t, state)
			mu.Lock()
			states[state] = true
			mu.Unlock()
		},
	)

	require.NoError(t, err)
	// One state per worker, each reused for every file that worker handled
	assert.Equal(t, 2, created)
	assert.LessOrEqual(t, len(states), 2)
}

func TestExecuteOnFilesEmptyInput(t *testing.T) {
	executor := NewParallelExecutor(2)
	err := executor.ExecuteOnFiles(context.Background(), nil, nil,
		func(ctx context.Context, state interface{}, path string) {
			t.Error("process called for empty input")
		},
	)
	assert.NoError(t, err)
}

func TestExecuteOnFilesCancellation(t *testing.T) {
	var files []string
	for i := 0; i < 50; i++ {
		files = append(files, fmt.Sprintf("file_%d.py", i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	processed := 0

	executor := NewParallelExecutor(1)
	err := executor.ExecuteOnFiles(ctx, files, nil,
		func(ctx context.Context, state interface{}, path string) {
			mu.Lock()
			processed++
			mu.Unlock()
			time.Sleep(20 * time.Millisecond)
		},
	)

	assert.ErrorIs(t, err, context.Canceled)
	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, processed, len(files))
}

func TestExecuteOnFilesTimeout(t *testing.T) {
	files := []string{"a.py", "b.py", "c.py", "d.py"}

	executor := NewParallelExecutor(1)
	executor.SetTimeout(10 * time.Millisecond)

	err := executor.ExecuteOnFiles(context.Background(), files, nil,
		func(ctx context.Context, state interface{}, path string) {
			time.Sleep(50 * time.Millisecond)
		},
	)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/codemodrc/pkg/status"
)

// fakeOperation records concurrency and returns a report derived from the path
type fakeOperation struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
	onCall   func(path string)
}

func (f *fakeOperation) Name() string { return "fake" }

func (f *fakeOperation) ProcessFile(ctx context.Context, path string) status.FileReport {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.onCall != nil {
		f.onCall(path)
	}
	time.Sleep(f.delay)
	return status.FileReport{Path: path, Status: status.StatusMigrated}
}

func paths(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("src/File%02d.tsx", i)
	}
	return out
}

func TestOperationRunner_Concurrency(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		wantMaxPeak int32
	}{
		{name: "sequential", concurrency: 1, wantMaxPeak: 1},
		{name: "zero_means_sequential", concurrency: 0, wantMaxPeak: 1},
		{name: "bounded", concurrency: 3, wantMaxPeak: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &fakeOperation{delay: 5 * time.Millisecond}
			files := paths(12)

			var reported atomic.Int32
			reporter := ReporterFunc(func(ctx context.Context, r status.FileReport) {
				reported.Add(1)
			})

			reports := NewRunner(tt.concurrency, reporter).Run(context.Background(), op, files)
			require.Len(t, reports, len(files))
			for i, r := range reports {
				assert.Equal(t, files[i], r.Path, "reports keep input order")
			}
			assert.Equal(t, int32(len(files)), op.calls.Load())
			assert.Equal(t, int32(len(files)), reported.Load())
			assert.LessOrEqual(t, op.peak.Load(), tt.wantMaxPeak)
		})
	}
}

func TestOperationRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	files := paths(6)
	op := &fakeOperation{onCall: func(path string) {
		if path == files[1] {
			cancel()
		}
	}}

	reports := NewRunner(1, nil).Run(ctx, op, files)
	require.Len(t, reports, len(files))

	assert.Equal(t, status.StatusMigrated, reports[0].Status)
	assert.Equal(t, status.StatusMigrated, reports[1].Status, "a started file finishes")
	for _, r := range reports[2:] {
		assert.Equal(t, status.StatusFailed, r.Status, r.Path)
		require.Error(t, r.Err)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Equal(t, int32(2), op.calls.Load())
	assert.True(t, status.Summarize(reports).HasFailures())
}

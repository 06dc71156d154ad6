////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Triggers inside one window collapse into at most one trailing call.
func TestThrottle_Trigger(t *testing.T) {
	var calls int32
	window := 100 * time.Millisecond
	th := newThrottle("test", window, func() { atomic.AddInt32(&calls, 1) })
	defer th.Close()

	for i := 0; i < 10; i++ {
		require.True(t, th.Trigger())
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 1 },
		time.Second, 5*time.Millisecond)

	time.Sleep(3 * window)
	n := atomic.LoadInt32(&calls)
	if n < 1 || n > 2 {
		t.Errorf("Unexpected number of calls.\nexpected: 1 or 2\nreceived: %d", n)
	}

	// A later trigger still goes through.
	require.True(t, th.Trigger())
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == n+1 },
		time.Second, 5*time.Millisecond)
}

// Close stops the worker and rejects further triggers.
func TestThrottle_Close(t *testing.T) {
	th := newThrottle("test", time.Hour, func() {})
	require.True(t, th.Trigger())
	th.Close()
	th.Close()

	require.False(t, th.Trigger())
	require.NoError(t, th.Stoppable().WaitForStopped(time.Second))
}

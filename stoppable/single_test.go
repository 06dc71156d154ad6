////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package stoppable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Tests that NewSingle returns a running Single with the given name.
func TestNewSingle(t *testing.T) {
	name := "testSingle"
	single := NewSingle(name)

	if single.Name() != name {
		t.Errorf("NewSingle returned Single with incorrect name."+
			"\nexpected: %s\nreceived: %s", name, single.Name())
	}
	if !single.IsRunning() {
		t.Errorf("NewSingle returned Single with incorrect status."+
			"\nexpected: %s\nreceived: %s", Running, single.GetStatus())
	}
}

// Tests the full lifecycle of a Single driving a goroutine.
func TestSingle_Close(t *testing.T) {
	single := NewSingle("testSingle")

	go func() {
		<-single.Quit()
		single.ToStopped()
	}()

	require.NoError(t, single.Close())
	require.NoError(t, single.WaitForStopped(time.Second))
	require.True(t, single.IsStopped())

	// Repeated closes are ignored
	require.NoError(t, single.Close())
}

// Tests that WaitForStopped times out when the goroutine never stops.
func TestSingle_WaitForStopped_Timeout(t *testing.T) {
	single := NewSingle("testSingle")
	require.NoError(t, single.Close())
	require.Error(t, single.WaitForStopped(10*time.Millisecond))
	require.Equal(t, Stopping, single.GetStatus())
}

// Tests that ToStopped panics when the Single is still running.
func TestSingle_ToStopped_NotStopping(t *testing.T) {
	single := NewSingle("testSingle")
	require.Panics(t, single.ToStopped)
}

// Tests Status.String.
func TestStatus_String(t *testing.T) {
	require.Equal(t, "running", Running.String())
	require.Equal(t, "stopping", Stopping.String())
	require.Equal(t, "stopped", Stopped.String())
	require.Equal(t, "INVALID STATUS", Status(9).String())
}

//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := startWithFixtures(t, nil, nil)

	// Set up exit monitoring before sending 'q'
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// 'q' is text while the search field has focus
	require.NoError(t, tf.Results())
	t.Logf("Sending 'q' to quit application...")
	require.NoError(t, tf.Quit())

	select {
	case exitErr := <-done:
		if exitErr == nil {
			t.Logf("Process exited cleanly with 'q' command")
		} else {
			t.Logf("Process exited with 'q' command (exit code: %v)", exitErr)
		}
		return
	case <-time.After(1500 * time.Millisecond):
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		_ = tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		_ = tf.SendCtrlC()
	}
}

func TestCtrlCExitsFromSearchField(t *testing.T) {
	t.Parallel()
	tf := startWithFixtures(t, nil, nil)

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.SendKeys("half typed"))
	require.NoError(t, tf.SendCtrlC())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after ctrl+c")
	}
}

func TestFirstRunWritesDefaultConfig(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	cfgPath := filepath.Join(tf.workspace, "custom.toml")
	require.NoError(t, tf.StartApp("-config", cfgPath))
	require.True(t, tf.Ready(), "app should render")

	require.Eventually(t, func() bool {
		_, err := os.Stat(cfgPath)
		return err == nil
	}, 3*time.Second, 25*time.Millisecond, "default config should be written")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()
	require.NoError(t, tf.SendCtrlC())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after ctrl+c")
	}
}

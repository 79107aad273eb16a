// console.go - Interactive raw-terminal console for live plane control
//
// Adapted from terminal_host.go's TerminalHost: same raw-mode-stdin +
// goroutine-read-loop shape, restoring terminal state on Stop, but routing
// single keystrokes to engine actions (toggle degrade, add/remove a
// backdrop plane) instead of a TERM_IN/TERM_KEY_IN MMIO device.

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/scanvideo/engine/video"
)

// console reads raw stdin and routes single keystrokes into engine actions.
// Only instantiated in main() for interactive use — never in tests.
type console struct {
	engine   *video.Engine
	backdrop *video.PlaneRef

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

func newConsole(e *video.Engine) *console {
	return &console{
		engine: e,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw mode and begins reading keystrokes in a
// goroutine. Call Stop to restore stdin.
func (c *console) Start() {
	c.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "console: failed to set raw mode: %v\n", err)
		close(c.done)
		return
	}
	c.oldTermState = oldState

	if err := syscall.SetNonblock(c.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "console: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(c.fd, c.oldTermState)
		c.oldTermState = nil
		close(c.done)
		return
	}
	c.nonblockSet = true

	go func() {
		defer close(c.done)
		buf := make([]byte, 1)
		for {
			select {
			case <-c.stopCh:
				return
			default:
			}
			n, err := syscall.Read(c.fd, buf)
			if n > 0 {
				c.handleKey(buf[0])
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// handleKey maps one keystroke to an engine action. 'd' toggles the
// degrade (lockout) simulation; 'b' adds a solid backdrop, which is
// rendered after the planes already on screen and so covers them; 'r'
// removes it again.
func (c *console) handleKey(b byte) {
	switch b {
	case 'd':
		degraded = !degraded
		c.engine.Degrade(degraded)
	case 'b':
		if c.backdrop == nil {
			c.backdrop = c.engine.AddPlane(video.NewBackdrop(video.Color(0x001F), 8), false)
		}
	case 'r':
		if c.backdrop != nil {
			c.engine.RemovePlane(c.backdrop, false)
			c.backdrop = nil
		}
	}
}

var degraded bool

// Stop terminates the stdin reading goroutine and restores stdin to
// blocking, cooked mode.
func (c *console) Stop() {
	c.stopped.Do(func() {
		close(c.stopCh)
	})
	<-c.done
	if c.nonblockSet {
		_ = syscall.SetNonblock(c.fd, false)
		c.nonblockSet = false
	}
	if c.oldTermState != nil {
		_ = term.Restore(c.fd, c.oldTermState)
		c.oldTermState = nil
	}
}

//go:build unix

package backend

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// querySize asks the kernel for the window size of fd.
func querySize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// watchResize calls onResize on every SIGWINCH until the returned stop
// function is called.
func watchResize(onResize func()) (stop func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sig:
				onResize()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}

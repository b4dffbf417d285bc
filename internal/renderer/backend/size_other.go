//go:build !unix

package backend

import "golang.org/x/term"

func querySize(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}

// watchResize is a no-op without SIGWINCH; the size is re-read on demand.
func watchResize(func()) (stop func()) {
	return func() {}
}

package core

import "golang.org/x/sys/unix"

// newListenSocket opens a non-blocking, SO_REUSEPORT TCP listener bound
// to port. Every worker thread calls this independently and gets its
// own kernel-level accept queue for the same port — the load-balancing
// multi-listener model spec.md §7 calls for instead of a single shared
// listener handed out via SCM_RIGHTS or accept-mutex.
func newListenSocket(port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: port}); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.Listen(fd, 1024); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

// setConnSockOpts disables Nagle's algorithm and enables TCP keepalive
// on an accepted connection fd.
func setConnSockOpts(fd int) {
	unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
}

// errTryAgain is the sentinel acceptConn returns when the listen
// socket has no pending connection, so the caller knows to park on
// readability rather than treat it as a fatal accept error.
var errTryAgain = unix.EAGAIN

// acceptReadyEvents is the epoll event set the accept coroutine waits
// on between accept(2) calls.
const acceptReadyEvents = unix.EPOLLIN

// acceptConn accepts one pending connection as non-blocking.
func acceptConn(listenFd int) (int, error) {
	nfd, _, err := unix.Accept4(listenFd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return -1, err
	}
	return nfd, nil
}

// closeQuiet closes fd, discarding the error (used for cleanup paths
// where the original error already takes precedence).
func closeQuiet(fd int) {
	unix.Close(fd)
}

package base

import "golang.org/x/sys/unix"

// ioctlInq reports the unread bytes in the receive queue
const ioctlInq = unix.FIONREAD

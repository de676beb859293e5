// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package poller provides the readiness registry pipe endpoints
// register with: epoll on Linux, kqueue on Darwin and the BSDs. It
// implements api.Registry plus a Wait call that translates kernel
// events into api.Event values.
package poller

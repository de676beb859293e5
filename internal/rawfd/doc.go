// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package rawfd owns one raw OS descriptor at a time and mediates
// every syscall on it. A raw descriptor carries no type information;
// the FD wrapper is the only thing distinguishing a pipe end from any
// other open descriptor, so exactly-one-owner discipline is enforced
// here and nowhere else.
package rawfd

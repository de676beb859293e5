// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the capability interfaces and shared types of
// hioload-pipe: the readiness registry contract, the event source
// contract, interest sets, readiness events and the error model.
package api

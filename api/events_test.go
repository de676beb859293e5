// Package api tests interest sets and readiness events.
// Author: momentics <momentics@gmail.com>

package api_test

import (
	"strings"
	"testing"

	"github.com/momentics/hioload-pipe/api"
)

// TestInterestAccessors checks the bitset accessors and Or.
func TestInterestAccessors(t *testing.T) {
	if !api.Readable.IsReadable() || api.Readable.IsWritable() {
		t.Error("Readable reports wrong classes")
	}
	if !api.Writable.IsWritable() || api.Writable.IsReadable() {
		t.Error("Writable reports wrong classes")
	}

	both := api.Readable.Or(api.Writable)
	if !both.IsReadable() || !both.IsWritable() {
		t.Error("combined interest lost a class")
	}
}

// TestInterestString checks the readable forms.
func TestInterestString(t *testing.T) {
	cases := map[api.Interest]string{
		api.Readable:                  "READABLE",
		api.Writable:                  "WRITABLE",
		api.Readable.Or(api.Writable): "READABLE|WRITABLE",
		api.Interest(0):               "EMPTY",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Errorf("%b.String() = %q, want %q", uint8(in), got, want)
		}
	}
}

// TestEventFlags checks each flag maps to exactly its accessor.
func TestEventFlags(t *testing.T) {
	cases := []struct {
		flag api.EventFlag
		pick func(api.Event) bool
	}{
		{api.FlagReadable, api.Event.IsReadable},
		{api.FlagWritable, api.Event.IsWritable},
		{api.FlagError, api.Event.IsError},
		{api.FlagReadClosed, api.Event.IsReadClosed},
		{api.FlagWriteClosed, api.Event.IsWriteClosed},
	}
	for i, tc := range cases {
		ev := api.Event{Token: api.Token(i), Flags: tc.flag}
		if !tc.pick(ev) {
			t.Errorf("flag %b not reported by its accessor", uint8(tc.flag))
		}
		var count int
		for _, other := range cases {
			if other.pick(ev) {
				count++
			}
		}
		if count != 1 {
			t.Errorf("flag %b reported by %d accessors", uint8(tc.flag), count)
		}
	}
}

// TestEventString checks closure flags show up in the readable form.
func TestEventString(t *testing.T) {
	ev := api.Event{Token: 3, Flags: api.FlagReadable | api.FlagError | api.FlagReadClosed}
	s := ev.String()
	for _, part := range []string{"token=3", "readable", "error", "read-closed"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
	if strings.Contains(s, "writable") || strings.Contains(s, "write-closed") {
		t.Errorf("String() = %q reports unset flags", s)
	}
}

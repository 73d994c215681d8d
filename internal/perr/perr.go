// Copyright (c) go-ptc authors. All rights reserved.
// Licensed under the MIT License.

// Package perr provides a string-backed constant error type, so that the
// misuse sentinels in package ptc (already started, not started, negative
// slot count, push after shutdown) can be declared as constants and
// compared with errors.Is without an init-time allocation.
package perr

type Error string

func (e Error) Error() string {
	return string(e)
}

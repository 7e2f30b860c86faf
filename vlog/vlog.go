// Package vlog is the structured logger every package in this module
// reports non-fatal conditions through: a missing RGBA chunk falling back
// to the default palette, a dangling layer reference getting clamped, a
// merge needing to fall back to a nearest-color remap. Grounded on the
// avatar client's internal/logger package: a package-level *zap.Logger a
// host program can swap out, defaulting to a no-op so library use never
// forces output on a caller that hasn't asked for it.
package vlog

import "go.uber.org/zap"

// L is the logger every package calls through. It defaults to a no-op
// logger; callers that want output call SetLogger first.
var L = zap.NewNop()

// SetLogger installs l as the package-wide logger. Passing nil restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	L = l
}

// NewDevelopment builds and installs a human-readable console logger, the
// configuration a CLI or test binary reaches for.
func NewDevelopment() error {
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

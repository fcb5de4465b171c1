//go:build !linux

package project

import (
	"context"
	"errors"
)

func (w *Watcher) notify(ctx context.Context) error {
	return errors.New("no native file events on this platform")
}

//go:build linux

package project

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	watchMask  = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_CREATE | unix.IN_DELETE | unix.IN_MOVED_FROM
	changeMask = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_DELETE | unix.IN_MOVED_FROM
)

// notify watches every directory under the roots with inotify.
func (w *Watcher) notify(ctx context.Context) error {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return fmt.Errorf("inotify_init failed: %w", err)
	}
	defer unix.Close(fd)

	dirs := make(map[int]string)
	addDir := func(dir string) error {
		wd, err := unix.InotifyAddWatch(fd, dir, watchMask)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[wd] = dir
		return nil
	}
	for _, root := range w.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return addDir(path)
		})
		if err != nil {
			return err
		}
	}

	buf := make([]byte, (unix.SizeofInotifyEvent+unix.NAME_MAX+1)*16)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return fmt.Errorf("reading inotify events: %w", err)
		}

		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameStart := offset + unix.SizeofInotifyEvent
			nameEnd := nameStart + int(event.Len)
			offset = nameEnd
			if nameEnd > n {
				break
			}
			dir, ok := dirs[int(event.Wd)]
			if !ok {
				continue
			}
			name := strings.TrimRight(string(buf[nameStart:nameEnd]), "\x00")
			if name == "" {
				continue
			}
			path := filepath.Join(dir, name)

			if event.Mask&unix.IN_ISDIR != 0 {
				if event.Mask&(unix.IN_CREATE|unix.IN_MOVED_TO) != 0 && !strings.HasPrefix(name, ".") {
					if err := addDir(path); err != nil {
						w.Logger.Warn("watch", "err", err)
					}
				}
				continue
			}
			// IN_CREATE is followed by IN_CLOSE_WRITE once the file is written.
			if event.Mask&changeMask != 0 && isSource(path) {
				w.trigger(path)
			}
		}
	}
}

// Package watcher reports changes to descriptor directories with
// debouncing.
//
// Editors and launchctl touch files in bursts (temp file, rename, chmod).
// FileWatcher collects those events and calls back once things have been
// quiet for the debounce delay, with every path that changed.
//
//	w := watcher.NewWatcher(300*time.Millisecond, func(paths []string) {
//	    program.Send(changedMsg{paths})
//	})
//	if err := w.Watch(dirs...); err != nil {
//	    return err
//	}
//	defer w.Stop()
//
// Only *.plist files are reported. Hidden files are ignored, which also
// drops the temp files written during an atomic save.
package watcher

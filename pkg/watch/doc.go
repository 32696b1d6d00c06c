// Package watch reports changes to a flow file.
//
// It backs `sankey render --watch` and the preview server's live reload:
//
//	w, err := watch.New("energy.json", watch.WithOnChange(rerender))
//	if err != nil {
//		return err
//	}
//	if err := w.Start(); err != nil {
//		return err
//	}
//	defer w.Stop()
//
// Bursts of writes are coalesced by a [Debouncer]. On filesystems where
// fsnotify does not work, set SANKEY_FORCE_POLL=1 or use [WithPolling].
package watch

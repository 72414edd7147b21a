// Package watch rebuilds a collection whenever its artwork folders change.
//
//	w, err := watch.NewWatcher(settings, func(ctx context.Context) error {
//	    _, err := build.NewManager(settings, onProgress).Build(ctx)
//	    return err
//	}, onProgress)
//	if err != nil {
//	    return err
//	}
//	return w.Run(ctx)
//
// Events are debounced by settings.WatchDebounceMS. Files written by the
// build itself are ignored, so a rebuild never triggers another one.
package watch

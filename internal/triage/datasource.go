package triage

// ResolveDataSource picks the collection a view should read from: the
// demo collection when demo mode is active or the live collection is
// empty, the live collection otherwise.
func ResolveDataSource[T any](live, demo []T, isDemoMode bool) []T {
	if isDemoMode || len(live) == 0 {
		return demo
	}
	return live
}

// UsesDemoData reports whether ResolveDataSource would pick the demo
// collection for the given live collection.
func UsesDemoData[T any](live []T, isDemoMode bool) bool {
	return isDemoMode || len(live) == 0
}

package interfaces

// -----------------------------------------------------------------------------
// IRecorder receives operational measurements of the engine.
// -----------------------------------------------------------------------------

type IRecorder interface {
	ObserveRecompute(rng string, seconds float64)
	IncFallback(rng string)
	IncCache(hit bool)
	SetDatasetRows(n int)
	IncReload(ok bool)
}

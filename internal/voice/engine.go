package voice

// Handle controls one in-flight playback run
type Handle interface {
	// Pause gates frame sending without tearing the pipeline down
	Pause()
	// Resume lifts a pause
	Resume()
	// Stop kills the pipeline. After Stop returns, neither callback fires.
	Stop()
}

// Engine starts audio playback for one track over a voice transport.
// Start returns once the pipeline is launched; onStarted fires at most once,
// when audio actually begins, and onDone fires when the run ends naturally
// or with an error. Neither fires after Stop.
type Engine interface {
	Start(transport Transport, track *TrackEntry, onStarted func(), onDone func(error)) (Handle, error)
}

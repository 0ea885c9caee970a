package core

type Policy interface {
	ResetEpisode(*EpisodeContext)
	UpdateEpisode(*EpisodeContext)
	PickAction(*StepContext, State, []Action) Action
	// UpdateStep observes one transition and the reward it earned.
	UpdateStep(*StepContext, State, Action, float64, State)
	Reset()
}

type PolicyConstructor interface {
	NewPolicy() Policy
}

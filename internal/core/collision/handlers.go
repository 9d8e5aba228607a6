package collision

// RailHandler reports a rail hit. The car is meant to be destroyed.
func RailHandler(c Contact) {
	c.Emit(OutcomeRail.Diagnostic())
	c.Effects.CarDestroyed(c.Car, LabelRail)
}

// TrackStartHandler reports touching the start gate, which also destroys the car.
func TrackStartHandler(c Contact) {
	c.Emit(OutcomeStart.Diagnostic())
	c.Effects.CarDestroyed(c.Car, LabelTrackStart)
}

// TrackFinishHandler reports a finish; the car has succeeded.
func TrackFinishHandler(c Contact) {
	c.Emit(OutcomeFinish.Diagnostic())
	c.Effects.CarSucceeded(c.Car)
}

// CheckpointHandler reports reaching a checkpoint. Only active with WithCheckpoints.
func CheckpointHandler(c Contact) {
	c.Emit(OutcomeCheckpoint.Diagnostic())
	c.Effects.CheckpointReached(c.Car, c.Event.Other.ID())
}

package collision

import "github.com/zeusync/racetrack/internal/core/models"

// Effects are the gameplay consequences of a contact. The reactor only calls
// them; removing the car or granting success is up to the host.
type Effects interface {
	CarDestroyed(car models.EntityID, cause Label)
	CarSucceeded(car models.EntityID)
	CheckpointReached(car models.EntityID, checkpoint models.EntityID)
}

// NopEffects ignores every hook.
type NopEffects struct{}

func (NopEffects) CarDestroyed(models.EntityID, Label)                {}
func (NopEffects) CarSucceeded(models.EntityID)                       {}
func (NopEffects) CheckpointReached(models.EntityID, models.EntityID) {}

package pipeline

import (
	"git.home.luguber.info/inful/gitin/internal/config"
	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

// State is threaded through the stages of one repository run.
type State struct {
	Config   *config.Config
	DestRoot string
	Source   string

	// Desc is set by the init stage.
	Desc   *repo.Descriptor
	Report *Report

	emitter  Emitter
	recorder metrics.Recorder
	observer Observer
}

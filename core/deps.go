package core

import "pkt.systems/pslog"

// ServiceDeps captures optional dependencies for the core service.
type ServiceDeps struct {
	Files     FileStore
	Registry  SessionRegistry
	Surfaces  SurfaceFactory
	Prompter  Prompter
	EventSink EventSink
	Logger    pslog.Logger
}

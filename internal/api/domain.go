package api

import (
	"github.com/aarnav1729/qap/internal/qaps"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	QAPs qaps.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	qapSystem := qaps.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		QAPs: qapSystem,
	}
}

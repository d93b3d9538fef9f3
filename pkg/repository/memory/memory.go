package memory

import (
	"github.com/spendgraph/spendgraph/pkg/domain/interfaces"
)

// Memory is an in-memory Repository used by tests and local runs
type Memory struct {
	graph *graphRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		graph: newGraphRepository(),
	}
}

func (m *Memory) Graph() interfaces.GraphRepository {
	return m.graph
}

func (m *Memory) Close() error {
	return nil
}

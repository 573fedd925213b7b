package mocks

import (
	"context"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock for project.Repository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Load(ctx context.Context) (project.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(project.Snapshot); ok {
		return snap, args.Error(1)
	}
	return project.Snapshot{}, args.Error(1)
}

func (m *SnapshotRepository) Save(ctx context.Context, snap project.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

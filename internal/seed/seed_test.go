package seed_test

import (
	"context"
	"testing"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/seed"
	"github.com/stretchr/testify/require"
)

func TestGenerate_BuildsConsistentForest(t *testing.T) {
	ctx := context.Background()
	svc := project.NewService(nil, nil, project.WithDemoFallback(false))

	gen := seed.NewGenerator(svc, seed.Options{Roots: 4, MaxDepth: 2, MaxChildren: 3, MaxItems: 3, Seed: 42})
	res, err := gen.Generate(ctx)
	require.NoError(t, err)

	require.Len(t, res.RootIDs, 4)
	all := svc.GetAll(ctx)
	require.Len(t, all, res.Projects)
	require.NoError(t, project.Validate(all))

	items := 0
	for _, p := range all {
		items += p.TotalItems
		require.LessOrEqual(t, p.Level, 2)
	}
	require.Equal(t, res.Items, items)

	tree := svc.GetTree(ctx, nil)
	require.Len(t, tree, 4)
	for i, node := range tree {
		require.Equal(t, res.RootIDs[i], node.Project.ID)
	}
}

func TestGenerate_SameSeedSameShape(t *testing.T) {
	ctx := context.Background()
	opts := seed.Options{Roots: 3, MaxDepth: 2, MaxChildren: 2, MaxItems: 2, Seed: 7}

	a := project.NewService(nil, nil, project.WithDemoFallback(false))
	resA, err := seed.NewGenerator(a, opts).Generate(ctx)
	require.NoError(t, err)

	b := project.NewService(nil, nil, project.WithDemoFallback(false))
	resB, err := seed.NewGenerator(b, opts).Generate(ctx)
	require.NoError(t, err)

	require.Equal(t, resA.Projects, resB.Projects)
	require.Equal(t, resA.Items, resB.Items)
}

func TestGenerate_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := project.NewService(nil, nil, project.WithDemoFallback(false))
	_, err := seed.NewGenerator(svc, seed.Options{Roots: 2, Seed: 1}).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, svc.GetAll(context.Background()))
}

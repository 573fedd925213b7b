package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/export"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newService(t *testing.T) *project.Service {
	t.Helper()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	clock := func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return project.NewService(nil, nil, project.WithClock(clock), project.WithDemoFallback(false))
}

func TestWrite_ProjectsInTreeOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	root, err := svc.Create(ctx, project.CreateRequest{Name: "Flotte", Type: project.TypeInsurance})
	require.NoError(t, err)
	child, err := svc.Create(ctx, project.CreateRequest{Name: "Sinistre", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, project.CreateRequest{Name: "Audit", Status: project.StatusCompleted})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, child.ID, project.ItemInput{Title: "Constat"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(ctx, svc, nil, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows(export.ProjectsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "ID", rows[0][0])
	require.Equal(t, "Name", rows[0][1])

	require.Equal(t, []string{root.ID, "Flotte", "0", "insurance"}, rows[1][:4])
	require.Equal(t, []string{child.ID, "Sinistre", "1"}, rows[2][:3])
	require.Equal(t, root.ID, rows[2][6])
	require.Equal(t, "1", rows[2][7])
	require.Equal(t, "Audit", rows[3][1])

	styleID, err := wb.GetCellStyle(export.ProjectsSheet, "B3")
	require.NoError(t, err)
	style, err := wb.GetStyle(styleID)
	require.NoError(t, err)
	require.Equal(t, 1, style.Alignment.Indent)
}

func TestWrite_StatisticsSheet(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Create(ctx, project.CreateRequest{Name: "A", Status: project.StatusActive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, project.CreateRequest{Name: "B", Status: project.StatusCompleted})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(ctx, svc, nil, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows(export.StatisticsSheet)
	require.NoError(t, err)

	values := map[string]string{}
	for _, r := range rows[1:] {
		values[r[0]] = r[1]
	}
	require.Equal(t, "2", values["Total projects"])
	require.Equal(t, "1", values["Active projects"])
	require.Equal(t, "1", values["Completed projects"])
	require.Equal(t, "1", values["Status: completed"])
	require.Equal(t, "0", values["Status: on_hold"])
	require.Equal(t, "0", values["Type: legal"])
}

func TestWrite_Filtered(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, err := svc.Create(ctx, project.CreateRequest{Name: "Finance", Type: project.TypeFinance})
	require.NoError(t, err)
	_, err = svc.Create(ctx, project.CreateRequest{Name: "Legal", Type: project.TypeLegal})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(ctx, svc, &project.Filter{Type: []project.Type{project.TypeLegal}}, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows(export.ProjectsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Legal", rows[1][1])
}

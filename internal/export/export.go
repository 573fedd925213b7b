// Package export renders the project store as an Excel workbook.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/xuri/excelize/v2"
)

const (
	ProjectsSheet   = "Projects"
	StatisticsSheet = "Statistics"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Source is the read side of the project store used for export.
type Source interface {
	GetTree(ctx context.Context, f *project.Filter) []*project.TreeNode
	GetStatistics(ctx context.Context) project.Statistics
}

var projectHeaders = []string{
	"ID", "Name", "Level", "Type", "Status", "Priority", "Parent",
	"Items", "Completed Items", "Files", "Size (bytes)", "Created By", "Created At", "Updated At",
}

// Write builds the workbook for the projects matching f and writes it to w.
func Write(ctx context.Context, src Source, f *project.Filter, w io.Writer) error {
	wb, err := Workbook(ctx, src, f)
	if err != nil {
		return err
	}
	defer wb.Close()

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Workbook builds a workbook with one row per project in tree order, names
// indented by level, and a statistics sheet. The caller must Close it.
func Workbook(ctx context.Context, src Source, f *project.Filter) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", ProjectsSheet); err != nil {
		wb.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	w := &sheetWriter{file: wb, indents: map[int]int{}}
	if err := w.projects(src.GetTree(ctx, f)); err != nil {
		wb.Close()
		return nil, err
	}
	if err := w.statistics(src.GetStatistics(ctx)); err != nil {
		wb.Close()
		return nil, err
	}
	return wb, nil
}

type sheetWriter struct {
	file    *excelize.File
	header  int
	indents map[int]int
	row     int
}

func (w *sheetWriter) headerStyle() (int, error) {
	if w.header != 0 {
		return w.header, nil
	}
	id, err := w.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("create header style: %w", err)
	}
	w.header = id
	return id, nil
}

func (w *sheetWriter) indentStyle(level int) (int, error) {
	if id, ok := w.indents[level]; ok {
		return id, nil
	}
	id, err := w.file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Indent: level},
	})
	if err != nil {
		return 0, fmt.Errorf("create indent style: %w", err)
	}
	w.indents[level] = id
	return id, nil
}

func (w *sheetWriter) writeHeader(sheet string, headers []string) error {
	style, err := w.headerStyle()
	if err != nil {
		return err
	}
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return w.file.SetCellStyle(sheet, "A1", last+"1", style)
}

func (w *sheetWriter) projects(roots []*project.TreeNode) error {
	if err := w.writeHeader(ProjectsSheet, projectHeaders); err != nil {
		return err
	}
	w.row = 2

	var walk func(nodes []*project.TreeNode) error
	walk = func(nodes []*project.TreeNode) error {
		for _, n := range nodes {
			if err := w.projectRow(&n.Project); err != nil {
				return err
			}
			if err := walk(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(roots); err != nil {
		return err
	}

	_ = w.file.SetColWidth(ProjectsSheet, "A", "A", 38)
	_ = w.file.SetColWidth(ProjectsSheet, "B", "B", 40)
	_ = w.file.SetColWidth(ProjectsSheet, "C", "N", 14)
	return w.file.SetPanes(ProjectsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) projectRow(p *project.Project) error {
	parent := ""
	if p.ParentID != nil {
		parent = *p.ParentID
	}
	values := []any{
		p.ID, p.Name, p.Level, string(p.Type), string(p.Status), string(p.Priority), parent,
		p.TotalItems, p.CompletedItems, p.TotalFiles, p.TotalSize, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	}
	cell, _ := excelize.CoordinatesToCellName(1, w.row)
	if err := w.file.SetSheetRow(ProjectsSheet, cell, &values); err != nil {
		return fmt.Errorf("write project %s: %w", p.ID, err)
	}

	style, err := w.indentStyle(p.Level)
	if err != nil {
		return err
	}
	nameCell, _ := excelize.CoordinatesToCellName(2, w.row)
	if err := w.file.SetCellStyle(ProjectsSheet, nameCell, nameCell, style); err != nil {
		return fmt.Errorf("style project %s: %w", p.ID, err)
	}
	w.row++
	return nil
}

func (w *sheetWriter) statistics(stats project.Statistics) error {
	if _, err := w.file.NewSheet(StatisticsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := w.writeHeader(StatisticsSheet, []string{"Metric", "Value"}); err != nil {
		return err
	}

	rows := [][]any{
		{"Total projects", stats.TotalProjects},
		{"Active projects", stats.ActiveProjects},
		{"Completed projects", stats.CompletedProjects},
		{"Total items", stats.TotalItems},
		{"Total files", stats.TotalFiles},
		{"Total size (bytes)", stats.TotalSize},
		{"Average completion (days)", stats.AverageCompletionDays},
	}
	for _, t := range project.Types {
		rows = append(rows, []any{"Type: " + string(t), stats.ProjectsByType[t]})
	}
	for _, s := range project.Statuses {
		rows = append(rows, []any{"Status: " + string(s), stats.ProjectsByStatus[s]})
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetSheetRow(StatisticsSheet, cell, &r); err != nil {
			return fmt.Errorf("write statistics: %w", err)
		}
	}
	return w.file.SetColWidth(StatisticsSheet, "A", "A", 28)
}

package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/claude/liftlog/internal/models"
)

var csvHeader = []string{
	"Data", "Treino", "Duração (min)", "Peso Total (kg)",
	"Séries Completadas", "Total Séries",
}

// WriteCSV streams the window's sessions as CSV, one row per session,
// newest first as stored.
func (r *Reporter) WriteCSV(ctx context.Context, w io.Writer, userID int, now time.Time) error {
	sessions, err := r.windowSessions(ctx, userID, now)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, s := range sessions {
		row := []string{
			s.CompletedAt.Format("02/01/2006"),
			s.WorkoutName,
			fmt.Sprintf("%d", s.DurationSec/60),
			fmt.Sprintf("%.1f", s.TotalWeight),
			fmt.Sprintf("%d", s.CompletedSets),
			fmt.Sprintf("%d", s.TotalSets),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var printableTmpl = template.Must(template.New("printable").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório de Progresso</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #999; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #eee; }
.summary { margin-top: 1rem; }
@media print { body { margin: 0.5rem; } }
</style>
</head>
<body>
<h1>Relatório de Progresso - últimos {{.WindowDays}} dias</h1>
<p>Gerado em {{.GeneratedAt}}</p>
<table>
<tr><th>Data</th><th>Treino</th><th>Duração (min)</th><th>Peso Total (kg)</th><th>Séries Completadas</th><th>Total Séries</th></tr>
{{range .Sessions}}<tr><td>{{.Date}}</td><td>{{.Name}}</td><td>{{.Minutes}}</td><td>{{.Weight}}</td><td>{{.CompletedSets}}</td><td>{{.TotalSets}}</td></tr>
{{else}}<tr><td colspan="6">Nenhum treino no período.</td></tr>
{{end}}</table>
<div class="summary">
<p><strong>Treinos:</strong> {{.Summary.Workouts}} |
<strong>Minutos:</strong> {{.Summary.Minutes}} |
<strong>Peso total:</strong> {{.Summary.TotalWeight}} kg |
<strong>Séries completadas:</strong> {{.Summary.CompletedSets}}</p>
</div>
</body>
</html>
`))

type printableRow struct {
	Date          string
	Name          string
	Minutes       int
	Weight        string
	CompletedSets int
	TotalSets     int
}

type printableData struct {
	WindowDays  int
	GeneratedAt string
	Sessions    []printableRow
	Summary     Summary
}

// WritePrintable renders the window's sessions and summary as a
// standalone HTML document suited for printing.
func (r *Reporter) WritePrintable(ctx context.Context, w io.Writer, userID int, now time.Time) error {
	sessions, err := r.windowSessions(ctx, userID, now)
	if err != nil {
		return err
	}

	data := printableData{
		WindowDays:  WindowDays,
		GeneratedAt: now.Format("02/01/2006 15:04"),
		Sessions:    make([]printableRow, 0, len(sessions)),
	}
	for _, s := range sessions {
		data.Sessions = append(data.Sessions, printableRow{
			Date:          s.CompletedAt.Format("02/01/2006"),
			Name:          s.WorkoutName,
			Minutes:       s.DurationSec / 60,
			Weight:        fmt.Sprintf("%.1f", s.TotalWeight),
			CompletedSets: s.CompletedSets,
			TotalSets:     s.TotalSets,
		})
		data.Summary.Workouts++
		data.Summary.Minutes += s.DurationSec / 60
		data.Summary.TotalWeight += s.TotalWeight
		data.Summary.CompletedSets += s.CompletedSets
	}
	return printableTmpl.Execute(w, data)
}

func (r *Reporter) windowSessions(ctx context.Context, userID int, now time.Time) ([]models.CompletedSession, error) {
	start := dayStart(now).AddDate(0, 0, -(WindowDays - 1))
	return r.store.ListHistorySince(ctx, userID, start)
}

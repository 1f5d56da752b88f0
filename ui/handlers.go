package ui

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/gomarkdown/markdown"

	"gorelate/adapters/excel"
	"gorelate/domain/assoc"
	"gorelate/domain/column"
	"gorelate/domain/table"
	"gorelate/internal/session"
	"gorelate/ports"
)

// columnView is one row of the column list on the index page.
type columnView struct {
	Name        string
	Type        column.ColumnType
	Meta        column.DisplayMeta
	Selected    bool
	Recommended bool
}

type indexData struct {
	HasDataset bool
	Filename   string
	RowCount   int
	Columns    []columnView
	Error      string
	Progress   session.Progress
	HasResults bool
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := a.sessionFor(w, r)
	tbl, filename := sess.Dataset()
	types := sess.Types()
	sel := sess.Selection()

	data := indexData{
		Filename:   filename,
		Error:      r.URL.Query().Get("error"),
		Progress:   sess.Progress(),
		HasResults: sess.Snapshot() != nil,
	}
	if tbl != nil {
		data.HasDataset = true
		data.RowCount = len(tbl.Rows)
		for _, col := range tbl.Columns {
			t := types[col]
			data.Columns = append(data.Columns, columnView{
				Name:        col,
				Type:        t,
				Meta:        column.Display(t),
				Selected:    sel.Contains(col),
				Recommended: t.Categorizable(),
			})
		}
	}

	a.render(w, "index.html", data)
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := a.sessionFor(w, r)

	if err := r.ParseMultipartForm(a.maxUpload); err != nil {
		redirectError(w, r, "upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("dataset")
	if err != nil {
		redirectError(w, r, "no file provided")
		return
	}
	defer file.Close()

	tbl, err := excel.ReadUpload(file, header.Filename)
	if err != nil {
		log.Printf("[UI] Upload of %s failed: %v", header.Filename, err)
		redirectError(w, r, err.Error())
		return
	}
	if tbl.IsEmpty() {
		redirectError(w, r, "the uploaded dataset has no data rows")
		return
	}

	sess.SetDataset(header.Filename, tbl)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess := a.sessionFor(w, r)
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "malformed form submission")
		return
	}

	tbl, _ := sess.Dataset()
	sel := table.Selection(r.Form["columns"])
	if err := sel.Validate(tbl); err != nil {
		redirectError(w, r, err.Error())
		return
	}
	sess.SetSelection(sel)

	// The analyzer blocks until terminal; run it off-request so the results
	// page can poll progress meanwhile.
	go func() {
		if err := a.service.Run(context.Background(), sess); err != nil {
			log.Printf("[UI] Analysis failed: %v", err)
		}
	}()

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (a *App) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess := a.sessionFor(w, r)
	p := sess.Progress()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"running":         p.Running,
		"percent":         p.Percent,
		"steps_completed": p.StepsCompleted,
		"eta":             p.ETASeconds,
		"error":           p.Error,
		"done":            sess.Snapshot() != nil,
	})
}

func (a *App) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := a.service.History(r.Context(), 20)
	if err != nil {
		http.Error(w, "failed to load run history", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*ports.AnalysisRun{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// matrixView prepares the symmetric matrix for the template.
type matrixView struct {
	Columns []string
	Rows    []matrixRow
}

type matrixRow struct {
	Column string
	Cells  []matrixCellView
}

type matrixCellView struct {
	Row        string
	Col        string
	Value      float64
	Color      string
	Diagonal   bool
	HasDetails bool
}

type resultsData struct {
	Running         bool
	Error           string
	HasSnapshot     bool
	ReportHTML      template.HTML
	AverageStrength float64
	AverageBucket   assoc.StrengthBucket
	ValidPairs      int
	Overview        []assoc.RankedResult
	Strongest       []assoc.RankedResult
	Matrix          matrixView
}

func (a *App) handleResults(w http.ResponseWriter, r *http.Request) {
	sess := a.sessionFor(w, r)
	snap := sess.Snapshot()
	progress := sess.Progress()

	data := resultsData{
		Running: progress.Running,
		Error:   progress.Error,
	}
	if snap != nil {
		agg := snap.Aggregate
		data.HasSnapshot = true
		data.ReportHTML = template.HTML(markdown.ToHTML([]byte(snap.Report), nil, nil))
		data.AverageStrength = snap.Result.AverageStrength
		data.AverageBucket = assoc.BucketFor(snap.Result.AverageStrength)
		data.ValidPairs = snap.Result.ValidPairs
		data.Overview = agg.TopN(assoc.TopOverview)
		data.Strongest = agg.TopN(assoc.TopStrongest)
		data.Matrix = buildMatrixView(agg)
	}

	a.render(w, "results.html", data)
}

func buildMatrixView(agg *assoc.Aggregate) matrixView {
	view := matrixView{Columns: agg.Columns()}
	for _, row := range agg.Columns() {
		mr := matrixRow{Column: row}
		for _, col := range agg.Columns() {
			cell, _ := agg.Cell(row, col)
			mr.Cells = append(mr.Cells, matrixCellView{
				Row:        row,
				Col:        col,
				Value:      cell.Value,
				Color:      bucketColors[assoc.BucketFor(cell.Value)],
				Diagonal:   row == col,
				HasDetails: cell.Details != nil,
			})
		}
		view.Rows = append(view.Rows, mr)
	}
	return view
}

type detailsData struct {
	Row    string
	Col    string
	Value  float64
	Bucket assoc.StrengthBucket
	Found  bool
	View   assoc.DetailView
}

func (a *App) handleDetails(w http.ResponseWriter, r *http.Request) {
	sess := a.sessionFor(w, r)
	snap := sess.Snapshot()
	if snap == nil {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}

	row := r.URL.Query().Get("row")
	col := r.URL.Query().Get("col")
	agg := snap.Aggregate

	data := detailsData{Row: row, Col: col}
	if cell, ok := agg.Cell(row, col); ok {
		data.Value = cell.Value
		data.Bucket = assoc.BucketFor(cell.Value)
	}
	if rec, ok := agg.Detail(row, col); ok {
		data.Found = true
		data.View = assoc.NewDetailView(rec, data.Bucket)
	}

	a.render(w, "details.html", data)
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// Package export renders filtered ledger entries into the supported
// interchange formats: CSV, a plain-text daily report, an XLSX
// workbook and a PDF report.
package export

import "github.com/solarwork/crewledger/internal/model"

const (
	unknownWorkerName  = "Unknown"
	unknownProjectName = "Unknown project"
)

// lookup resolves worker and project ids to display data. Deleted
// workers resolve to the unknown placeholder; the code snapshot on the
// entry itself is preferred where one exists.
type lookup struct {
	workers  map[string]model.Worker
	projects map[string]model.Project
}

func newLookup(workers []model.Worker, projects []model.Project) lookup {
	l := lookup{
		workers:  make(map[string]model.Worker, len(workers)),
		projects: make(map[string]model.Project, len(projects)),
	}
	for _, w := range workers {
		l.workers[w.ID] = w
	}
	for _, p := range projects {
		l.projects[p.ID] = p
	}
	return l
}

func (l lookup) workerName(id string) string {
	if w, ok := l.workers[id]; ok {
		return w.Name
	}
	return unknownWorkerName
}

func (l lookup) workerCode(id string) string {
	if w, ok := l.workers[id]; ok && w.Code != "" {
		return w.Code
	}
	return model.UnknownWorkerCode
}

func (l lookup) projectName(id string) string {
	if p, ok := l.projects[id]; ok {
		return p.Name
	}
	return unknownProjectName
}

package http

import (
	"context"
	"net/http"
	"strconv"

	"fintrack/internal/budget"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
)

func (s *Server) handleBudgetSignals(w http.ResponseWriter, r *http.Request) {
	signals, err := s.svc.BudgetSignals(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, signalsResponse{Signals: signals})
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.ListGoals(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, goalsResponse{Goals: goals, Progress: budget.GoalsProgress(goals)})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ins, err := s.svc.Insights(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	nw, err := s.svc.NetWorth(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, nw)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, hit, err := s.cachedReport(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, rep)
}

// cachedReport returns the report for the current ledger revision, building
// it on a miss. Any mutation bumps the revision, so stale entries are never
// served and simply age out.
func (s *Server) cachedReport(ctx context.Context) (report.Report, bool, error) {
	key := strconv.FormatUint(s.svc.Revision(), 10)
	if rep, ok := s.reportCache.Get(key); ok {
		return rep, true, nil
	}
	rep, err := s.svc.Report(ctx)
	if err != nil {
		return report.Report{}, false, err
	}
	s.reportCache.Set(key, rep)
	applog.FromContext(ctx).WithComponent(applog.ComponentCache).DebugContext(ctx, "Report cached",
		applog.FieldRevision, key)
	return rep, false, nil
}

package http

import (
	"fmt"
	"net/http"
	"strings"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, applog.OpClassify, err)
		return
	}
	desc := sanitizeInput(req.Description)
	if desc == "" {
		s.writeError(w, r, applog.OpClassify, invalid(core.ErrEmptyDescription))
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{Category: s.svc.Classify(desc)})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
		category, err := core.ParseCategory(c)
		if err != nil {
			s.writeError(w, r, applog.OpList, invalid(err))
			return
		}
		filtered := txs[:0]
		for _, tx := range txs {
			if tx.Category == category {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}
	writeJSON(w, http.StatusOK, transactionsResponse{Transactions: txs, Count: len(txs)})
}

// readTransaction decodes and validates a transaction body, classifying it
// when no category was given.
func (s *Server) readTransaction(w http.ResponseWriter, r *http.Request) (core.Transaction, error) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return core.Transaction{}, err
	}
	return s.buildTransaction(req)
}

func (s *Server) buildTransaction(req transactionRequest) (core.Transaction, error) {
	tx, err := req.toTransaction(s.now())
	if err != nil {
		return core.Transaction{}, err
	}
	if tx.Category == "" {
		tx.Category = s.svc.Classify(tx.Description)
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, invalid(err)
	}
	return tx, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.readTransaction(w, r)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	tx.ID = ""
	saved, err := s.svc.AddTransaction(r.Context(), tx)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	s.structured.LogTransaction(r.Context(), applog.OpCreate, saved.ID, saved.Amount.Cents, string(saved.Category))
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.readTransaction(w, r)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	tx.ID = r.PathValue("id")
	saved, err := s.svc.UpdateTransaction(r.Context(), tx)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	s.structured.LogTransaction(r.Context(), applog.OpUpdate, saved.ID, saved.Amount.Cents, string(saved.Category))
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.svc.DeleteTransaction(r.Context(), id); err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	s.structured.LogTransaction(r.Context(), applog.OpDelete, id, 0, "")
	w.WriteHeader(http.StatusNoContent)
}

// handleImportTransactions stores a JSON array of transactions atomically.
// Rows without a category are classified from their description.
func (s *Server) handleImportTransactions(w http.ResponseWriter, r *http.Request) {
	var reqs []transactionRequest
	if err := decodeJSON(w, r, &reqs); err != nil {
		s.writeError(w, r, applog.OpImport, err)
		return
	}
	txs := make([]core.Transaction, 0, len(reqs))
	for i, req := range reqs {
		tx, err := s.buildTransaction(req)
		if err != nil {
			s.writeError(w, r, applog.OpImport, invalid(fmt.Errorf("row %d: %w", i+1, err)))
			return
		}
		txs = append(txs, tx)
	}
	saved, err := s.svc.ImportTransactions(r.Context(), txs)
	if err != nil {
		s.writeError(w, r, applog.OpImport, err)
		return
	}
	writeJSON(w, http.StatusCreated, importResponse{Imported: saved, Count: len(saved)})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.ListAccounts(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, accountsResponse{Accounts: accounts, Count: len(accounts)})
}

func (s *Server) readAccount(w http.ResponseWriter, r *http.Request) (core.FinancialAccount, error) {
	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return core.FinancialAccount{}, err
	}
	return req.toAccount()
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.readAccount(w, r)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	saved, err := s.svc.AddAccount(r.Context(), a)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Account created",
		applog.FieldAccount, saved.ID,
		applog.FieldOperation, applog.OpCreate)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.readAccount(w, r)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	a.ID = r.PathValue("id")
	saved, err := s.svc.UpdateAccount(r.Context(), a)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.svc.ListBudgets(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetsResponse{Budgets: budgets})
}

// handlePutBudget creates or replaces the budget for a user and category.
func (s *Server) handlePutBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	b, err := req.toBudget()
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	saved, err := s.svc.PutBudget(r.Context(), b)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

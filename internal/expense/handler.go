package expense

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/hanifn/expense-log/internal/transport"
)

type ServiceAPI interface {
	Refresh() error
	Expenses() []*Expense
	Stats() Stats
	GetByID(id string) (*Expense, error)
	GetByDateRange(start, end string) ([]*Expense, error)
	GetByCategory(category string) ([]*Expense, error)
	Create(dto CreateExpenseDTO) (*Expense, error)
	Update(id string, dto UpdateExpenseDTO) (*Expense, error)
	Delete(id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Refresh(); err != nil {
		h.Logger.Error("GetExpenses: failed to refresh expenses", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	if start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end"); start != "" && end != "" {
		expenses, err := h.Service.GetByDateRange(start, end)
		if err != nil {
			h.Logger.Error("GetExpenses: service error", "error", err)
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, ExpensesResponse{Expenses: expenses, Stats: h.Service.Stats()})
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		expenses, err := h.Service.GetByCategory(category)
		if err != nil {
			h.Logger.Error("GetExpenses: service error", "error", err)
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, ExpensesResponse{Expenses: expenses, Stats: h.Service.Stats()})
		return
	}

	h.WriteJSON(w, http.StatusOK, ExpensesResponse{
		Expenses: h.Service.Expenses(),
		Stats:    h.Service.Stats(),
	})
}

// GetExpenseView resolves the table presentation for the current view
// parameters. The heavy lifting is the pure Present transformation; this
// handler only parses parameters and serves the result.
func (h *Handler) GetExpenseView(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Refresh(); err != nil {
		h.Logger.Error("GetExpenseView: failed to refresh expenses", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	params := parseViewParams(r)
	h.WriteJSON(w, http.StatusOK, Present(h.Service.Expenses(), params))
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	exp, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateExpense: expense created",
		"expense_id", exp.ID,
		"amount", exp.Amount,
		"category", exp.Category)

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseViewParams maps query parameters onto ViewParams, falling back to the
// default view for anything missing or unrecognized. Pages below 1 are
// treated as page 1; pages past the end are served as-is and come back empty.
func parseViewParams(r *http.Request) ViewParams {
	q := r.URL.Query()
	params := DefaultViewParams()

	params.Search = q.Get("search")
	params.Category = q.Get("category")
	params.DateStart = q.Get("date_start")
	params.DateEnd = q.Get("date_end")
	params.EditingID = q.Get("editing_id")

	switch SortField(q.Get("sort")) {
	case SortByTitle:
		params.SortField = SortByTitle
	case SortByAmount:
		params.SortField = SortByAmount
	case SortByCategory:
		params.SortField = SortByCategory
	case SortByDate:
		params.SortField = SortByDate
	}

	if SortDirection(q.Get("dir")) == SortAsc {
		params.SortDir = SortAsc
	}

	switch GroupMode(q.Get("group")) {
	case GroupMonth:
		params.GroupBy = GroupMonth
	case GroupCategory:
		params.GroupBy = GroupCategory
	}

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			params.Page = page
		}
	}

	return params
}

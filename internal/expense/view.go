package expense

import (
	"sort"
	"strings"
	"time"

	"github.com/hanifn/expense-log/internal/core/common/format"
)

// PageSize is the fixed number of rows per page in the ungrouped view.
const PageSize = 10

type SortField string

const (
	SortByTitle    SortField = "title"
	SortByAmount   SortField = "amount"
	SortByDate     SortField = "date"
	SortByCategory SortField = "category"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type GroupMode string

const (
	GroupNone     GroupMode = "none"
	GroupMonth    GroupMode = "month"
	GroupCategory GroupMode = "category"
)

// ViewParams are the ephemeral selections driving the table's presentation.
// Zero bounds mean unbounded; an empty Category means all; EditingID marks at
// most one row as being edited inline.
type ViewParams struct {
	Search    string        `json:"search"`
	Category  string        `json:"category"`
	DateStart string        `json:"date_start"`
	DateEnd   string        `json:"date_end"`
	SortField SortField     `json:"sort_field"`
	SortDir   SortDirection `json:"sort_dir"`
	GroupBy   GroupMode     `json:"group_by"`
	Page      int           `json:"page"`
	EditingID string        `json:"editing_id,omitempty"`
}

// DefaultViewParams is the view with all filters cleared: date descending,
// ungrouped, page 1.
func DefaultViewParams() ViewParams {
	return ViewParams{
		SortField: SortByDate,
		SortDir:   SortDesc,
		GroupBy:   GroupNone,
		Page:      1,
	}
}

// Row is one rendered table row.
type Row struct {
	Expense
	IsEditing bool `json:"is_editing,omitempty"`
}

// Group is one named bucket of rows with its member subtotal.
type Group struct {
	Label    string  `json:"label"`
	Subtotal float64 `json:"subtotal"`
	Rows     []Row   `json:"rows"`
}

// Presentation is the fully resolved table view: ordered groups of rows plus
// the aggregates over the filtered (pre-group, pre-page) set.
type Presentation struct {
	Groups      []Group `json:"groups"`
	TotalAmount float64 `json:"total_amount"`
	TotalCount  int     `json:"total_count"`
	TotalPages  int     `json:"total_pages"`
	Page        int     `json:"page"`
}

// Present transforms the raw expense list and view parameters into the exact
// ordered, grouped, paginated presentation. Pure: the input slice is never
// mutated and identical inputs yield identical results.
//
// Order of operations: filter, sort, group, paginate (ungrouped only),
// aggregate. Grouped modes render every bucket in full and ignore paging.
func Present(expenses []*Expense, params ViewParams) Presentation {
	filtered := filterExpenses(expenses, params)
	sortExpenses(filtered, params.SortField, params.SortDir)

	total := 0.0
	for _, e := range filtered {
		total += e.Amount
	}

	p := Presentation{
		TotalAmount: total,
		TotalCount:  len(filtered),
		Page:        params.Page,
	}

	if params.GroupBy == GroupMonth || params.GroupBy == GroupCategory {
		p.Groups = groupExpenses(filtered, params)
		return p
	}

	p.TotalPages = (len(filtered) + PageSize - 1) / PageSize
	p.Groups = []Group{{
		Label:    "All Expenses",
		Subtotal: total,
		Rows:     pageRows(filtered, params),
	}}
	return p
}

// UniqueCategories returns the distinct category names present in the list,
// sorted, for the filter dropdown.
func UniqueCategories(expenses []*Expense) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range expenses {
		if _, ok := seen[e.Category]; !ok {
			seen[e.Category] = struct{}{}
			names = append(names, e.Category)
		}
	}
	sort.Strings(names)
	return names
}

func filterExpenses(expenses []*Expense, params ViewParams) []*Expense {
	term := strings.ToLower(params.Search)

	var out []*Expense
	for _, e := range expenses {
		if term != "" {
			matches := strings.Contains(strings.ToLower(e.Title), term) ||
				strings.Contains(strings.ToLower(e.Category), term) ||
				(e.Note != "" && strings.Contains(strings.ToLower(e.Note), term))
			if !matches {
				continue
			}
		}

		if params.Category != "" && e.Category != params.Category {
			continue
		}

		// Lexicographic comparison equals chronological order because the
		// date format is fixed-width and zero-padded.
		if params.DateStart != "" && e.Date < params.DateStart {
			continue
		}
		if params.DateEnd != "" && e.Date > params.DateEnd {
			continue
		}

		out = append(out, e)
	}
	return out
}

// sortExpenses orders in place by the sort key. The sort is stable: rows with
// equal keys keep their filtered (date-descending fetch) order, so repeated
// renders never reshuffle ties.
func sortExpenses(expenses []*Expense, field SortField, dir SortDirection) {
	sort.SliceStable(expenses, func(i, j int) bool {
		a, b := expenses[i], expenses[j]
		var less bool
		switch field {
		case SortByAmount:
			less = a.Amount < b.Amount
			if a.Amount == b.Amount {
				return false
			}
		case SortByTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at == bt {
				return false
			}
			less = at < bt
		case SortByCategory:
			ac, bc := strings.ToLower(a.Category), strings.ToLower(b.Category)
			if ac == bc {
				return false
			}
			less = ac < bc
		default: // SortByDate
			ad, bd := dateInstant(a.Date), dateInstant(b.Date)
			if ad.Equal(bd) {
				return false
			}
			less = ad.Before(bd)
		}
		if dir == SortDesc {
			return !less
		}
		return less
	})
}

func dateInstant(iso string) time.Time {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return time.Time{}
	}
	return t
}

func groupExpenses(sorted []*Expense, params ViewParams) []Group {
	type bucket struct {
		label     string
		firstDate string
		rows      []Row
		subtotal  float64
	}

	index := make(map[string]*bucket)
	var order []*bucket

	for _, e := range sorted {
		var label string
		if params.GroupBy == GroupMonth {
			label = format.MonthLabel(e.Date)
		} else {
			label = e.Category
		}

		b, ok := index[label]
		if !ok {
			b = &bucket{label: label, firstDate: e.Date}
			index[label] = b
			order = append(order, b)
		}
		b.rows = append(b.rows, makeRow(e, params.EditingID))
		b.subtotal += e.Amount
	}

	if params.GroupBy == GroupMonth {
		// Month buckets are ordered by the date of each bucket's first
		// member, chronologically.
		sort.SliceStable(order, func(i, j int) bool {
			return dateInstant(order[i].firstDate).Before(dateInstant(order[j].firstDate))
		})
	} else {
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].label < order[j].label
		})
	}

	groups := make([]Group, len(order))
	for i, b := range order {
		groups[i] = Group{Label: b.label, Subtotal: b.subtotal, Rows: b.rows}
	}
	return groups
}

// pageRows slices out the requested 1-based page. Pages outside 1..totalPages
// yield an empty slice; nothing is clamped here, the caller's navigation is
// expected to stay in range.
func pageRows(sorted []*Expense, params ViewParams) []Row {
	start := (params.Page - 1) * PageSize
	if start < 0 || start >= len(sorted) {
		return []Row{}
	}
	end := start + PageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	rows := make([]Row, 0, end-start)
	for _, e := range sorted[start:end] {
		rows = append(rows, makeRow(e, params.EditingID))
	}
	return rows
}

func makeRow(e *Expense, editingID string) Row {
	return Row{
		Expense:   *e,
		IsEditing: editingID != "" && e.ID == editingID,
	}
}

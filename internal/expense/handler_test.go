package expense_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	"github.com/hanifn/expense-log/internal/expense"
	"github.com/hanifn/expense-log/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Expense Handler", func() {
	var (
		mockRepo *MockRepository
		router   *chi.Mux
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := expense.NewService(mockRepo, logger)
		handler := expense.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Get("/expenses", handler.GetExpenses)
		router.Get("/expenses/view", handler.GetExpenseView)
		router.Post("/expenses", handler.CreateExpense)
		router.Get("/expenses/{id}", handler.GetExpense)
		router.Patch("/expenses/{id}", handler.UpdateExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
	})

	Describe("GET /expenses", func() {
		BeforeEach(func() {
			mockRepo.AddExpense(&expense.Expense{ID: "e1", Title: "Coffee", Amount: 85.50, Date: "2024-01-16", Category: "Food & Dining"})
			mockRepo.AddExpense(&expense.Expense{ID: "e2", Title: "Bus", Amount: 45.00, Date: "2024-01-15", Category: "Transportation"})
		})

		It("should return the list with statistics", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp expense.ExpensesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Expenses).To(HaveLen(2))
			Expect(resp.Stats.TotalAmount).To(BeNumerically("~", 130.50, 1e-9))
			Expect(resp.Stats.TransactionCount).To(Equal(2))
		})

		It("should filter by date range when both bounds are given", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses?start=2024-01-16&end=2024-01-31", nil))

			var resp expense.ExpensesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Expenses).To(HaveLen(1))
			Expect(resp.Expenses[0].ID).To(Equal("e1"))
		})

		It("should filter by category", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses?category=Transportation", nil))

			var resp expense.ExpensesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Expenses).To(HaveLen(1))
			Expect(resp.Expenses[0].ID).To(Equal("e2"))
		})
	})

	Describe("GET /expenses/view", func() {
		BeforeEach(func() {
			mockRepo.AddExpense(&expense.Expense{ID: "e1", Title: "Coffee", Amount: 85.50, Date: "2024-01-16", Category: "Food & Dining"})
			mockRepo.AddExpense(&expense.Expense{ID: "e2", Title: "Bus", Amount: 45.00, Date: "2024-01-15", Category: "Transportation"})
		})

		It("should serve the default presentation", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/view", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var p expense.Presentation
			Expect(json.Unmarshal(rec.Body.Bytes(), &p)).To(Succeed())
			Expect(p.Groups).To(HaveLen(1))
			Expect(p.Groups[0].Label).To(Equal("All Expenses"))
			Expect(p.TotalAmount).To(BeNumerically("~", 130.50, 1e-9))
			Expect(p.Page).To(Equal(1))
		})

		It("should honor search, sort and group parameters", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/view?sort=amount&dir=asc&group=category", nil))

			var p expense.Presentation
			Expect(json.Unmarshal(rec.Body.Bytes(), &p)).To(Succeed())
			Expect(p.Groups).To(HaveLen(2))
			Expect(p.Groups[0].Label).To(Equal("Food & Dining"))
		})

		It("should fall back to defaults for unknown parameter values", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/view?sort=bogus&group=bogus&page=0", nil))

			var p expense.Presentation
			Expect(json.Unmarshal(rec.Body.Bytes(), &p)).To(Succeed())
			Expect(p.Page).To(Equal(1))
			Expect(p.Groups[0].Label).To(Equal("All Expenses"))
			Expect(p.Groups[0].Rows[0].ID).To(Equal("e1"))
		})

		It("should mark the row named by editing_id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/view?editing_id=e2", nil))

			var p expense.Presentation
			Expect(json.Unmarshal(rec.Body.Bytes(), &p)).To(Succeed())
			for _, row := range p.Groups[0].Rows {
				Expect(row.IsEditing).To(Equal(row.ID == "e2"))
			}
		})
	})

	Describe("GET /expenses/{id}", func() {
		BeforeEach(func() {
			mockRepo.AddExpense(&expense.Expense{ID: "e1", Title: "Coffee", Amount: 85.50, Date: "2024-01-16", Category: "Food & Dining"})
		})

		It("should return the expense", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/e1", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var exp expense.Expense
			Expect(json.Unmarshal(rec.Body.Bytes(), &exp)).To(Succeed())
			Expect(exp.Title).To(Equal("Coffee"))
		})

		It("should return 404 for an unknown id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/missing", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /expenses", func() {
		It("should create an expense and return 201", func() {
			body := `{"title":"Lunch","amount":12.5,"date":"2024-01-10","category":"Food & Dining","note":"with team"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var exp expense.Expense
			Expect(json.Unmarshal(rec.Body.Bytes(), &exp)).To(Succeed())
			Expect(exp.ID).NotTo(BeEmpty())
			Expect(exp.Amount).To(BeNumerically("~", 12.50, 1e-9))
		})

		It("should return 400 with field details for invalid input", func() {
			body := `{"title":"a","amount":-5,"date":"2024-01-10","category":"Food & Dining"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Error struct {
					Type    string `json:"type"`
					Details struct {
						Errors []struct {
							Field string `json:"field"`
							Code  string `json:"code"`
						} `json:"errors"`
					} `json:"details"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Error.Type).To(Equal("VALIDATION_ERROR"))

			fields := make([]string, 0, len(resp.Error.Details.Errors))
			for _, e := range resp.Error.Details.Errors {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(ConsistOf("title", "amount"))
		})

		It("should return 400 for a malformed body", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader("{not json")))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PATCH /expenses/{id}", func() {
		BeforeEach(func() {
			mockRepo.AddExpense(&expense.Expense{ID: "e1", Title: "Coffee", Amount: 4.50, Date: "2024-01-16", Category: "Food & Dining"})
		})

		It("should apply a partial update", func() {
			body := `{"title":"Espresso"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/expenses/e1", strings.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var exp expense.Expense
			Expect(json.Unmarshal(rec.Body.Bytes(), &exp)).To(Succeed())
			Expect(exp.Title).To(Equal("Espresso"))
			Expect(exp.Amount).To(BeNumerically("~", 4.50, 1e-9))
		})

		It("should return 404 for an unknown id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/expenses/missing", strings.NewReader(`{"title":"Espresso"}`)))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /expenses/{id}", func() {
		BeforeEach(func() {
			mockRepo.AddExpense(&expense.Expense{ID: "e1", Title: "Coffee", Amount: 4.50, Date: "2024-01-16", Category: "Food & Dining"})
		})

		It("should delete the expense", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/expenses/e1", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			all, err := mockRepo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("should return 404 for an unknown id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/expenses/missing", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})

package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	"github.com/hanifn/expense-log/internal/category"
	"github.com/hanifn/expense-log/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler", func() {
	var (
		mockRepo *MockRepository
		router   *chi.Mux
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := category.NewService(mockRepo, logger)
		handler := category.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Get("/categories", handler.GetCategories)
		router.Get("/categories/palette", handler.GetPalette)
		router.Post("/categories", handler.CreateCategory)
		router.Get("/categories/{id}", handler.GetCategory)
		router.Patch("/categories/{id}", handler.UpdateCategory)
		router.Delete("/categories/{id}", handler.DeleteCategory)
		router.Get("/categories/{id}/usage", handler.GetCategoryUsage)
	})

	Describe("GET /categories", func() {
		It("should return the category list", func() {
			mockRepo.AddCategory(&category.Category{ID: "cat-1", Name: "Travel", Color: "#0e7490"})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp category.CategoriesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Categories).To(HaveLen(1))
			Expect(resp.Categories[0].Name).To(Equal("Travel"))
		})
	})

	Describe("GET /categories/palette", func() {
		It("should return the fixed color table", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/palette", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp category.PaletteResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Colors).To(HaveLen(10))
			Expect(resp.Colors[0].Name).To(Equal("Food & Dining"))
		})
	})

	Describe("POST /categories", func() {
		It("should create a category and return 201", func() {
			body := `{"name":"Travel","color":"#0e7490"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var cat category.Category
			Expect(json.Unmarshal(rec.Body.Bytes(), &cat)).To(Succeed())
			Expect(cat.ID).NotTo(BeEmpty())
			Expect(cat.Name).To(Equal("Travel"))
		})

		It("should return 409 for a duplicate name", func() {
			mockRepo.AddCategory(&category.Category{ID: "cat-1", Name: "Travel", Color: "#0e7490"})
			refresh := httptest.NewRecorder()
			router.ServeHTTP(refresh, httptest.NewRequest(http.MethodGet, "/categories", nil))

			body := `{"name":"travel","color":"#0e7490"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should return 400 with field details for a bad submission", func() {
			body := `{"name":"a","color":"blue"}`
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body)))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Error struct {
					Details struct {
						Errors []struct {
							Field string `json:"field"`
						} `json:"errors"`
					} `json:"details"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())

			fields := make([]string, 0, len(resp.Error.Details.Errors))
			for _, e := range resp.Error.Details.Errors {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(ConsistOf("name", "color"))
		})
	})

	Describe("PATCH /categories/{id}", func() {
		BeforeEach(func() {
			mockRepo.AddCategory(&category.Category{ID: "cat-1", Name: "Travel", Color: "#0e7490"})
		})

		It("should rename the category", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/categories/cat-1", strings.NewReader(`{"name":"Trips"}`)))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var cat category.Category
			Expect(json.Unmarshal(rec.Body.Bytes(), &cat)).To(Succeed())
			Expect(cat.Name).To(Equal("Trips"))
			Expect(cat.Color).To(Equal("#0e7490"))
		})

		It("should return 404 for an unknown id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/categories/missing", strings.NewReader(`{"name":"Trips"}`)))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /categories/{id}", func() {
		BeforeEach(func() {
			mockRepo.AddCategory(&category.Category{ID: "cat-1", Name: "Travel", Color: "#0e7490"})
		})

		It("should delete an unused category", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/categories/cat-1", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should return 409 with the usage count when the category is in use", func() {
			mockRepo.SetUsage("cat-1", 2)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/categories/cat-1", nil))

			Expect(rec.Code).To(Equal(http.StatusConflict))

			var resp struct {
				Error struct {
					Code    string `json:"code"`
					Details struct {
						UsageCount int64 `json:"usage_count"`
					} `json:"details"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal("CATEGORY_IN_USE"))
			Expect(resp.Error.Details.UsageCount).To(Equal(int64(2)))
		})

		It("should return 404 for an unknown id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/categories/missing", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /categories/{id}/usage", func() {
		BeforeEach(func() {
			mockRepo.AddCategory(&category.Category{ID: "cat-1", Name: "Travel", Color: "#0e7490"})
			mockRepo.SetUsage("cat-1", 3)
		})

		It("should report the usage count", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/cat-1/usage", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp category.UsageResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.CategoryID).To(Equal("cat-1"))
			Expect(resp.UsageCount).To(Equal(int64(3)))
			Expect(resp.InUse).To(BeTrue())
		})
	})
})

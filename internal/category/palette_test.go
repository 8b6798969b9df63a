package category_test

import (
	"github.com/hanifn/expense-log/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Palette", func() {
	Describe("ColorFor", func() {
		It("should resolve a known category name", func() {
			set := category.ColorFor("Food & Dining")
			Expect(set.BgColor).To(Equal("#fffbeb"))
			Expect(set.TextColor).To(Equal("#b45309"))
			Expect(set.BorderColor).To(Equal("#fde68a"))
		})

		It("should match names case-insensitively", func() {
			Expect(category.ColorFor("travel")).To(Equal(category.ColorFor("Travel")))
			Expect(category.ColorFor("HEALTHCARE")).To(Equal(category.ColorFor("Healthcare")))
		})

		It("should fall back to Other's colors for unknown names", func() {
			unknown := category.ColorFor("Cryptozoology")
			Expect(unknown).To(Equal(category.ColorFor("Other")))
			Expect(unknown.TextColor).To(Equal("#374151"))
		})

		It("should never return an empty color set", func() {
			for _, name := range append(category.PaletteNames(), "", "anything") {
				set := category.ColorFor(name)
				Expect(set.BgColor).NotTo(BeEmpty())
				Expect(set.TextColor).NotTo(BeEmpty())
				Expect(set.BorderColor).NotTo(BeEmpty())
			}
		})
	})

	Describe("PaletteNames", func() {
		It("should list the ten fixed names in table order", func() {
			names := category.PaletteNames()
			Expect(names).To(HaveLen(10))
			Expect(names[0]).To(Equal("Food & Dining"))
			Expect(names[len(names)-1]).To(Equal("Other"))
		})
	})

	Describe("Palette", func() {
		It("should return a copy that does not alias the table", func() {
			first := category.Palette()
			first[0].Name = "tampered"
			Expect(category.Palette()[0].Name).To(Equal("Food & Dining"))
		})
	})
})

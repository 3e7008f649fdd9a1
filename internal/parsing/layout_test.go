package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClassifyLayout", func() {
	var (
		texts  []string
		layout Layout
	)

	JustBeforeEach(func() {
		layout = ClassifyLayout(NewTokens(texts))
	})

	When("no token contains a '#'", func() {
		BeforeEach(func() {
			texts = []string{"MyStore", "123 Main St", "Apples", "2.50"}
		})

		It("should classify the receipt as standard", func() {
			Expect(layout).To(Equal(LayoutStandard))
		})
	})

	When("the first token contains a '#'", func() {
		BeforeEach(func() {
			texts = []string{"Store #12", "Apples", "2.50"}
		})

		It("should classify the receipt as costco", func() {
			Expect(layout).To(Equal(LayoutCostco))
		})
	})

	When("only the last token contains a '#'", func() {
		BeforeEach(func() {
			texts = []string{"MyStore", "123 Main St", "Apples", "2.50", "Member #99"}
		})

		It("should classify the receipt as costco", func() {
			Expect(layout).To(Equal(LayoutCostco))
		})
	})

	When("the stream is empty", func() {
		BeforeEach(func() {
			texts = nil
		})

		It("should classify the receipt as standard", func() {
			Expect(layout).To(Equal(LayoutStandard))
		})
	})
})

var _ = Describe("NewTokens", func() {
	It("should number tokens by their index", func() {
		tokens := NewTokens([]string{"a", "b", "c"})
		Expect(tokens).To(Equal([]Token{
			{Text: "a", Position: 0},
			{Text: "b", Position: 1},
			{Text: "c", Position: 2},
		}))
	})
})

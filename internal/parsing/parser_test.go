package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-reader/internal/receipt"
)

// fixedExtractor returns a record tagged with its label
type fixedExtractor struct {
	label string
	calls int
}

func (f *fixedExtractor) Extract(fileName string, tokens []Token) *receipt.Record {
	f.calls++
	label := f.label
	return &receipt.Record{FileName: fileName, StoreName: &label}
}

var _ = Describe("Parser", func() {
	var (
		parser *Parser
		texts  []string
		record *receipt.Record
	)

	JustBeforeEach(func() {
		record = parser.Parse("receipts/a.jpg", texts)
	})

	Context("with the default layouts", func() {
		BeforeEach(func() {
			parser = NewParser()
		})

		When("the receipt has no '#'", func() {
			BeforeEach(func() {
				texts = []string{"MyStore", "123 Main St", "Apples", "2.50"}
			})

			It("should use the standard rules", func() {
				Expect(record).To(Equal(&receipt.Record{
					FileName:      "receipts/a.jpg",
					StoreName:     strPtr("MyStore"),
					StoreLocation: strPtr("123 Main St"),
					Groceries:     []receipt.LineItem{{Name: "Apples", Price: "2.50"}},
				}))
			})
		})

		When("the receipt has a '#'", func() {
			BeforeEach(func() {
				texts = []string{"Costco Wholesale", "Member", "456 Oak Ave", "#12345", "Bananas", "1.20"}
			})

			It("should use the costco rules", func() {
				Expect(record).To(Equal(&receipt.Record{
					FileName:      "receipts/a.jpg",
					StoreName:     strPtr("Costco: #12345"),
					StoreLocation: strPtr("456 Oak Ave"),
					Groceries:     []receipt.LineItem{{Name: "Bananas", Price: "1.20"}},
				}))
			})
		})
	})

	Context("with a custom layout", func() {
		var custom *fixedExtractor

		BeforeEach(func() {
			custom = &fixedExtractor{label: "custom"}
			parser = NewParser()
			parser.classify = func(tokens []Token) Layout {
				if len(tokens) > 0 && tokens[0].Text == "ALDI" {
					return "Aldi"
				}
				return ClassifyLayout(tokens)
			}
			parser.Register("Aldi", custom)
		})

		When("the classifier picks the new layout", func() {
			BeforeEach(func() {
				texts = []string{"ALDI", "1.00"}
			})

			It("should dispatch to the registered extractor", func() {
				Expect(custom.calls).To(Equal(1))
				Expect(record.StoreName).To(Equal(strPtr("custom")))
			})
		})

		When("the classifier picks a built-in layout", func() {
			BeforeEach(func() {
				texts = []string{"MyStore", "123 Main St"}
			})

			It("should leave the new extractor alone", func() {
				Expect(custom.calls).To(Equal(0))
				Expect(record.StoreName).To(Equal(strPtr("MyStore")))
			})
		})
	})

	Context("when the layout has no extractor", func() {
		BeforeEach(func() {
			parser = NewParserWithClassifier(func([]Token) Layout { return "Unknown" })
			parser.Register(LayoutStandard, StandardExtractor{})
			texts = []string{"MyStore", "123 Main St"}
		})

		It("should fall back to the standard rules", func() {
			Expect(record.StoreName).To(Equal(strPtr("MyStore")))
		})
	})

	Context("when nothing is registered", func() {
		BeforeEach(func() {
			parser = NewParserWithClassifier(ClassifyLayout)
			texts = []string{"MyStore"}
		})

		It("should return a record with only the file name", func() {
			Expect(record).To(Equal(&receipt.Record{FileName: "receipts/a.jpg"}))
		})
	})
})

package receipt

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.etcd.io/bbolt"
)

var _ = Describe("BoltCache", func() {
	var (
		tmpDir string
		dbPath string
		cache  *BoltCache
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		cache, err = NewBoltCache(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if cache != nil {
			cache.Close()
		}
	})

	Describe("Append", func() {
		var err error

		JustBeforeEach(func() {
			err = cache.Append(sampleRecord("receipts/a.jpg"), sampleRecord("receipts/b.jpg"))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should store the records", func() {
			records, allErr := cache.All()
			Expect(allErr).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})

		When("records already exist", func() {
			BeforeEach(func() {
				Expect(cache.Append(sampleRecord("receipts/first.jpg"))).To(Succeed())
			})

			It("should keep insertion order", func() {
				records, allErr := cache.All()
				Expect(allErr).NotTo(HaveOccurred())
				Expect(records).To(HaveLen(3))
				Expect(records[0].FileName).To(Equal("receipts/first.jpg"))
				Expect(records[1].FileName).To(Equal("receipts/a.jpg"))
				Expect(records[2].FileName).To(Equal("receipts/b.jpg"))
			})
		})
	})

	Describe("Has", func() {
		BeforeEach(func() {
			Expect(cache.Append(sampleRecord("/somewhere/receipts/a.jpg"))).To(Succeed())
		})

		It("should find records by base name", func() {
			found, err := cache.Has("a.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
		})

		It("should not find unknown names", func() {
			found, err := cache.Has("b.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
		})
	})

	Describe("All", func() {
		When("the cache is empty", func() {
			It("should return an empty list", func() {
				records, err := cache.All()
				Expect(err).NotTo(HaveOccurred())
				Expect(records).To(BeEmpty())
			})
		})

		When("records round trip", func() {
			BeforeEach(func() {
				Expect(cache.Append(sampleRecord("receipts/a.jpg"), &Record{FileName: "receipts/b.jpg"})).To(Succeed())
			})

			It("should return them unchanged", func() {
				records, err := cache.All()
				Expect(err).NotTo(HaveOccurred())
				Expect(records).To(Equal([]*Record{sampleRecord("receipts/a.jpg"), {FileName: "receipts/b.jpg"}}))
			})
		})

		When("a stored value is not valid JSON", func() {
			BeforeEach(func() {
				Expect(cache.db.Update(func(tx *bbolt.Tx) error {
					return tx.Bucket([]byte(recordsBucketName)).Put([]byte("bad"), []byte("{not json"))
				})).To(Succeed())
			})

			It("returns a cache corrupt error", func() {
				_, err := cache.All()
				Expect(err).To(MatchError(ErrCacheCorrupt))
			})
		})
	})

	Describe("reopening", func() {
		BeforeEach(func() {
			Expect(cache.Append(sampleRecord("receipts/a.jpg"))).To(Succeed())
			Expect(cache.Close()).To(Succeed())
			var err error
			cache, err = NewBoltCache(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the records", func() {
			found, err := cache.Has("a.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
		})
	})

	Describe("NewBoltCache", func() {
		It("returns the error for an unusable path", func() {
			_, err := NewBoltCache(filepath.Join(tmpDir, "missing", "dir", "test.db"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("opening boltdb"))
		})
	})
})

package aadhaar

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FormatUID", func() {
	When("the UID is exactly 12 characters", func() {
		It("should group it 4-4-4", func() {
			Expect(FormatUID("123456789012")).To(Equal("1234-5678-9012"))
		})
	})

	When("the UID is not 12 characters", func() {
		It("should return it unchanged", func() {
			Expect(FormatUID("")).To(Equal(""))
			Expect(FormatUID("1234")).To(Equal("1234"))
			Expect(FormatUID("1234567890123")).To(Equal("1234567890123"))
			Expect(FormatUID("1234-5678-9012")).To(Equal("1234-5678-9012"))
		})
	})
})

var _ = Describe("ExpandGender", func() {
	It("should expand the known codes", func() {
		Expect(ExpandGender("M")).To(Equal("Male"))
		Expect(ExpandGender("F")).To(Equal("Female"))
		Expect(ExpandGender("O")).To(Equal("Other"))
	})

	It("should pass unknown codes through unchanged", func() {
		Expect(ExpandGender("")).To(Equal(""))
		Expect(ExpandGender("X")).To(Equal("X"))
		Expect(ExpandGender("m")).To(Equal("m"))
	})
})

var _ = Describe("Age", func() {
	When("a full date of birth is available", func() {
		It("should not count the birthday before it occurs", func() {
			now := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
			Expect(Age("2000-06-15", "", now)).To(Equal(AgeValue{Years: 23, Known: true}))
		})

		It("should count the birthday on the day itself", func() {
			now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
			Expect(Age("2000-06-15", "", now)).To(Equal(AgeValue{Years: 24, Known: true}))
		})

		It("should count the birthday after it occurs", func() {
			now := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
			Expect(Age("2000-06-15", "", now)).To(Equal(AgeValue{Years: 24, Known: true}))
		})

		It("should prefer the date over the year", func() {
			now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			Expect(Age("2000-06-15", "1990", now)).To(Equal(AgeValue{Years: 23, Known: true}))
		})
	})

	When("only a year of birth is available", func() {
		It("should approximate from the year", func() {
			now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			Expect(Age("", "1990", now)).To(Equal(AgeValue{Years: 34, Known: true}))
		})
	})

	When("the date of birth does not parse", func() {
		It("should fall back to the year", func() {
			now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			Expect(Age("21/03/1992", "1992", now)).To(Equal(AgeValue{Years: 32, Known: true}))
		})
	})

	When("neither field is available", func() {
		It("should be unknown", func() {
			now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			age := Age("", "", now)
			Expect(age.Known).To(BeFalse())
			Expect(age.String()).To(Equal("N/A"))
		})
	})
})

var _ = Describe("AgeValue JSON", func() {
	It("should marshal a known age as a number", func() {
		data, err := json.Marshal(AgeValue{Years: 34, Known: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("34"))
	})

	It("should marshal an unknown age as N/A", func() {
		data, err := json.Marshal(AgeValue{})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`"N/A"`))
	})
})

var _ = Describe("FullAddress", func() {
	var record Record

	BeforeEach(func() {
		record = Record{
			House:       "12-B",
			Street:      "MG Road",
			Locality:    "Shivaji Nagar",
			VTC:         "Pune",
			District:    "Pune",
			SubDistrict: "Haveli",
			State:       "Maharashtra",
			PINCode:     "411005",
		}
	})

	It("should join the parts in display order", func() {
		Expect(record.FullAddress()).To(Equal("12-B, MG Road, Shivaji Nagar, Pune, Haveli, Pune, Maharashtra, 411005"))
	})

	When("the sub-district repeats the district", func() {
		BeforeEach(func() {
			record.SubDistrict = "Pune"
		})

		It("should omit the sub-district", func() {
			Expect(record.FullAddress()).To(Equal("12-B, MG Road, Shivaji Nagar, Pune, Pune, Maharashtra, 411005"))
		})
	})

	When("fields are empty", func() {
		BeforeEach(func() {
			record.Street = ""
			record.Locality = ""
		})

		It("should skip them", func() {
			Expect(record.FullAddress()).To(Equal("12-B, Pune, Haveli, Pune, Maharashtra, 411005"))
		})
	})

	When("the record is empty", func() {
		It("should return an empty string", func() {
			Expect(Record{}.FullAddress()).To(BeEmpty())
		})
	})
})

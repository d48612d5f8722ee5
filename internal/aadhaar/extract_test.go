package aadhaar

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Extract", func() {
	var (
		xmlText string
		record  Record
		err     error
	)

	JustBeforeEach(func() {
		record, err = Extract(xmlText)
	})

	When("all fifteen attributes are present", func() {
		BeforeEach(func() {
			xmlText = `<?xml version="1.0" encoding="UTF-8"?>` +
				`<PrintLetterBarcodeData uid="123456789012" name="Ananya Sharma" gender="F"` +
				` yob="1992" dob="1992-03-21" co="D/O Rajesh Sharma" house="12-B" street="MG Road"` +
				` loc="Shivaji Nagar" vtc="Pune" po="Pune City" dist="Pune" subdist="Haveli"` +
				` state="Maharashtra" pc="411005"/>`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should extract every field verbatim", func() {
			Expect(record).To(Equal(Record{
				UID:         "123456789012",
				Name:        "Ananya Sharma",
				Gender:      "F",
				YearOfBirth: "1992",
				DateOfBirth: "1992-03-21",
				CareOf:      "D/O Rajesh Sharma",
				House:       "12-B",
				Street:      "MG Road",
				Locality:    "Shivaji Nagar",
				VTC:         "Pune",
				PostOffice:  "Pune City",
				District:    "Pune",
				SubDistrict: "Haveli",
				State:       "Maharashtra",
				PINCode:     "411005",
			}))
		})
	})

	When("attributes are missing", func() {
		BeforeEach(func() {
			xmlText = `<PrintLetterBarcodeData uid="123456789012" name="Test User"/>`
		})

		It("should default every absent field to the empty string", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.UID).To(Equal("123456789012"))
			Expect(record.Name).To(Equal("Test User"))
			Expect(record.Gender).To(BeEmpty())
			Expect(record.DateOfBirth).To(BeEmpty())
			Expect(record.YearOfBirth).To(BeEmpty())
			Expect(record.CareOf).To(BeEmpty())
			Expect(record.House).To(BeEmpty())
			Expect(record.Street).To(BeEmpty())
			Expect(record.Locality).To(BeEmpty())
			Expect(record.VTC).To(BeEmpty())
			Expect(record.PostOffice).To(BeEmpty())
			Expect(record.District).To(BeEmpty())
			Expect(record.SubDistrict).To(BeEmpty())
			Expect(record.State).To(BeEmpty())
			Expect(record.PINCode).To(BeEmpty())
		})
	})

	When("unrecognized attributes are present", func() {
		BeforeEach(func() {
			xmlText = `<PrintLetterBarcodeData uid="123456789012" signature="abcd" extra="1"/>`
		})

		It("should ignore them", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.UID).To(Equal("123456789012"))
		})
	})

	When("attribute values carry surrounding whitespace", func() {
		BeforeEach(func() {
			xmlText = `<PrintLetterBarcodeData name=" Test User "/>`
		})

		It("should keep the value verbatim", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Name).To(Equal(" Test User "))
		})
	})

	When("the root element is nested inside a wrapper", func() {
		BeforeEach(func() {
			xmlText = `<Envelope><PrintLetterBarcodeData uid="123456789012"/></Envelope>`
		})

		It("should still locate it", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.UID).To(Equal("123456789012"))
		})
	})

	When("the XML is well-formed but has the wrong root element", func() {
		BeforeEach(func() {
			xmlText = `<?xml version="1.0"?><SomethingElse uid="123456789012"/>`
		})

		It("should return ErrMissingRoot", func() {
			Expect(err).To(MatchError(ErrMissingRoot))
		})
	})

	When("the text is not XML", func() {
		BeforeEach(func() {
			xmlText = `<?xml version="1.0"?><PrintLetterBarcodeData uid="1"`
		})

		It("should return ErrInvalidXML with a diagnostic", func() {
			Expect(err).To(MatchError(ErrInvalidXML))
			Expect(err.Error()).To(ContainSubstring("invalid XML format: "))
		})
	})

	When("fed the normalizer output for a noisy self-closing payload", func() {
		BeforeEach(func() {
			var normErr error
			xmlText, normErr = Normalize(`garbage-prefix<?xml version="1.0"?>` +
				`<PrintLetterBarcodeData uid="123456789012" name="Test User" gender="M" yob="1990"/>trailing-garbage`)
			Expect(normErr).NotTo(HaveOccurred())
		})

		It("should extract the record and discard the noise", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(record.UID).To(Equal("123456789012"))
			Expect(record.Name).To(Equal("Test User"))
			Expect(record.Gender).To(Equal("M"))
			Expect(record.YearOfBirth).To(Equal("1990"))
			Expect(record.DateOfBirth).To(BeEmpty())
		})

		It("should feed the display derivations", func() {
			Expect(FormatUID(record.UID)).To(Equal("1234-5678-9012"))
			Expect(ExpandGender(record.Gender)).To(Equal("Male"))
		})
	})
})

package aadhaar

import (
	"strconv"
	"strings"
	"time"
)

// FormatUID groups a 12-character UID as XXXX-XXXX-XXXX for display. Any
// other length is returned unchanged.
func FormatUID(uid string) string {
	if len(uid) != 12 {
		return uid
	}
	return uid[0:4] + "-" + uid[4:8] + "-" + uid[8:12]
}

var genderLabels = map[string]string{
	"M": "Male",
	"F": "Female",
	"O": "Other",
}

// ExpandGender expands the single-letter gender code from the payload.
// Unrecognized codes, including the empty string, pass through unchanged.
func ExpandGender(code string) string {
	if label, ok := genderLabels[code]; ok {
		return label
	}
	return code
}

// Age computes whole years of age at now from a YYYY-MM-DD date of birth,
// decrementing when the birthday has not yet occurred this year. When the
// date is empty or unparseable it falls back to a year-only approximation
// from yob. With neither, the result is unknown.
func Age(dob, yob string, now time.Time) AgeValue {
	if dob != "" {
		if birth, err := time.Parse("2006-01-02", dob); err == nil {
			years := now.Year() - birth.Year()
			if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
				years--
			}
			return AgeValue{Years: years, Known: true}
		}
	}
	if yob != "" {
		if year, err := strconv.Atoi(strings.TrimSpace(yob)); err == nil {
			return AgeValue{Years: now.Year() - year, Known: true}
		}
	}
	return AgeValue{}
}

// FullAddress joins the address sub-fields in display order, skipping
// empties. The sub-district is dropped when it merely repeats the district.
func (r Record) FullAddress() string {
	subDistrict := r.SubDistrict
	if subDistrict == r.District {
		subDistrict = ""
	}
	fields := []string{r.House, r.Street, r.Locality, r.VTC, subDistrict, r.District, r.State, r.PINCode}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}

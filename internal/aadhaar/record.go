package aadhaar

import (
	"encoding/json"
	"strconv"
)

// Record holds the fields printed in an Aadhaar card QR payload. Every field
// is a plain string; anything absent from the payload stays empty.
type Record struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	YearOfBirth string `json:"yob"`
	DateOfBirth string `json:"dob"`
	CareOf      string `json:"careOf"`
	House       string `json:"house"`
	Street      string `json:"street"`
	Locality    string `json:"locality"`
	VTC         string `json:"vtc"`
	PostOffice  string `json:"postOffice"`
	District    string `json:"district"`
	SubDistrict string `json:"subDistrict"`
	State       string `json:"state"`
	PINCode     string `json:"pincode"`
}

// AppointmentType is the service category chosen on the review form.
type AppointmentType string

const (
	AppointmentAddressUpdate    AppointmentType = "address_update"
	AppointmentMobileUpdate     AppointmentType = "mobile_update"
	AppointmentBiometricUpdate  AppointmentType = "biometric_update"
	AppointmentNameCorrection   AppointmentType = "name_correction"
	AppointmentDOBCorrection    AppointmentType = "dob_correction"
	AppointmentGenderCorrection AppointmentType = "gender_correction"
	AppointmentNewEnrollment    AppointmentType = "new_enrollment"
	AppointmentDuplicateCard    AppointmentType = "duplicate_card"
	AppointmentPVCCard          AppointmentType = "pvc_card"
	AppointmentOther            AppointmentType = "other"
)

// AppointmentOption pairs an AppointmentType with its form label.
type AppointmentOption struct {
	Value AppointmentType `json:"value"`
	Label string          `json:"label"`
}

var appointmentOptions = []AppointmentOption{
	{AppointmentAddressUpdate, "Address Update"},
	{AppointmentMobileUpdate, "Mobile Number Update"},
	{AppointmentBiometricUpdate, "Biometric Update"},
	{AppointmentNameCorrection, "Name Correction"},
	{AppointmentDOBCorrection, "Date of Birth Correction"},
	{AppointmentGenderCorrection, "Gender Correction"},
	{AppointmentNewEnrollment, "New Enrollment"},
	{AppointmentDuplicateCard, "Duplicate Aadhaar Card"},
	{AppointmentPVCCard, "PVC Aadhaar Card Request"},
	{AppointmentOther, "Other Services"},
}

// AppointmentOptions returns the closed set of selectable appointment types.
func AppointmentOptions() []AppointmentOption {
	options := make([]AppointmentOption, len(appointmentOptions))
	copy(options, appointmentOptions)
	return options
}

// Valid reports whether the appointment type is one of the selectable
// options. The empty (unselected) value is not valid.
func (a AppointmentType) Valid() bool {
	for _, opt := range appointmentOptions {
		if opt.Value == a {
			return true
		}
	}
	return false
}

// AgeValue is an age in whole years, or unknown when the record carries
// neither a date nor a year of birth. It marshals as a JSON number when
// known and as the string "N/A" otherwise.
type AgeValue struct {
	Years int
	Known bool
}

func (a AgeValue) MarshalJSON() ([]byte, error) {
	if !a.Known {
		return json.Marshal("N/A")
	}
	return json.Marshal(a.Years)
}

func (a *AgeValue) UnmarshalJSON(data []byte) error {
	var years int
	if err := json.Unmarshal(data, &years); err == nil {
		a.Years = years
		a.Known = true
		return nil
	}
	a.Years = 0
	a.Known = false
	return nil
}

// String renders the age for display, "N/A" when unknown.
func (a AgeValue) String() string {
	if !a.Known {
		return "N/A"
	}
	return strconv.Itoa(a.Years)
}

// Submission is the finished record sent to the sink: the reviewed card
// fields plus the chosen appointment type and the computed age. The record
// fields are flattened into the top-level JSON object, matching the
// spreadsheet column layout.
type Submission struct {
	Record
	AppointmentType AppointmentType `json:"appointmentType"`
	Age             AgeValue        `json:"age"`
}

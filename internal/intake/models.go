// Package intake runs the certificate request pipeline: consent and field
// checks, identity verification against the uploaded ID card, roster
// matching, certificate rendering and appointment reservation. Stages run
// strictly in order and the first failure ends the request.
package intake

import (
	"time"

	"wathiq/internal/certificate"
)

// FileUpload is one uploaded file as received from the form.
type FileUpload struct {
	Name string
	Data []byte
}

func (f FileUpload) empty() bool { return len(f.Data) == 0 }

// Submission is one claimant's request. All fields come straight from the
// public form; nothing here is trusted until the pipeline says so.
type Submission struct {
	FullName    string
	Gender      certificate.Gender
	Destination string
	Consent     bool

	IDFront FileUpload
	IDBack  FileUpload
	Photo   FileUpload
}

// Receipt is the successful outcome: the matched identity, the reserved
// pickup appointment and the stored certificate artifact.
type Receipt struct {
	RequestID       string    `json:"request_id"`
	MatchedName     string    `json:"matched_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentSlot string    `json:"appointment_slot"`
	CertificateFile string    `json:"certificate_file"`
}

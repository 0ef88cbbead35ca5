package domain

import dErrors "carebridge/pkg/domain-errors"

// DocumentType identifies the kind of identity or records document attached to
// a child profile.
type DocumentType string

const (
	DocumentTypeAadhaar          DocumentType = "aadhaar"
	DocumentTypeBirthCertificate DocumentType = "birth_certificate"
	DocumentTypeEducation        DocumentType = "education"
	DocumentTypeOther            DocumentType = "other"
)

var validDocumentTypes = map[DocumentType]bool{
	DocumentTypeAadhaar:          true,
	DocumentTypeBirthCertificate: true,
	DocumentTypeEducation:        true,
	DocumentTypeOther:            true,
}

func ParseDocumentType(s string) (DocumentType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "document type cannot be empty")
	}
	d := DocumentType(s)
	if !validDocumentTypes[d] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid document type")
	}
	return d, nil
}

func (d DocumentType) IsValid() bool { return validDocumentTypes[d] }

func (d DocumentType) String() string { return string(d) }

// DocumentStatus tracks verification progress for one document slot.
type DocumentStatus string

const (
	DocumentStatusMissing  DocumentStatus = "missing"
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusVerified DocumentStatus = "verified"
)

var validDocumentStatuses = map[DocumentStatus]bool{
	DocumentStatusMissing:  true,
	DocumentStatusPending:  true,
	DocumentStatusVerified: true,
}

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "document status cannot be empty")
	}
	d := DocumentStatus(s)
	if !validDocumentStatuses[d] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid document status")
	}
	return d, nil
}

func (d DocumentStatus) IsValid() bool { return validDocumentStatuses[d] }

func (d DocumentStatus) String() string { return string(d) }

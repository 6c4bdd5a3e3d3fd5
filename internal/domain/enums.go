package domain

// Stage is the single authoritative workflow position of a correspondence.
type Stage string

const (
	StageAssignment        Stage = "ASSIGNMENT"
	StageExecution         Stage = "EXECUTION"
	StageDrafting          Stage = "DRAFTING"
	StageRevisionRequested Stage = "REVISION_REQUESTED"
	StageFinalReview       Stage = "FINAL_REVIEW"
	StageSignature         Stage = "SIGNATURE"
	StageDispatch          Stage = "DISPATCH"
	StageArchived          Stage = "ARCHIVED"
)

// CorrespondenceType distinguishes incoming and outgoing documents.
type CorrespondenceType string

const (
	TypeKiruvchi  CorrespondenceType = "Kiruvchi"
	TypeChiquvchi CorrespondenceType = "Chiquvchi"
)

// ValidCorrespondenceTypes enumerates the accepted document types.
var ValidCorrespondenceTypes = map[CorrespondenceType]bool{
	TypeKiruvchi:  true,
	TypeChiquvchi: true,
}

// Kartoteka is the classification tag of a correspondence. Informational only,
// it never affects workflow transitions.
type Kartoteka string

const (
	KartotekaMarkaziyBank Kartoteka = "Markaziy Bank"
	KartotekaMurojaatlar  Kartoteka = "Murojaatlar"
	KartotekaPrezident    Kartoteka = "Prezident Administratsiyasi"
	KartotekaVazirlar     Kartoteka = "Vazirlar Mahkamasi"
	KartotekaXizmat       Kartoteka = "Xizmat yozishmalari"
	KartotekaNazoratdagi  Kartoteka = "Nazoratdagi"
)

// ValidKartoteka enumerates the closed classification set.
var ValidKartoteka = map[Kartoteka]bool{
	KartotekaMarkaziyBank: true,
	KartotekaMurojaatlar:  true,
	KartotekaPrezident:    true,
	KartotekaVazirlar:     true,
	KartotekaXizmat:       true,
	KartotekaNazoratdagi:  true,
}

// UserRole defines the closed role set of the chancellery.
type UserRole string

const (
	RoleAdmin                UserRole = "Admin"
	RoleBoshqaruv            UserRole = "Boshqaruv"    // management board
	RoleTarmoq               UserRole = "Tarmoq"       // department (network) head
	RoleReviewer             UserRole = "Reviewer"     // department staff
	RoleBankApparati         UserRole = "BankApparati" // dispatch office
	RoleResepshn             UserRole = "Resepshn"     // reception, registers arrivals
	RoleYordamchi            UserRole = "Yordamchi"
	RoleBankKengashiKotibi   UserRole = "BankKengashiKotibi"
	RoleKollegialOrganKotibi UserRole = "KollegialOrganKotibi"
)

// ValidRoles enumerates the accepted roles.
var ValidRoles = map[UserRole]bool{
	RoleAdmin:                true,
	RoleBoshqaruv:            true,
	RoleTarmoq:               true,
	RoleReviewer:             true,
	RoleBankApparati:         true,
	RoleResepshn:             true,
	RoleYordamchi:            true,
	RoleBankKengashiKotibi:   true,
	RoleKollegialOrganKotibi: true,
}

// ReviewerStatus is the individual approval state of one reviewer entry.
type ReviewerStatus string

const (
	ReviewerPending  ReviewerStatus = "PENDING"
	ReviewerApproved ReviewerStatus = "APPROVED"
	ReviewerRejected ReviewerStatus = "REJECTED"
)

// CorrespondenceStatus is the human-readable status shown on the dashboard.
// Stage is authoritative; status is derived from it via StatusForStage.
type CorrespondenceStatus string

const (
	StatusYangi            CorrespondenceStatus = "Yangi"
	StatusKoribChiqilmoqda CorrespondenceStatus = "Ko`rib chiqilmoqda"
	StatusIjroda           CorrespondenceStatus = "Ijroga yuborildi"
	StatusTasdiqlangan     CorrespondenceStatus = "Tasdiqlangan"
	StatusRadEtilgan       CorrespondenceStatus = "Rad etilgan"
	StatusArxivlangan      CorrespondenceStatus = "Arxivlangan"
)

// StatusForStage derives the display status from the authoritative stage.
func StatusForStage(s Stage) CorrespondenceStatus {
	switch s {
	case StageAssignment:
		return StatusYangi
	case StageExecution, StageDrafting:
		return StatusIjroda
	case StageFinalReview:
		return StatusKoribChiqilmoqda
	case StageRevisionRequested:
		return StatusRadEtilgan
	case StageSignature, StageDispatch:
		return StatusTasdiqlangan
	case StageArchived:
		return StatusArxivlangan
	default:
		return StatusYangi
	}
}

// AuditAction identifies one workflow transition in the audit log.
type AuditAction string

const (
	AuditCreated            AuditAction = "created"
	AuditExecutorAssigned   AuditAction = "executor_assigned"
	AuditInternalAssigned   AuditAction = "internal_assigned"
	AuditDraftingStarted    AuditAction = "drafting_started"
	AuditSubmittedForReview AuditAction = "submitted_for_review"
	AuditReviewApproved     AuditAction = "review_approved"
	AuditReviewRejected     AuditAction = "review_rejected"
	AuditSigned             AuditAction = "signed"
	AuditDispatched         AuditAction = "dispatched"
)

// FileType represents the allowed attachment file types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded attachment.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
)

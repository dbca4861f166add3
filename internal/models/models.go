package models

import "time"

type TicketCategory string

const (
	CategoryPayment   TicketCategory = "PAYMENT"
	CategoryAccess    TicketCategory = "ACCESS"
	CategoryContent   TicketCategory = "CONTENT"
	CategoryTechnical TicketCategory = "TECHNICAL"
	CategoryAccount   TicketCategory = "ACCOUNT"
	CategoryOther     TicketCategory = "OTHER"
)

type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyNormal Urgency = "NORMAL"
	UrgencyHigh   Urgency = "HIGH"
)

type TicketStatus string

const (
	TicketOpen     TicketStatus = "OPEN"
	TicketPending  TicketStatus = "PENDING"
	TicketResolved TicketStatus = "RESOLVED"
	TicketClosed   TicketStatus = "CLOSED"
)

type ContactAdminPayload struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Category      TicketCategory `json:"category"`
	OtherCategory string         `json:"otherCategory,omitempty"`
	Urgency       Urgency        `json:"urgency"`
	Subject       string         `json:"subject"`
	Message       string         `json:"message"`
}

type TicketAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Ticket struct {
	TicketID   string              `json:"ticketId"`
	TicketCode string              `json:"ticketCode"`
	Status     TicketStatus        `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	CreatedBy  TicketAuthor        `json:"createdBy"`
	Payload    ContactAdminPayload `json:"payload"`
}

type NotificationType string

const (
	NotificationDocumentApproval     NotificationType = "DOCUMENT_APPROVAL"
	NotificationComment              NotificationType = "COMMENT"
	NotificationTagApproval          NotificationType = "TAG_APPROVAL"
	NotificationPurchase             NotificationType = "PURCHASE"
	NotificationSystemUpdate         NotificationType = "SYSTEM_UPDATE"
	NotificationReviewRequest        NotificationType = "REVIEW_REQUEST"
	NotificationReviewAssigned       NotificationType = "REVIEW_ASSIGNED"
	NotificationReviewCompleted      NotificationType = "REVIEW_COMPLETED"
	NotificationOrgInvitation        NotificationType = "ORGANIZATION_INVITATION"
	NotificationOrgMemberAdded       NotificationType = "ORGANIZATION_MEMBER_ADDED"
	NotificationOrgDocumentSubmitted NotificationType = "ORGANIZATION_DOCUMENT_SUBMITTED"
)

type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	Type      NotificationType `json:"type" yaml:"type"`
	Title     string           `json:"title" yaml:"title"`
	Summary   string           `json:"summary" yaml:"summary"`
	Timestamp time.Time        `json:"timestamp" yaml:"-"`
	IsRead    bool             `json:"isRead" yaml:"isRead"`
}

type Role string

const (
	RoleReader        Role = "READER"
	RoleReviewer      Role = "REVIEWER"
	RoleOrganization  Role = "ORGANIZATION"
	RoleBusinessAdmin Role = "BUSINESS_ADMIN"
	RoleSystemAdmin   Role = "SYSTEM_ADMIN"
)

type Profile struct {
	ID                  string `json:"id" yaml:"id"`
	Role                Role   `json:"role" yaml:"role"`
	Email               string `json:"email" yaml:"email"`
	FullName            string `json:"fullName,omitempty" yaml:"fullName"`
	Username            string `json:"username,omitempty" yaml:"username"`
	DateOfBirth         string `json:"dateOfBirth,omitempty" yaml:"dateOfBirth"`
	CoinBalance         *int   `json:"coinBalance,omitempty" yaml:"coinBalance"`
	Status              string `json:"status,omitempty" yaml:"status"`
	OrdID               string `json:"ordid,omitempty" yaml:"ordid"`
	OrganizationName    string `json:"organizationName,omitempty" yaml:"organizationName"`
	OrganizationEmail   string `json:"organizationEmail,omitempty" yaml:"organizationEmail"`
	OrganizationHotline string `json:"organizationHotline,omitempty" yaml:"organizationHotline"`
	OrganizationLogo    string `json:"organizationLogo,omitempty" yaml:"organizationLogo"`
	OrganizationAddress string `json:"organizationAddress,omitempty" yaml:"organizationAddress"`
	Active              bool   `json:"active" yaml:"active"`
	Deleted             bool   `json:"deleted" yaml:"deleted"`
}

// ProfilePatch carries the fields of a partial profile update. Nil fields are
// left untouched by Apply.
type ProfilePatch struct {
	ID                  *string `json:"id,omitempty"`
	Role                *Role   `json:"role,omitempty"`
	Email               *string `json:"email,omitempty"`
	FullName            *string `json:"fullName,omitempty"`
	Username            *string `json:"username,omitempty"`
	DateOfBirth         *string `json:"dateOfBirth,omitempty"`
	CoinBalance         *int    `json:"coinBalance,omitempty"`
	Status              *string `json:"status,omitempty"`
	OrdID               *string `json:"ordid,omitempty"`
	OrganizationName    *string `json:"organizationName,omitempty"`
	OrganizationEmail   *string `json:"organizationEmail,omitempty"`
	OrganizationHotline *string `json:"organizationHotline,omitempty"`
	OrganizationLogo    *string `json:"organizationLogo,omitempty"`
	OrganizationAddress *string `json:"organizationAddress,omitempty"`
	Active              *bool   `json:"active,omitempty"`
	Deleted             *bool   `json:"deleted,omitempty"`
}

func (p Profile) Apply(patch ProfilePatch) Profile {
	setString(&p.ID, patch.ID)
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	setString(&p.Email, patch.Email)
	setString(&p.FullName, patch.FullName)
	setString(&p.Username, patch.Username)
	setString(&p.DateOfBirth, patch.DateOfBirth)
	if patch.CoinBalance != nil {
		v := *patch.CoinBalance
		p.CoinBalance = &v
	} else if p.CoinBalance != nil {
		v := *p.CoinBalance
		p.CoinBalance = &v
	}
	setString(&p.Status, patch.Status)
	setString(&p.OrdID, patch.OrdID)
	setString(&p.OrganizationName, patch.OrganizationName)
	setString(&p.OrganizationEmail, patch.OrganizationEmail)
	setString(&p.OrganizationHotline, patch.OrganizationHotline)
	setString(&p.OrganizationLogo, patch.OrganizationLogo)
	setString(&p.OrganizationAddress, patch.OrganizationAddress)
	setBool(&p.Active, patch.Active)
	setBool(&p.Deleted, patch.Deleted)
	return p
}

// Merge layers next on top of p; fields set in next win.
func (p ProfilePatch) Merge(next ProfilePatch) ProfilePatch {
	if next.ID != nil {
		p.ID = next.ID
	}
	if next.Role != nil {
		p.Role = next.Role
	}
	if next.Email != nil {
		p.Email = next.Email
	}
	if next.FullName != nil {
		p.FullName = next.FullName
	}
	if next.Username != nil {
		p.Username = next.Username
	}
	if next.DateOfBirth != nil {
		p.DateOfBirth = next.DateOfBirth
	}
	if next.CoinBalance != nil {
		p.CoinBalance = next.CoinBalance
	}
	if next.Status != nil {
		p.Status = next.Status
	}
	if next.OrdID != nil {
		p.OrdID = next.OrdID
	}
	if next.OrganizationName != nil {
		p.OrganizationName = next.OrganizationName
	}
	if next.OrganizationEmail != nil {
		p.OrganizationEmail = next.OrganizationEmail
	}
	if next.OrganizationHotline != nil {
		p.OrganizationHotline = next.OrganizationHotline
	}
	if next.OrganizationLogo != nil {
		p.OrganizationLogo = next.OrganizationLogo
	}
	if next.OrganizationAddress != nil {
		p.OrganizationAddress = next.OrganizationAddress
	}
	if next.Active != nil {
		p.Active = next.Active
	}
	if next.Deleted != nil {
		p.Deleted = next.Deleted
	}
	return p
}

type OrganizationInfo struct {
	ID                 string    `json:"id" yaml:"id"`
	Name               string    `json:"name" yaml:"name"`
	Type               string    `json:"type" yaml:"type"`
	RegistrationNumber string    `json:"registrationNumber" yaml:"registrationNumber"`
	CertificateUpload  *string   `json:"certificateUpload" yaml:"certificateUpload"`
	Email              string    `json:"email" yaml:"email"`
	CreatedAt          time.Time `json:"createdAt" yaml:"createdAt"`
	Logo               *string   `json:"logo" yaml:"logo"`
	Deleted            bool      `json:"deleted,omitempty" yaml:"deleted"`
}

type OrganizationPatch struct {
	Name               *string `json:"name,omitempty"`
	Type               *string `json:"type,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	CertificateUpload  *string `json:"certificateUpload,omitempty"`
	Email              *string `json:"email,omitempty"`
	Logo               *string `json:"logo,omitempty"`
}

func (o OrganizationInfo) Apply(patch OrganizationPatch) OrganizationInfo {
	setString(&o.Name, patch.Name)
	setString(&o.Type, patch.Type)
	setString(&o.RegistrationNumber, patch.RegistrationNumber)
	if patch.CertificateUpload != nil {
		v := *patch.CertificateUpload
		o.CertificateUpload = &v
	}
	setString(&o.Email, patch.Email)
	if patch.Logo != nil {
		v := *patch.Logo
		o.Logo = &v
	}
	return o
}

type Organization struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Type     string    `json:"type" yaml:"type"`
	Email    string    `json:"email" yaml:"email"`
	Hotline  string    `json:"hotline" yaml:"hotline"`
	Logo     *string   `json:"logo" yaml:"logo"`
	Address  string    `json:"address" yaml:"address"`
	JoinDate time.Time `json:"joinDate" yaml:"joinDate"`
}

type OrganizationSummary struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	JoinDate time.Time `json:"joinDate"`
	Logo     *string   `json:"logo"`
}

func (o Organization) Summary() OrganizationSummary {
	return OrganizationSummary{ID: o.ID, Name: o.Name, Type: o.Type, JoinDate: o.JoinDate, Logo: o.Logo}
}

type TagStatus string

const (
	TagPending  TagStatus = "PENDING"
	TagActive   TagStatus = "ACTIVE"
	TagInactive TagStatus = "INACTIVE"
)

type Tag struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Status      TagStatus `json:"status" yaml:"status"`
	CreatedDate time.Time `json:"createdDate" yaml:"createdDate"`
}

type Domain struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	CreatedDate time.Time `json:"createdDate" yaml:"createdDate"`
}

type DocumentType struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type Specialization struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	DomainID  string    `json:"domainId" yaml:"domainId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Upload reference data exposed to the reader upload form.

type UploadType struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type UploadDomain struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Code int    `json:"code" yaml:"code"`
}

type UploadTag struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type UploadSpecialization struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Code     int    `json:"code" yaml:"code"`
	DomainID string `json:"domainId" yaml:"domainId"`
}

type HistoryStatus string

const (
	HistoryPending  HistoryStatus = "PENDING"
	HistoryApproved HistoryStatus = "APPROVED"
	HistoryRejected HistoryStatus = "REJECTED"
)

type UploadHistoryEntry struct {
	ID               string        `json:"id" yaml:"id"`
	DocumentName     string        `json:"documentName" yaml:"documentName"`
	UploadDate       time.Time     `json:"uploadDate" yaml:"-"`
	Type             string        `json:"type" yaml:"type"`
	Domain           string        `json:"domain" yaml:"domain"`
	Specialization   string        `json:"specialization" yaml:"specialization"`
	FileSize         int64         `json:"fileSize" yaml:"fileSize"`
	Status           HistoryStatus `json:"status" yaml:"status"`
	CanRequestReview bool          `json:"canRequestReview" yaml:"canRequestReview"`
}

type LibrarySource string

const (
	SourceUploaded  LibrarySource = "UPLOADED"
	SourcePurchased LibrarySource = "PURCHASED"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityPrivate  Visibility = "PRIVATE"
	VisibilityInternal Visibility = "INTERNAL"
)

type LibraryDocument struct {
	ID             string        `json:"id" yaml:"id"`
	DocumentName   string        `json:"documentName" yaml:"documentName"`
	Description    string        `json:"description,omitempty" yaml:"description"`
	UploadDate     time.Time     `json:"uploadDate" yaml:"uploadDate"`
	Type           string        `json:"type" yaml:"type"`
	Domain         string        `json:"domain" yaml:"domain"`
	FileSize       int64         `json:"fileSize" yaml:"fileSize"`
	Source         LibrarySource `json:"source" yaml:"source"`
	Pages          int           `json:"pages" yaml:"pages"`
	Reads          int           `json:"reads" yaml:"reads"`
	Visibility     Visibility    `json:"visibility" yaml:"visibility"`
	Status         string        `json:"status" yaml:"status"`
	TagIDs         []string      `json:"tagIds,omitempty" yaml:"tagIds"`
	OrganizationID string        `json:"organizationId,omitempty" yaml:"organizationId"`
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

type PolicyType string

const (
	PolicyTermsOfService      PolicyType = "TERMS_OF_SERVICE"
	PolicyPrivacy             PolicyType = "PRIVACY_POLICY"
	PolicyCookie              PolicyType = "COOKIE_POLICY"
	PolicyAcceptableUse       PolicyType = "ACCEPTABLE_USE"
	PolicyRefund              PolicyType = "REFUND_POLICY"
	PolicyCopyright           PolicyType = "COPYRIGHT_POLICY"
	PolicyCommunityGuidelines PolicyType = "COMMUNITY_GUIDELINES"
)

type PolicyStatus string

const (
	PolicyActive   PolicyStatus = "ACTIVE"
	PolicyInactive PolicyStatus = "INACTIVE"
)

// Policy is a legal or community document. There is one per type.
type Policy struct {
	ID         string       `json:"id" yaml:"id"`
	Type       PolicyType   `json:"type" yaml:"type"`
	Title      string       `json:"title" yaml:"title"`
	Content    string       `json:"content" yaml:"content"`
	Status     PolicyStatus `json:"status" yaml:"status"`
	IsRequired bool         `json:"isRequired" yaml:"isRequired"`
	UpdatedAt  time.Time    `json:"updatedAt" yaml:"-"`
}

// PolicyPatch carries the fields a policy update may change. Empty strings
// leave the field alone.
type PolicyPatch struct {
	Title      string
	Content    string
	Status     PolicyStatus
	IsRequired *bool
}

type PolicyView struct {
	Policy         Policy     `json:"policy"`
	HasAccepted    bool       `json:"hasAccepted"`
	AcceptanceDate *time.Time `json:"acceptanceDate,omitempty"`
}

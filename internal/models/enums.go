package models

// SupportType is the category of assistance requested by a senior. The same set
// is used for volunteer skills.
type SupportType string

const (
	SupportShopping       SupportType = "SHOPPING"
	SupportTransportation SupportType = "TRANSPORTATION"
	SupportCompanionship  SupportType = "COMPANIONSHIP"
	SupportHousework      SupportType = "HOUSEWORK"
	SupportMedication     SupportType = "MEDICATION"
	SupportTechnology     SupportType = "TECHNOLOGY"
	SupportOther          SupportType = "OTHER"
)

// SupportTypes lists every valid support type in display order.
var SupportTypes = []SupportType{
	SupportShopping,
	SupportTransportation,
	SupportCompanionship,
	SupportHousework,
	SupportMedication,
	SupportTechnology,
	SupportOther,
}

// Valid reports whether t is a member of the enumeration.
func (t SupportType) Valid() bool {
	for _, v := range SupportTypes {
		if v == t {
			return true
		}
	}
	return false
}

// RequestStatus tracks a support request through its lifecycle.
type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusAssigned   RequestStatus = "ASSIGNED"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusCancelled  RequestStatus = "CANCELLED"
)

var RequestStatuses = []RequestStatus{
	StatusPending,
	StatusAssigned,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

func (s RequestStatus) Valid() bool {
	for _, v := range RequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Urgency of a support request.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// VolunteerStatus is the verification state of a volunteer application.
type VolunteerStatus string

const (
	VolunteerPendingVerification VolunteerStatus = "PENDING_VERIFICATION"
	VolunteerActive              VolunteerStatus = "ACTIVE"
	VolunteerInactive            VolunteerStatus = "INACTIVE"
	VolunteerSuspended           VolunteerStatus = "SUSPENDED"
)

// OrganizationType classifies partner organizations.
type OrganizationType string

const (
	OrgHealthcare OrganizationType = "HEALTHCARE"
	OrgPharmacy   OrganizationType = "PHARMACY"
	OrgGrocery    OrganizationType = "GROCERY"
	OrgBusiness   OrganizationType = "BUSINESS"
	OrgNonprofit  OrganizationType = "NONPROFIT"
	OrgGovernment OrganizationType = "GOVERNMENT"
	OrgReligious  OrganizationType = "RELIGIOUS"
	OrgEducation  OrganizationType = "EDUCATION"
	OrgOther      OrganizationType = "OTHER"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

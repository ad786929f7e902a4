package models

import "time"

// ProjectStatus is an ordered lifecycle label. Transitions are free-form
// field updates; no transition graph is enforced.
type ProjectStatus string

const (
	StatusCreated         ProjectStatus = "Created"
	StatusPendingApproval ProjectStatus = "PendingApproval"
	StatusApproved        ProjectStatus = "Approved"
	StatusBuild           ProjectStatus = "Build"
	StatusAssembly        ProjectStatus = "Assembly"
	StatusDisassembly     ProjectStatus = "Disassembly"
	StatusBreakdown       ProjectStatus = "Breakdown"
)

// LineItem is one row of a project item list. Source says which catalog the
// item came from.
type LineItem struct {
	ItemID   string `bson:"item_id" json:"item_id"`
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category" json:"category"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Source   string `bson:"source" json:"source"` // "inventory" or "equipment"
}

// Project is a decoration project. The three item lists are independent:
// a partial update touching one list must leave the siblings untouched.
type Project struct {
	ID                 string                 `bson:"id" json:"id"`
	Title              string                 `bson:"title" json:"title"`
	LeadDecorator      string                 `bson:"lead_decorator" json:"lead_decorator"`
	ProjectDate        time.Time              `bson:"project_date" json:"project_date"`
	FullDetails        map[string]interface{} `bson:"full_details,omitempty" json:"full_details,omitempty"`
	Status             ProjectStatus          `bson:"status" json:"status"`
	PreliminaryList    []LineItem             `bson:"preliminary_list,omitempty" json:"preliminary_list,omitempty"`
	FinalList          []LineItem             `bson:"final_list,omitempty" json:"final_list,omitempty"`
	DismantlingList    []LineItem             `bson:"dismantling_list,omitempty" json:"dismantling_list,omitempty"`
	CuratorAgreement   bool                   `bson:"curator_agreement" json:"curator_agreement"`
	DecoratorAgreement bool                   `bson:"decorator_agreement" json:"decorator_agreement"`
	CreatedAt          time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time              `bson:"updated_at" json:"updated_at"`
	CreatedBy          string                 `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

type ProjectCreateRequest struct {
	Title         string                 `json:"title" binding:"required"`
	LeadDecorator string                 `json:"lead_decorator" binding:"required"`
	ProjectDate   time.Time              `json:"project_date" binding:"required"`
	FullDetails   map[string]interface{} `json:"full_details"`
}

// ProjectUpdateRequest carries only the fields to change. Nil fields are
// absent from the request and must not be applied.
type ProjectUpdateRequest struct {
	Title              *string                `json:"title"`
	LeadDecorator      *string                `json:"lead_decorator"`
	ProjectDate        *time.Time             `json:"project_date"`
	FullDetails        map[string]interface{} `json:"full_details"`
	Status             *ProjectStatus         `json:"status"`
	PreliminaryList    *[]LineItem            `json:"preliminary_list"`
	FinalList          *[]LineItem            `json:"final_list"`
	DismantlingList    *[]LineItem            `json:"dismantling_list"`
	CuratorAgreement   *bool                  `json:"curator_agreement"`
	DecoratorAgreement *bool                  `json:"decorator_agreement"`
}

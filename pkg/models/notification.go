package models

// Contact is a lead as registered with the contact-management provider
type Contact struct {
	Email      string
	Attributes map[string]interface{}
	ListIDs    []int64
}

// Address is a named email participant
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Email is a single transactional message
type Email struct {
	From        Address
	To          []Address
	Subject     string
	HTMLContent string
	Tags        []string
}
